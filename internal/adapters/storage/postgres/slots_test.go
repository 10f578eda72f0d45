package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"digital-garden/internal/ports/kv"
)

// Requiere una base real: GARDEN_TEST_PG_DSN=postgres://... go test ./...
func TestSlots_Postgres(t *testing.T) {
	dsn := os.Getenv("GARDEN_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("GARDEN_TEST_PG_DSN not set")
	}
	ctx := context.Background()

	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s, err := NewSlots(ctx, db)
	if err != nil {
		t.Fatalf("new slots: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	key := "test-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM garden_slots WHERE key = $1`, key)
	})

	if _, err := s.Get(ctx, key); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Put(ctx, key, []byte("[1]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, key, []byte("[]")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	b, err := s.Get(ctx, key)
	if err != nil || string(b) != "[]" {
		t.Fatalf("expected overwrite, got %s %v", b, err)
	}
}
