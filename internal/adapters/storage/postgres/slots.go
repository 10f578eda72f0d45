package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"digital-garden/internal/ports/kv"
)

const createSlotsTable = `
CREATE TABLE IF NOT EXISTS garden_slots (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type Slots struct {
	db *sql.DB
}

// NewSlots asegura la tabla y devuelve el store. db lo abre el caller (ver Open).
func NewSlots(ctx context.Context, db *sql.DB) (*Slots, error) {
	if _, err := db.ExecContext(ctx, createSlotsTable); err != nil {
		return nil, fmt.Errorf("create garden_slots: %w", err)
	}
	return &Slots{db: db}, nil
}

func (s *Slots) Driver() kv.Driver { return kv.DriverPostgres }

func (s *Slots) Close() error { return s.db.Close() }

func (s *Slots) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM garden_slots WHERE key = $1`

	var v []byte
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *Slots) Put(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO garden_slots (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
`
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, q, key, value)
	return err
}
