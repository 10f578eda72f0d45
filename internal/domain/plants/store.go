package plants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"digital-garden/internal/ports/kv"
)

const (
	// CollectionKey es el slot con la colección completa.
	CollectionKey = "plantas"
	// PreferenceKey guarda los últimos cuidados ingresados (banner de bienvenida).
	PreferenceKey = "ultimosCuidados"
)

// Store serializa la colección entera al slot. No hay escrituras parciales.
type Store struct {
	slots kv.Store
}

func NewStore(slots kv.Store) *Store {
	return &Store{slots: slots}
}

// Save sobrescribe el slot con todos los registros.
// Si falla, lo persistido antes queda intacto y el error envuelve ErrStorage.
func (s *Store) Save(ctx context.Context, items []Plant) error {
	if items == nil {
		items = []Plant{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode collection: %v", ErrStorage, err)
	}
	if err := s.slots.Put(ctx, CollectionKey, b); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, CollectionKey, err)
	}
	return nil
}

// Load lee el slot. Ausente => fallback sin error.
// Ilegible o corrupto => fallback + ErrStorage, para que el caller decida si loguea.
func (s *Store) Load(ctx context.Context, fallback []Plant) ([]Plant, error) {
	b, err := s.slots.Get(ctx, CollectionKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("%w: read %s: %v", ErrStorage, CollectionKey, err)
	}

	var out []Plant
	if err := json.Unmarshal(b, &out); err != nil {
		return fallback, fmt.Errorf("%w: decode %s: %v", ErrStorage, CollectionKey, err)
	}
	if out == nil {
		out = []Plant{}
	}
	return out, nil
}

func (s *Store) SavePreference(ctx context.Context, value string) error {
	if err := s.slots.Put(ctx, PreferenceKey, []byte(value)); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, PreferenceKey, err)
	}
	return nil
}

// LoadPreference devuelve "" si nunca se guardó nada.
func (s *Store) LoadPreference(ctx context.Context) (string, error) {
	b, err := s.slots.Get(ctx, PreferenceKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: read %s: %v", ErrStorage, PreferenceKey, err)
	}
	return strings.TrimSpace(string(b)), nil
}
