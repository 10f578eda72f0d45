package memory

import (
	"context"
	"sync"

	"digital-garden/internal/ports/kv"
)

// Slots implementa kv.Store en memoria (dev/tests). No sobrevive reinicios.
type Slots struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewSlots() *Slots {
	return &Slots{data: make(map[string][]byte)}
}

func (s *Slots) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Slots) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

func (s *Slots) Driver() kv.Driver { return kv.DriverMemory }

func (s *Slots) Close() error { return nil }
