// Package file guarda cada slot como un archivo bajo un directorio raíz.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"digital-garden/internal/ports/kv"
)

const slotExt = ".slot"

// Slots implementa kv.Store sobre el filesystem local.
// Put escribe a un temporal y renombra: un corte a mitad de escritura deja el
// snapshot anterior intacto.
type Slots struct {
	root string
}

func New(root string) (*Slots, error) {
	if strings.TrimSpace(root) == "" {
		root = "./gardendata"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &Slots{root: root}, nil
}

func (s *Slots) Driver() kv.Driver { return kv.DriverFile }

func (s *Slots) Close() error { return nil }

// sanitizeKey impide escapar de root (.., rutas absolutas, separadores).
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("empty key")
	}
	if strings.Contains(key, "..") {
		return "", errors.New("invalid key contains '..'")
	}
	if strings.ContainsAny(key, `/\`) {
		return "", errors.New("invalid key contains path separator")
	}
	return key, nil
}

func (s *Slots) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, k+slotExt), nil
}

func (s *Slots) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return b, nil
}

func (s *Slots) Put(_ context.Context, key string, value []byte) error {
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}

	tmp := filepath.Join(s.root, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit slot %s: %w", key, err)
	}
	return nil
}
