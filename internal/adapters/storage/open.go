// Package storage elige el backend de slots según el driver configurado.
package storage

import (
	"context"
	"fmt"

	"digital-garden/internal/adapters/storage/file"
	"digital-garden/internal/adapters/storage/memory"
	"digital-garden/internal/adapters/storage/postgres"
	"digital-garden/internal/adapters/storage/s3"
	"digital-garden/internal/adapters/storage/sqlite"
	"digital-garden/internal/ports/kv"
)

type Config struct {
	Driver      kv.Driver
	FileDir     string
	SQLitePath  string
	PostgresDSN string
	S3          s3.Config
}

// Open devuelve el kv.Store listo para usar. El caller es dueño del Close.
func Open(ctx context.Context, cfg Config) (kv.Store, error) {
	switch cfg.Driver {
	case "", kv.DriverMemory:
		return memory.NewSlots(), nil
	case kv.DriverFile:
		slots, err := file.New(cfg.FileDir)
		if err != nil {
			return nil, err
		}
		return slots, nil
	case kv.DriverSQLite:
		slots, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return slots, nil
	case kv.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("DB_DSN required for postgres driver")
		}
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		slots, err := postgres.NewSlots(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return slots, nil
	case kv.DriverS3:
		slots, err := s3.New(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return slots, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
