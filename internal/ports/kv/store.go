package kv

import (
	"context"
	"errors"
)

// ErrNotFound indica que el slot nunca fue escrito.
var ErrNotFound = errors.New("kv: key not found")

// Driver identifica el backend concreto del slot.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverS3       Driver = "s3"
)

// Store es un slot clave/valor con semántica de sobrescritura (sin merge).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Driver() Driver
	Close() error
}
