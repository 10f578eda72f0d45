package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"digital-garden/internal/ports/kv"
)

type Config struct {
	Port string

	StoreDriver kv.Driver
	FileDir     string
	SQLitePath  string
	PostgresDSN string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
	S3Prefix    string

	PerenualBaseURL string
	PerenualAPIKey  string

	PhotoSearchURL  string
	SeededPhotoURL  string
	PlaceholderMode string
	PlaceholderURL  string
	ProbeTimeout    time.Duration

	SeedSamples bool
}

// Load lee .env (si existe) y después el entorno. Un .env ausente no es error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv lee solo el entorno del proceso (tests usan t.Setenv).
func FromEnv() (Config, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:            get("PORT", "8080"),
		StoreDriver:     kv.Driver(strings.ToLower(get("GARDEN_STORE_DRIVER", string(kv.DriverMemory)))),
		FileDir:         get("GARDEN_FILE_DIR", "./gardendata"),
		SQLitePath:      get("GARDEN_SQLITE_PATH", "garden.db"),
		PostgresDSN:     get("DB_DSN", ""),
		S3Bucket:        get("GARDEN_S3_BUCKET", ""),
		S3Region:        get("GARDEN_S3_REGION", "us-east-1"),
		S3Endpoint:      get("GARDEN_S3_ENDPOINT", ""),
		S3PathStyle:     strings.EqualFold(get("GARDEN_S3_PATH_STYLE", "false"), "true"),
		S3Prefix:        get("GARDEN_S3_PREFIX", ""),
		PerenualBaseURL: get("PERENUAL_BASE_URL", "https://perenual.com/api"),
		PerenualAPIKey:  get("PERENUAL_API_KEY", ""),
		PhotoSearchURL:  get("GARDEN_PHOTO_SEARCH_URL", "https://source.unsplash.com/400x300"),
		SeededPhotoURL:  get("GARDEN_SEEDED_PHOTO_URL", "https://picsum.photos"),
		PlaceholderMode: strings.ToLower(get("GARDEN_PLACEHOLDER_MODE", "svg")),
		PlaceholderURL:  get("GARDEN_PLACEHOLDER_URL", "https://via.placeholder.com"),
	}

	switch cfg.StoreDriver {
	case kv.DriverMemory, kv.DriverFile, kv.DriverSQLite, kv.DriverPostgres, kv.DriverS3:
	default:
		return Config{}, fmt.Errorf("GARDEN_STORE_DRIVER: unknown driver %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == kv.DriverS3 && cfg.S3Bucket == "" {
		return Config{}, errors.New("GARDEN_S3_BUCKET required for s3 driver")
	}
	if cfg.PlaceholderMode != "svg" && cfg.PlaceholderMode != "remote" {
		return Config{}, fmt.Errorf("GARDEN_PLACEHOLDER_MODE: expected svg|remote, got %q", cfg.PlaceholderMode)
	}

	timeout, err := time.ParseDuration(get("GARDEN_IMAGE_PROBE_TIMEOUT", "5s"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("GARDEN_IMAGE_PROBE_TIMEOUT: invalid duration")
	}
	cfg.ProbeTimeout = timeout

	seed, err := strconv.ParseBool(get("GARDEN_SEED_SAMPLES", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("GARDEN_SEED_SAMPLES: %w", err)
	}
	cfg.SeedSamples = seed

	return cfg, nil
}
