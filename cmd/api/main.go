package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digital-garden/internal/adapters/species/perenual"
	"digital-garden/internal/adapters/storage"
	"digital-garden/internal/adapters/storage/s3"
	"digital-garden/internal/domain/images"
	"digital-garden/internal/platform/config"
	"digital-garden/internal/platform/logger"
	"digital-garden/internal/platform/metrics"
	"digital-garden/internal/ports/species"
	"digital-garden/internal/router"
)

// @title Digital Garden API
// @version 1.0
// @description Colección de plantas con imágenes resueltas por etapas y enriquecimiento opcional desde la base de especies.
// @BasePath /
func main() {
	cfg, err := config.Load()
	log := logger.NewFromEnv()
	if err != nil {
		log.Error("invalid config", map[string]any{"error": err})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slots, err := storage.Open(ctx, storage.Config{
		Driver:      cfg.StoreDriver,
		FileDir:     cfg.FileDir,
		SQLitePath:  cfg.SQLitePath,
		PostgresDSN: cfg.PostgresDSN,
		S3: s3.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			Prefix:    cfg.S3Prefix,
			PathStyle: cfg.S3PathStyle,
		},
	})
	if err != nil {
		log.Error("open store", map[string]any{"driver": string(cfg.StoreDriver), "error": err})
		os.Exit(1)
	}
	defer slots.Close()

	// sin API key se corre sin enriquecimiento
	var lookup species.Lookup
	if cfg.PerenualAPIKey != "" {
		lookup = perenual.NewClient(perenual.Config{
			BaseURL: cfg.PerenualBaseURL,
			APIKey:  cfg.PerenualAPIKey,
		})
	} else {
		log.Warn("PERENUAL_API_KEY not set, species enrichment disabled", nil)
	}

	r := router.NewRouter(router.Options{
		Slots:          slots,
		Species:        lookup,
		PhotoSearchURL: cfg.PhotoSearchURL,
		SeededPhotoURL: cfg.SeededPhotoURL,
		Placeholder: images.Placeholder{
			Mode:      images.PlaceholderMode(cfg.PlaceholderMode),
			RemoteURL: cfg.PlaceholderURL,
		},
		ProbeTimeout: cfg.ProbeTimeout,
		SeedSamples:  cfg.SeedSamples,
		Logger:       log,
		Metrics:      metrics.New(),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second, // un alta puede esperar varios probes
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": addr, "driver": string(slots.Driver())})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
}
