package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "digital-garden/docs" // registra la doc OpenAPI en swag
	mem "digital-garden/internal/adapters/storage/memory"
	"digital-garden/internal/domain/images"
	"digital-garden/internal/domain/plants"
	"digital-garden/internal/middleware"
	"digital-garden/internal/platform/httpclient"
	"digital-garden/internal/platform/logger"
	"digital-garden/internal/platform/metrics"
	"digital-garden/internal/ports/kv"
	"digital-garden/internal/ports/species"
)

type Options struct {
	// Opcional: si viene nil se usa el slot en memoria.
	Slots kv.Store

	// Opcional: nil => sin enriquecimiento (modo offline).
	Species species.Lookup

	// Imágenes. Si Resolver viene nil se arma la cadena por defecto con Prober.
	Resolver       plants.ImageResolver
	Prober         images.Prober // nil => httpclient con ProbeTimeout
	PhotoSearchURL string
	SeededPhotoURL string
	Placeholder    images.Placeholder
	ProbeTimeout   time.Duration

	// SeedSamples carga Pothos y Rosa cuando el slot está vacío.
	SeedSamples bool

	Logger  logger.Logger    // opcional
	Metrics *metrics.Metrics // opcional; nil => registry propio
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	slots := opts.Slots
	if slots == nil {
		slots = mem.NewSlots()
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = newResolver(opts, m)
	}

	svc := plants.NewService(plants.Options{
		Repo:    mem.NewPlantRepo(),
		Store:   plants.NewStore(slots),
		Images:  resolver,
		Species: opts.Species,
		Logger:  log,
		Metrics: m,
	})

	var fallback []plants.Plant
	if opts.SeedSamples {
		fallback = plants.Samples()
	}
	if err := svc.Bootstrap(context.Background(), fallback); err != nil {
		log.Error("bootstrap failed", map[string]any{"error": err, "driver": string(slots.Driver())})
	}

	plants.RegisterRoutes(r, svc)

	return r
}

func newResolver(opts Options, m *metrics.Metrics) *images.Resolver {
	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = images.DefaultProbeTimeout
	}
	prober := opts.Prober
	if prober == nil {
		prober = httpclient.New(timeout)
	}
	search := opts.PhotoSearchURL
	if search == "" {
		search = images.DefaultPhotoSearchURL
	}
	seeded := opts.SeededPhotoURL
	if seeded == "" {
		seeded = images.DefaultSeededPhotoURL
	}

	return images.NewResolver(images.Options{
		Stages:       images.DefaultStages(search, seeded),
		Placeholder:  opts.Placeholder,
		Prober:       prober,
		ProbeTimeout: timeout,
		Observe: func(a images.Attempt) {
			outcome := "ok"
			if a.Err != nil {
				outcome = "error"
			}
			m.ImageAttempts.WithLabelValues(a.Stage, outcome).Inc()
		},
	})
}
