package images

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultProbeTimeout es el deadline por etapa para validar una imagen.
const DefaultProbeTimeout = 5 * time.Second

var (
	ErrNoCandidate = errors.New("stage produced no candidate")
	ErrUnreachable = errors.New("image unreachable")
)

// Prober verifica que una referencia de imagen exista (HEAD o equivalente).
type Prober interface {
	Probe(ctx context.Context, ref string) error
}

// Attempt es el resultado de una etapa. Err == nil solo en la etapa aceptada.
type Attempt struct {
	Stage     string
	Candidate string
	Err       error
}

// Resolution es la referencia final más el recorrido por las etapas.
type Resolution struct {
	Ref      string
	Stage    string
	Attempts []Attempt
}

type Options struct {
	Stages       []Stage
	Placeholder  Placeholder
	Prober       Prober        // nil => ninguna etapa remota valida (modo offline)
	ProbeTimeout time.Duration // default 5s
	Observe      func(Attempt) // opcional, p.ej. métricas
}

// Resolver recorre las etapas en orden y se queda con la primera validada.
// El placeholder final siempre responde, así que Resolve es total.
type Resolver struct {
	stages      []Stage
	placeholder Placeholder
	prober      Prober
	timeout     time.Duration
	observe     func(Attempt)
}

func NewResolver(opts Options) *Resolver {
	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Resolver{
		stages:      opts.Stages,
		placeholder: opts.Placeholder,
		prober:      opts.Prober,
		timeout:     timeout,
		observe:     opts.Observe,
	}
}

// DefaultStages arma la cadena estándar: búsqueda de fotos, foto sembrada, galería.
func DefaultStages(photoSearchURL, seededPhotoURL string) []Stage {
	return []Stage{
		PhotoSearch{BaseURL: photoSearchURL},
		SeededPhoto{BaseURL: seededPhotoURL},
		NewDefaultGallery(),
	}
}

func (r *Resolver) Resolve(ctx context.Context, name string) Resolution {
	name = strings.TrimSpace(name)
	res := Resolution{}

	for _, st := range r.stages {
		a := Attempt{Stage: st.Name()}

		cand, ok := st.Candidate(name)
		if !ok {
			a.Err = ErrNoCandidate
			r.record(&res, a)
			continue
		}
		a.Candidate = cand

		if err := r.validate(ctx, cand); err != nil {
			a.Err = err
			r.record(&res, a)
			continue
		}

		r.record(&res, a)
		res.Ref = cand
		res.Stage = a.Stage
		return res
	}

	ref := r.placeholder.Render(name)
	r.record(&res, Attempt{Stage: StagePlaceholder, Candidate: ref})
	res.Ref = ref
	res.Stage = StagePlaceholder
	return res
}

func (r *Resolver) validate(ctx context.Context, ref string) error {
	if r.prober == nil {
		return fmt.Errorf("%w: no prober configured", ErrUnreachable)
	}
	pctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.prober.Probe(pctx, ref); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return nil
}

func (r *Resolver) record(res *Resolution, a Attempt) {
	res.Attempts = append(res.Attempts, a)
	if r.observe != nil {
		r.observe(a)
	}
}
