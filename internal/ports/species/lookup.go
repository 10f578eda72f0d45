package species

import (
	"context"
	"errors"
)

// NotAvailable reemplaza cualquier campo que la API no trae.
const NotAvailable = "not available"

var (
	ErrNotConfigured = errors.New("species lookup not configured")
	ErrNoMatch       = errors.New("species lookup: no match")
	ErrUpstream      = errors.New("species lookup upstream error")
)

// Summary es el primer resultado de la búsqueda por nombre, ya normalizado.
type Summary struct {
	ExternalID     int
	ScientificName string
	Cycle          string
	Watering       string
	Light          string
	Toxicity       string
	CareLevel      string
}

// Care agrupa los cuidados detallados de una especie.
type Care struct {
	Watering      string
	Light         string
	Humidity      string
	Temperature   string
	Fertilization string
	Pruning       string
}

// Details es la ficha por id externo.
type Details struct {
	Description string
	Care        Care
	Pests       []string
	Diseases    []string
}

// Lookup consulta la base de especies. Es best-effort: el caller trata
// cualquier error como "sin datos".
type Lookup interface {
	LookupSummary(ctx context.Context, name string) (Summary, error)
	LookupDetail(ctx context.Context, externalID int) (Details, error)
}
