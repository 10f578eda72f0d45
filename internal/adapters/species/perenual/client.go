package perenual

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"digital-garden/internal/platform/httpclient"
	"digital-garden/internal/ports/species"
)

const DefaultBaseURL = "https://perenual.com/api"

// Config del cliente Perenual.
// BaseURL y APIKey normalmente vienen de env (PERENUAL_BASE_URL / PERENUAL_API_KEY).
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implementa species.Lookup contra la API de Perenual.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
}

var _ species.Lookup = (*Client)(nil)

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	// una base inválida deja el cliente sin configurar (ErrNotConfigured)
	hc, err := httpclient.NewWithBaseURL(base, timeout)
	if err != nil {
		base = ""
		hc = httpclient.New(timeout)
	}
	return &Client{
		baseURL: base,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		http:    hc,
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

// LookupSummary busca por nombre y se queda con el primer resultado.
func (c *Client) LookupSummary(ctx context.Context, name string) (species.Summary, error) {
	if !c.IsConfigured() {
		return species.Summary{}, species.ErrNotConfigured
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return species.Summary{}, errors.New("name required")
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", name)

	var out speciesListResponse
	if err := c.http.GetJSON(ctx, "/species-list", q, &out); err != nil {
		return species.Summary{}, upstream(err)
	}
	if len(out.Data) == 0 {
		return species.Summary{}, species.ErrNoMatch
	}

	return toSummary(out.Data[0]), nil
}

// LookupDetail trae la ficha de cuidados por id externo.
func (c *Client) LookupDetail(ctx context.Context, externalID int) (species.Details, error) {
	if !c.IsConfigured() {
		return species.Details{}, species.ErrNotConfigured
	}
	if externalID <= 0 {
		return species.Details{}, errors.New("external id required")
	}

	q := url.Values{}
	q.Set("key", c.apiKey)

	var out detailResponse
	path := "/species/details/" + strconv.Itoa(externalID)
	if err := c.http.GetJSON(ctx, path, q, &out); err != nil {
		return species.Details{}, upstream(err)
	}

	return toDetails(out), nil
}

func upstream(err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("%w: status=%d", species.ErrUpstream, httpErr.StatusCode)
	}
	return fmt.Errorf("%w: %v", species.ErrUpstream, err)
}

func toSummary(it speciesItem) species.Summary {
	s := species.Summary{
		ExternalID:     it.ID,
		ScientificName: joinOrNA(it.ScientificName),
		Cycle:          orNA(string(it.Cycle)),
		Watering:       orNA(string(it.Watering)),
		Light:          joinOrNA(it.Sunlight),
		Toxicity:       "non-toxic",
		CareLevel:      orNA(string(it.CareLevel)),
	}
	if it.PoisonousToHumans {
		s.Toxicity = "toxic to humans"
	}
	return s
}

func toDetails(d detailResponse) species.Details {
	watering := string(d.Watering)
	if d.WateringGeneralBenchmark != nil {
		if v := strings.Trim(string(d.WateringGeneralBenchmark.Value), `"`); v != "" {
			watering = v
		}
	}

	temperature := species.NotAvailable
	if d.Hardiness != nil && d.Hardiness.Min != "" && d.Hardiness.Max != "" {
		temperature = fmt.Sprintf("%s°C - %s°C", d.Hardiness.Min, d.Hardiness.Max)
	}

	return species.Details{
		Description: orNA(string(d.Description)),
		Care: species.Care{
			Watering:      orNA(watering),
			Light:         joinOrNA(d.Sunlight),
			Humidity:      orNA(string(d.Humidity)),
			Temperature:   temperature,
			Fertilization: orNA(string(d.Fertilizer)),
			Pruning:       joinOrNA(d.PruningMonth),
		},
		Pests:    nonNil(d.PestSusceptibility),
		Diseases: nonNil(d.DiseaseSusceptibility),
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func orNA(v string) string {
	return orDefault(v, species.NotAvailable)
}

func joinOrNA(items []string) string {
	return orNA(strings.Join(items, ", "))
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
