package plants

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category define si la planta vive dentro o fuera de casa.
// @Enum Indoor, Outdoor
type Category string

const (
	CategoryIndoor  Category = "Indoor"
	CategoryOutdoor Category = "Outdoor"
)

// ParseCategory acepta el valor sin importar mayúsculas/espacios.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "indoor":
		return CategoryIndoor, true
	case "outdoor":
		return CategoryOutdoor, true
	default:
		return "", false
	}
}

const (
	// DefaultCareNotes se usa cuando el usuario deja los cuidados en blanco.
	DefaultCareNotes = "no special care"
	// EnrichedCareNotes reemplaza a DefaultCareNotes cuando la API aportó datos.
	EnrichedCareNotes = "custom care available in details"
)

const dateLayout = "2006-01-02"

// Date es una fecha de calendario (sin hora) serializada como YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return Date{Time: t}, nil
}

// DateOf trunca t al día calendario en su propia zona.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) After(other Date) bool { return d.Time.After(other.Time) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Plant es el registro persistido en el slot "plantas".
// Los campos de enriquecimiento solo existen si la API respondió.
type Plant struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	AcquisitionDate Date     `json:"acquisitionDate"`
	Category        Category `json:"category"`
	CareNotes       string   `json:"careNotes"`
	ImageRef        string   `json:"imageRef"`

	ScientificName string `json:"scientificName,omitempty"`
	Cycle          string `json:"cycle,omitempty"`
	Watering       string `json:"watering,omitempty"`
	Light          string `json:"light,omitempty"`
	Toxicity       string `json:"toxicity,omitempty"`
	CareLevel      string `json:"careLevel,omitempty"`
	ExternalID     int    `json:"externalId,omitempty"`
}

// Enriched indica si el registro trae datos de la base externa.
func (p Plant) Enriched() bool {
	return p.ExternalID != 0
}

// Draft son los datos crudos del formulario, todavía sin validar.
type Draft struct {
	Name            string
	AcquisitionDate string // YYYY-MM-DD
	Category        string
	CareNotes       string
}
