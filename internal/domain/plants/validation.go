package plants

import (
	"strings"
	"time"
)

// Validate revisa el Draft antes de tocar el repositorio.
// El orden de los chequeos es el del formulario: nombre, fecha, categoría, fecha futura.
func Validate(d Draft, now time.Time) (Plant, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Plant{}, invalid("name", "plant name must not be empty")
	}

	if strings.TrimSpace(d.AcquisitionDate) == "" {
		return Plant{}, invalid("acquisition_date", "acquisition date is required")
	}
	date, err := ParseDate(d.AcquisitionDate)
	if err != nil {
		return Plant{}, invalid("acquisition_date", "acquisition date must be YYYY-MM-DD")
	}

	if strings.TrimSpace(d.Category) == "" {
		return Plant{}, invalid("category", "choose Indoor or Outdoor")
	}
	cat, ok := ParseCategory(d.Category)
	if !ok {
		return Plant{}, invalid("category", "category must be Indoor or Outdoor")
	}

	// Hoy es válido; mañana ya no.
	if date.After(DateOf(now)) {
		return Plant{}, invalid("acquisition_date", "acquisition date cannot be in the future")
	}

	notes := strings.TrimSpace(d.CareNotes)
	if notes == "" {
		notes = DefaultCareNotes
	}

	return Plant{
		Name:            name,
		AcquisitionDate: date,
		Category:        cat,
		CareNotes:       notes,
	}, nil
}
