package plants

import "digital-garden/internal/domain/images"

// Samples es la colección inicial cuando el slot todavía está vacío.
func Samples() []Plant {
	return []Plant{
		{
			ID:              1,
			Name:            "Pothos",
			AcquisitionDate: NewDate(2024, 1, 15),
			Category:        CategoryIndoor,
			CareNotes:       "Moderate watering, indirect light",
			ImageRef:        images.SVG("Pothos"),
		},
		{
			ID:              2,
			Name:            "Rosa",
			AcquisitionDate: NewDate(2024, 2, 20),
			Category:        CategoryOutdoor,
			CareNotes:       "Abundant watering, full sun",
			ImageRef:        images.SVG("Rosa"),
		},
	}
}
