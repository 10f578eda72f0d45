package plants

import (
	"context"
	"strings"
)

// Repository es la lista ordenada de plantas en memoria.
// Los ids siempre coinciden con la posición (1..n): Delete renumera.
type Repository interface {
	// Create asigna id = max+1 (o 1 si está vacío) y agrega al final.
	Create(ctx context.Context, p Plant) (Plant, error)
	// Delete devuelve false si el id no existe.
	Delete(ctx context.Context, id int) (bool, error)
	Find(ctx context.Context, id int) (Plant, error)
	Filter(ctx context.Context, keep func(Plant) bool) ([]Plant, error)
	List(ctx context.Context) ([]Plant, error)
	// Replace reemplaza la colección completa (carga inicial desde el slot).
	Replace(ctx context.Context, items []Plant) error
}

// MatchTerm arma el predicado de búsqueda: substring sin mayúsculas sobre
// nombre, categoría, cuidados y nombre científico. Término vacío => todo.
func MatchTerm(term string) func(Plant) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(p Plant) bool {
		if term == "" {
			return true
		}
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(string(p.Category)), term) ||
			strings.Contains(strings.ToLower(p.CareNotes), term) {
			return true
		}
		return p.ScientificName != "" && strings.Contains(strings.ToLower(p.ScientificName), term)
	}
}
