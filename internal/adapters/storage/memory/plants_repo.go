package memory

import (
	"context"
	"sync"

	"digital-garden/internal/domain/plants"
)

// plantRepo es la lista ordenada de plantas. El mutex serializa los handlers
// HTTP concurrentes; la lógica es la de una sola lista con push/filter.
type plantRepo struct {
	mu    sync.RWMutex
	items []plants.Plant
}

func NewPlantRepo() plants.Repository {
	return &plantRepo{items: make([]plants.Plant, 0)}
}

func (r *plantRepo) Create(ctx context.Context, p plants.Plant) (plants.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for _, it := range r.items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	p.ID = maxID + 1
	r.items = append(r.items, p)
	return p, nil
}

func (r *plantRepo) Delete(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]plants.Plant, 0, len(r.items))
	for _, it := range r.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(r.items) {
		return false, nil
	}

	// renumerar 1..n (sino quedan huecos)
	for i := range kept {
		kept[i].ID = i + 1
	}
	r.items = kept
	return true, nil
}

func (r *plantRepo) Find(ctx context.Context, id int) (plants.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return plants.Plant{}, plants.ErrNotFound
}

func (r *plantRepo) Filter(ctx context.Context, keep func(plants.Plant) bool) ([]plants.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]plants.Plant, 0)
	for _, it := range r.items {
		if keep == nil || keep(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *plantRepo) List(ctx context.Context) ([]plants.Plant, error) {
	return r.Filter(ctx, nil)
}

// Replace carga la colección tal cual viene del slot, renumerando por si
// el snapshot quedó con huecos.
func (r *plantRepo) Replace(ctx context.Context, items []plants.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]plants.Plant, len(items))
	copy(next, items)
	for i := range next {
		next[i].ID = i + 1
	}
	r.items = next
	return nil
}
