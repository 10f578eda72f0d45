package images

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Nombres de etapa, también usados como label de métricas.
const (
	StagePhotoSearch = "photo_search"
	StageSeededPhoto = "seeded_photo"
	StageGallery     = "gallery"
	StagePlaceholder = "placeholder"
)

const (
	DefaultPhotoSearchURL = "https://source.unsplash.com/400x300"
	DefaultSeededPhotoURL = "https://picsum.photos"
	seededPhotoCount      = 1000
)

// Stage propone una referencia candidata para un nombre.
// ok=false significa que la etapa no tiene nada que ofrecer (no se valida).
type Stage interface {
	Name() string
	Candidate(name string) (ref string, ok bool)
}

// PhotoSearch busca "<nombre> plant" en un endpoint de fotos.
type PhotoSearch struct {
	BaseURL string
}

func (PhotoSearch) Name() string { return StagePhotoSearch }

func (s PhotoSearch) Candidate(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	base := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if base == "" {
		base = DefaultPhotoSearchURL
	}
	return base + "/?" + url.QueryEscape(name+" plant"), true
}

// SeededPhoto pide una foto por id numérico derivado del hash del nombre.
type SeededPhoto struct {
	BaseURL string
}

func (SeededPhoto) Name() string { return StageSeededPhoto }

func (s SeededPhoto) Candidate(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	base := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if base == "" {
		base = DefaultSeededPhotoURL
	}
	return fmt.Sprintf("%s/id/%d/400/300", base, Bucket(Hash(name), seededPhotoCount)), true
}

// Gallery resuelve contra un diccionario curado y, si no hay match,
// contra un set chico de imágenes genéricas elegidas por hash.
type Gallery struct {
	curated map[string]string
	keys    []string // más largas primero, para que "snake plant" gane sobre "plant"
	generic []string
}

func NewGallery(curated map[string]string, generic []string) *Gallery {
	g := &Gallery{
		curated: make(map[string]string, len(curated)),
		generic: append([]string(nil), generic...),
	}
	for k, v := range curated {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || strings.TrimSpace(v) == "" {
			continue
		}
		g.curated[k] = v
		g.keys = append(g.keys, k)
	}
	sort.Slice(g.keys, func(i, j int) bool {
		if len(g.keys[i]) != len(g.keys[j]) {
			return len(g.keys[i]) > len(g.keys[j])
		}
		return g.keys[i] < g.keys[j]
	})
	return g
}

// NewDefaultGallery usa el catálogo incluido.
func NewDefaultGallery() *Gallery {
	return NewGallery(DefaultCurated, DefaultGeneric)
}

func (*Gallery) Name() string { return StageGallery }

func (g *Gallery) Candidate(name string) (string, bool) {
	if ref, ok := g.Lookup(name); ok {
		return ref, true
	}
	if len(g.generic) == 0 {
		return "", false
	}
	return g.generic[Bucket(Hash(name), len(g.generic))], true
}

// Lookup busca solo en el diccionario curado: exacto y después substring en ambos sentidos.
func (g *Gallery) Lookup(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}
	if ref, ok := g.curated[key]; ok {
		return ref, true
	}
	for _, k := range g.keys {
		if strings.Contains(key, k) || strings.Contains(k, key) {
			return g.curated[k], true
		}
	}
	return "", false
}
