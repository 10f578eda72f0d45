package images

import (
	"fmt"
	"net/url"
	"strings"
)

// PlaceholderMode elige entre SVG inline o servicio remoto de placeholders.
type PlaceholderMode string

const (
	PlaceholderSVG    PlaceholderMode = "svg"
	PlaceholderRemote PlaceholderMode = "remote"
)

const (
	DefaultPlaceholderURL = "https://via.placeholder.com"
	svgDataPrefix         = "data:image/svg+xml;charset=utf-8,"
)

// DefaultPalette son los colores (hex sin #) del placeholder remoto.
var DefaultPalette = []string{"68d391", "4caf50", "81c784", "2e7d32", "a5d6a7", "66bb6a", "388e3c", "c5e1a5"}

// Placeholder es la última etapa: nunca falla y no se valida.
type Placeholder struct {
	Mode      PlaceholderMode
	RemoteURL string
	Palette   []string
}

func (p Placeholder) Render(name string) string {
	if p.Mode == PlaceholderRemote {
		return p.remote(name)
	}
	return SVG(name)
}

func (p Placeholder) remote(name string) string {
	base := strings.TrimRight(strings.TrimSpace(p.RemoteURL), "/")
	if base == "" {
		base = DefaultPlaceholderURL
	}
	palette := p.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	color := palette[Bucket(Hash(name), len(palette))]
	return fmt.Sprintf("%s/400x300/%s/ffffff?text=%s", base, color, url.QueryEscape(name))
}

var markupEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	"'", "&apos;",
	`"`, "&quot;",
)

// SVG genera un data URI con el nombre visible debajo del brote.
func SVG(name string) string {
	svg := `<svg width="200" height="200" viewBox="0 0 200 200" fill="none" xmlns="http://www.w3.org/2000/svg">` +
		`<rect width="200" height="200" fill="#f0f9ff"/>` +
		`<text x="100" y="105" font-family="Arial" font-size="60" text-anchor="middle" fill="#68d391">🌱</text>` +
		`<text x="100" y="170" font-family="Arial" font-size="14" text-anchor="middle" fill="#68d391">` +
		markupEscaper.Replace(name) +
		`</text></svg>`
	return svgDataPrefix + encodeURIComponent(svg)
}

// encodeURIComponent deja sin escapar A-Z a-z 0-9 - _ . ! ~ * ' ( ), igual que el navegador.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
