package text

import (
	"github.com/gogpu/bmfont/layout"
)

// Style selects a font variant.
type Style struct {
	Bold   bool
	Italic bool
}

// String returns "regular", "bold", "italic" or "bold italic".
func (s Style) String() string {
	switch {
	case s.Bold && s.Italic:
		return "bold italic"
	case s.Bold:
		return "bold"
	case s.Italic:
		return "italic"
	default:
		return "regular"
	}
}

// Glyph is a metric together with the face able to rasterize it.
type Glyph struct {
	Metric layout.GlyphMetric
	Face   *Face
}

// Provider maps a codepoint and style to a glyph.
// The second result is false when no font covers the codepoint.
type Provider interface {
	Lookup(r rune, style Style) (Glyph, bool)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(r rune, style Style) (Glyph, bool)

// Lookup calls f(r, style).
func (f ProviderFunc) Lookup(r rune, style Style) (Glyph, bool) {
	return f(r, style)
}

// Chain tries Faces in order and then Fallback. The first face that has a
// glyph for the codepoint wins.
type Chain struct {
	Faces    []*Face
	Fallback Provider
}

// Lookup implements Provider.
func (c *Chain) Lookup(r rune, style Style) (Glyph, bool) {
	for _, f := range c.Faces {
		if g, ok := f.Lookup(r, style); ok {
			return g, true
		}
	}
	if c.Fallback != nil {
		return c.Fallback.Lookup(r, style)
	}
	return Glyph{}, false
}
