package text

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/bmfont/layout"
)

// Face is a FontSource at one pixel size. It reports pixel-aligned ink
// metrics and rasterizes glyph masks.
//
// Face is safe for concurrent use; calls are serialized internally because
// the underlying x/image face keeps mutable scratch state.
type Face struct {
	source *FontSource
	size   float64

	mu    sync.Mutex
	face  font.Face
	gtext *goTextMetrics // nil unless the gotext backend is selected
}

func newFace(s *FontSource, size float64, config faceConfig) (*Face, error) {
	xf, err := s.parsed.NewFace(size, config.hinting)
	if err != nil {
		return nil, err
	}
	f := &Face{source: s, size: size, face: xf}

	switch config.metrics {
	case MetricsXImage:
	case MetricsGoText:
		gf, err := s.goTextFont()
		if err != nil {
			_ = xf.Close()
			return nil, fmt.Errorf("text: gotext metrics: %w", err)
		}
		f.gtext = newGoTextMetrics(gf, size)
	default:
		_ = xf.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.metrics)
	}
	return f, nil
}

// Size returns the face size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Source returns the FontSource the face was created from.
func (f *Face) Source() *FontSource { return f.source }

// HasGlyph reports whether the font has a glyph for r.
func (f *Face) HasGlyph(r rune) bool {
	return f.source.HasGlyph(r)
}

// Metric returns the ink metrics of r. The ink box is pixel aligned: the
// minimum edges are floored and the maximum edges ceiled. The second result
// is false when the font has no glyph for r.
func (f *Face) Metric(r rune) (layout.GlyphMetric, bool) {
	if !f.HasGlyph(r) {
		return layout.GlyphMetric{}, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gtext != nil {
		return f.gtext.metric(r)
	}
	bounds, advance, ok := f.face.GlyphBounds(r)
	if !ok {
		return layout.GlyphMetric{}, false
	}
	return metricFromBounds(r, bounds, advance), true
}

// Lookup implements Provider. A single face ignores the style.
func (f *Face) Lookup(r rune, _ Style) (Glyph, bool) {
	m, ok := f.Metric(r)
	if !ok {
		return Glyph{}, false
	}
	return Glyph{Metric: m, Face: f}, true
}

// Mask rasterizes r into an alpha mask the size of its ink box, so that
// pixel (0, 0) of the mask is the top-left corner of m.
func (f *Face) Mask(m layout.GlyphMetric) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, m.Width, m.Height))
	if m.Width == 0 || m.Height == 0 {
		return mask
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	d := font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: f.face,
		Dot:  fixed.P(-m.Left, m.Top),
	}
	d.DrawString(string(m.Codepoint))
	return mask
}

// Close releases the underlying face.
func (f *Face) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.face == nil {
		return nil
	}
	err := f.face.Close()
	f.face = nil
	return err
}

// metricFromBounds converts x/image glyph bounds (y down, origin on the
// baseline) to a pixel-aligned metric.
func metricFromBounds(r rune, b fixed.Rectangle26_6, advance fixed.Int26_6) layout.GlyphMetric {
	m := layout.GlyphMetric{Codepoint: r, Advance: advance.Ceil()}
	minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
	maxX, maxY := b.Max.X.Ceil(), b.Max.Y.Ceil()
	if maxX <= minX || maxY <= minY {
		// Blank glyph such as a space: advance only.
		return m
	}
	m.Width = maxX - minX
	m.Height = maxY - minY
	m.Left = minX
	m.Top = -minY
	return m
}
