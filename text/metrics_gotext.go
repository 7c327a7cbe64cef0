package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/bmfont/layout"
)

// goTextMetrics measures glyphs by shaping single runes with the go-text
// HarfBuzz shaper. It is not safe for concurrent use; Face serializes calls.
type goTextMetrics struct {
	face   *tsfont.Face
	size   fixed.Int26_6
	lang   language.Language
	shaper shaping.HarfbuzzShaper
}

func newGoTextMetrics(f *tsfont.Font, size float64) *goTextMetrics {
	return &goTextMetrics{
		// tsfont.Face is not safe for concurrent use, so each Face gets its
		// own wrapper around the shared Font.
		face: tsfont.NewFace(f),
		size: floatToFixed(size),
		lang: language.NewLanguage("en"),
	}
}

func (g *goTextMetrics) metric(r rune) (layout.GlyphMetric, bool) {
	runes := []rune{r}
	out := g.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      g.face,
		Size:      g.size,
		Script:    language.LookupScript(r),
		Language:  g.lang,
	})
	if len(out.Glyphs) == 0 {
		return layout.GlyphMetric{}, false
	}
	return metricFromExtents(r, out.Glyphs[0]), true
}

// metricFromExtents converts shaped glyph extents (y up, Height negative
// for ink below YBearing) to a pixel-aligned metric.
func metricFromExtents(r rune, gl shaping.Glyph) layout.GlyphMetric {
	m := layout.GlyphMetric{Codepoint: r, Advance: gl.Advance.Ceil()}
	left := gl.XBearing.Floor()
	right := (gl.XBearing + gl.Width).Ceil()
	top := gl.YBearing.Ceil()
	bottom := (gl.YBearing + gl.Height).Floor()
	if right <= left || top <= bottom {
		return m
	}
	m.Width = right - left
	m.Height = top - bottom
	m.Left = left
	m.Top = top
	return m
}

// parseGoText parses font data with go-text, selecting index inside a
// collection.
func parseGoText(data []byte, index int) (*tsfont.Font, error) {
	if index == 0 {
		face, err := tsfont.ParseTTF(bytes.NewReader(data))
		if err == nil {
			return face.Font, nil
		}
	}
	faces, err := tsfont.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	if index < 0 || index >= len(faces) {
		return nil, &CollectionIndexError{Index: index, Count: len(faces)}
	}
	return faces[index].Font, nil
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}
