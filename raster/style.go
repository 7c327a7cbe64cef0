package raster

import (
	"image/color"

	"github.com/gogpu/bmfont/internal/blend"
	"github.com/gogpu/bmfont/layout"
)

// BlendMode is a named compositing operation. See [ParseBlendMode].
type BlendMode = blend.Mode

// Point is a position relative to a glyph's ink box: (0,0) is its top-left
// and (1,1) its bottom-right corner.
type Point struct {
	X, Y float64
}

// Stop is one colour of a gradient.
type Stop struct {
	Pos   float64
	Color color.NRGBA
}

// LinearGradient shades a glyph along the line from Begin to End. Positions
// before the first stop or after the last take the colour of that stop.
type LinearGradient struct {
	Begin, End Point
	Stops      []Stop
}

// NewLinearGradient builds a gradient from colours and optional stop
// positions. Fewer than two colours are padded with black. When fewer than
// two positions are given the colours are spread evenly; otherwise the
// shorter of the two lists decides the stop count.
func NewLinearGradient(begin, end Point, colors []color.NRGBA, pos []float64) *LinearGradient {
	for len(colors) < 2 {
		colors = append(colors, Black)
	}
	g := &LinearGradient{Begin: begin, End: end}
	if len(pos) < 2 {
		last := float64(len(colors) - 1)
		for i, c := range colors {
			g.Stops = append(g.Stops, Stop{Pos: float64(i) / last, Color: c})
		}
		return g
	}
	// Positions are clamped to [0, 1] and made non-decreasing.
	n := min(len(colors), len(pos))
	prev := 0.0
	for i := range n {
		p := min(max(pos[i], prev), 1)
		g.Stops = append(g.Stops, Stop{Pos: p, Color: colors[i]})
		prev = p
	}
	return g
}

// Paint is how one layer of a glyph is filled.
type Paint struct {
	Color color.NRGBA
	Blend BlendMode

	// Gradient replaces Color when set.
	Gradient *LinearGradient
}

// Shadow is a blurred, offset copy of a glyph layer.
type Shadow struct {
	OffsetX, OffsetY int

	// Blur is the Gaussian standard deviation in pixels.
	Blur float64

	Color color.NRGBA
	Blend BlendMode
}

// Debug selects the rectangles drawn over every glyph.
type Debug struct {
	Enabled bool

	// Box is the whole atlas box of a glyph. It is only drawn when the
	// glyph padding is non-zero.
	Box color.NRGBA

	// Outline is the ink box grown by the outline margin. It is only drawn
	// when the outline is enabled.
	Outline color.NRGBA

	// Ink is the raw ink box.
	Ink color.NRGBA
}

// Style describes how glyphs are painted.
type Style struct {
	Background color.NRGBA

	Text        Paint
	TextShadows []Shadow

	// OutlineThickness is the margin reserved around the ink. Zero disables
	// the outline and its shadows.
	OutlineThickness int

	// OutlineRenderScale scales the stroke width relative to the
	// thickness. A scale of 2 makes the stroke reach exactly the margin.
	OutlineRenderScale float64

	Outline        Paint
	OutlineShadows []Shadow

	// GlyphPadding must match the layout so the ink lands inside its box.
	GlyphPadding layout.Padding

	Debug Debug
}

// DefaultStyle returns black text on a transparent white background.
func DefaultStyle() Style {
	return Style{
		Background:         color.NRGBA{R: 0xff, G: 0xff, B: 0xff},
		Text:               Paint{Color: Black, Blend: blend.SrcOver},
		OutlineRenderScale: 2,
		Outline:            Paint{Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, Blend: blend.SrcOver},
		Debug: Debug{
			Box:     color.NRGBA{G: 0xff, A: 0xff},
			Outline: color.NRGBA{G: 0xff, B: 0xff, A: 0xff},
			Ink:     color.NRGBA{R: 0xff, B: 0xff, A: 0xff},
		},
	}
}

// strokeRadius returns how far the outline stroke reaches beyond the ink
// edge.
func (s *Style) strokeRadius() float64 {
	width := float64(s.OutlineThickness) * s.OutlineRenderScale
	if s.OutlineThickness <= 0 {
		width = 1
	}
	return width / 2
}
