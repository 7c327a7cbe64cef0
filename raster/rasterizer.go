package raster

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/bmfont/internal/blend"
	"github.com/gogpu/bmfont/internal/filter"
	"github.com/gogpu/bmfont/layout"
)

// Glyph is a placed glyph and its ink coverage. The mask covers the ink box
// with its origin at the box's top-left corner.
type Glyph struct {
	layout.PlacedGlyph
	Mask *image.Alpha
}

// Rasterizer paints pages in a Style. It is safe for concurrent use.
type Rasterizer struct {
	style  Style
	logger *slog.Logger
}

// New creates a rasterizer for style.
func New(style Style, opts ...Option) *Rasterizer {
	r := &Rasterizer{style: style, logger: slog.New(nopHandler{})}
	for _, opt := range opts {
		opt(r)
	}
	r.style.OutlineThickness = max(r.style.OutlineThickness, 0)
	return r
}

// Style returns the style the rasterizer paints with.
func (r *Rasterizer) Style() Style {
	return r.style
}

// DrawPage paints glyphs onto a new width x height page cleared to the
// background colour. It stops early when ctx is cancelled.
func (r *Rasterizer) DrawPage(ctx context.Context, width, height int, glyphs []Glyph) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidPageSize, width, height)
	}
	start := time.Now()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.style.Background), image.Point{}, draw.Src)

	for _, g := range glyphs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.drawGlyph(img, g)
	}

	r.logger.Debug("draw page",
		"width", width, "height", height,
		"glyphs", len(glyphs), "elapsed", time.Since(start))
	return img, nil
}

func (r *Rasterizer) drawGlyph(img *image.RGBA, g Glyph) {
	s := &r.style
	margin := s.OutlineThickness
	origin := image.Pt(g.X+margin+s.GlyphPadding.Left, g.Y+margin+s.GlyphPadding.Up)
	ink := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(g.Width, g.Height))}

	if g.Mask != nil && !g.Mask.Bounds().Empty() {
		if s.OutlineThickness > 0 {
			radius := s.strokeRadius()
			if len(s.OutlineShadows) > 0 {
				outlined := filter.Dilate(g.Mask, radius)
				for _, sh := range s.OutlineShadows {
					drawShadow(img, outlined, origin, sh)
				}
			}
			fill(img, filter.Stroke(g.Mask, radius), origin, s.Outline, ink)
		}
		for _, sh := range s.TextShadows {
			drawShadow(img, g.Mask, origin, sh)
		}
		fill(img, g.Mask, origin, s.Text, ink)
	}

	if s.Debug.Enabled {
		r.drawDebug(img, g, ink)
	}
}

func (r *Rasterizer) drawDebug(img *image.RGBA, g Glyph, ink image.Rectangle) {
	s := &r.style
	if s.GlyphPadding != (layout.Padding{}) {
		box := image.Rect(g.X, g.Y, g.X+g.BoxWidth, g.Y+g.BoxHeight)
		strokeRect(img, box, newSolidShader(s.Debug.Box))
	}
	if s.OutlineThickness > 0 {
		strokeRect(img, ink.Inset(-s.OutlineThickness), newSolidShader(s.Debug.Outline))
	}
	strokeRect(img, ink, newSolidShader(s.Debug.Ink))
}

// drawShadow composites a shadow layer: the mask blurred and offset, with
// the unblurred mask over it, all in the shadow colour.
func drawShadow(img *image.RGBA, mask *image.Alpha, origin image.Point, sh Shadow) {
	blurred := filter.BlurAlpha(mask, sh.Blur)
	shifted := blurred.Bounds().Add(image.Pt(sh.OffsetX, sh.OffsetY))

	layer := image.NewAlpha(mask.Bounds().Union(shifted))
	draw.Draw(layer, shifted, blurred, blurred.Bounds().Min, draw.Src)
	draw.Draw(layer, mask.Bounds(), mask, mask.Bounds().Min, draw.Over)

	fill(img, layer, origin, Paint{Color: sh.Color, Blend: sh.Blend}, image.Rectangle{})
}

// fill composites paint through mask, whose (0,0) sits at origin on img.
// Gradients are mapped onto box.
func fill(img *image.RGBA, mask *image.Alpha, origin image.Point, p Paint, box image.Rectangle) {
	var sh shader
	if p.Gradient != nil {
		sh = newGradientShader(p.Gradient, box)
	} else {
		sh = newSolidShader(p.Color)
	}
	fn := blend.FuncFor(p.Blend)

	area := mask.Bounds().Add(origin).Intersect(img.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			c := mask.Pix[mask.PixOffset(x-origin.X, y-origin.Y)]
			if c == 0 {
				continue
			}
			compose(img, x, y, sh, fn, c)
		}
	}
}

// strokeRect outlines rect with a one pixel line drawn inside its edge.
func strokeRect(img *image.RGBA, rect image.Rectangle, sh shader) {
	if rect.Empty() {
		return
	}
	fn := blend.FuncFor(blend.SrcOver)
	plot := func(x, y int) {
		if image.Pt(x, y).In(img.Bounds()) {
			compose(img, x, y, sh, fn, 0xff)
		}
	}
	right, bottom := rect.Max.X-1, rect.Max.Y-1
	for x := rect.Min.X; x <= right; x++ {
		plot(x, rect.Min.Y)
		if bottom != rect.Min.Y {
			plot(x, bottom)
		}
	}
	for y := rect.Min.Y + 1; y < bottom; y++ {
		plot(rect.Min.X, y)
		if right != rect.Min.X {
			plot(right, y)
		}
	}
}

// compose blends the shader colour onto pixel (x, y) and keeps coverage c
// of the result.
func compose(img *image.RGBA, x, y int, sh shader, fn blend.Func, c byte) {
	sr, sg, sb, sa := sh.at(x, y)
	i := img.PixOffset(x, y)
	d := img.Pix[i : i+4 : i+4]
	br, bg, bb, ba := fn(sr, sg, sb, sa, d[0], d[1], d[2], d[3])
	if c == 0xff {
		d[0], d[1], d[2], d[3] = br, bg, bb, ba
		return
	}
	d[0] = lerp(d[0], br, c)
	d[1] = lerp(d[1], bg, c)
	d[2] = lerp(d[2], bb, c)
	d[3] = lerp(d[3], ba, c)
}

func lerp(d, b, c byte) byte {
	v := int(d)*255 + (int(b)-int(d))*int(c)
	return byte((v + 127) / 255)
}
