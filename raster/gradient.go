package raster

import (
	"image"
	"image/color"
)

// shader yields the premultiplied source colour of a pixel.
type shader interface {
	at(x, y int) (r, g, b, a byte)
}

type solidShader struct {
	r, g, b, a byte
}

func newSolidShader(c color.NRGBA) solidShader {
	r, g, b, a := premul(c)
	return solidShader{r, g, b, a}
}

func (s solidShader) at(int, int) (byte, byte, byte, byte) {
	return s.r, s.g, s.b, s.a
}

// gradientShader evaluates a LinearGradient mapped onto one glyph box.
type gradientShader struct {
	stops  []Stop
	x0, y0 float64
	dx, dy float64
	invLen float64 // 1 / |d|^2, zero for a degenerate line
}

func newGradientShader(g *LinearGradient, box image.Rectangle) *gradientShader {
	w, h := float64(box.Dx()), float64(box.Dy())
	x0 := float64(box.Min.X) + w*g.Begin.X
	y0 := float64(box.Min.Y) + h*g.Begin.Y
	x1 := float64(box.Min.X) + w*g.End.X
	y1 := float64(box.Min.Y) + h*g.End.Y

	s := &gradientShader{stops: g.Stops, x0: x0, y0: y0, dx: x1 - x0, dy: y1 - y0}
	if l := s.dx*s.dx + s.dy*s.dy; l > 0 {
		s.invLen = 1 / l
	}
	return s
}

func (s *gradientShader) at(x, y int) (byte, byte, byte, byte) {
	if len(s.stops) == 0 {
		return 0, 0, 0, 0
	}
	last := s.stops[len(s.stops)-1]
	if s.invLen == 0 {
		return premul(last.Color)
	}

	// Project the pixel centre onto the gradient line.
	px, py := float64(x)+0.5-s.x0, float64(y)+0.5-s.y0
	t := (px*s.dx + py*s.dy) * s.invLen
	return premul(s.colorAt(t))
}

func (s *gradientShader) colorAt(t float64) color.NRGBA {
	first, last := s.stops[0], s.stops[len(s.stops)-1]
	if t <= first.Pos {
		return first.Color
	}
	if t >= last.Pos {
		return last.Color
	}
	for i := 1; i < len(s.stops); i++ {
		b := s.stops[i]
		if t > b.Pos {
			continue
		}
		a := s.stops[i-1]
		span := b.Pos - a.Pos
		if span <= 0 {
			return b.Color
		}
		return lerpColor(a.Color, b.Color, (t-a.Pos)/span)
	}
	return last.Color
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
