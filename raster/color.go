package raster

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/bmfont/internal/blend"
)

// Black is the colour used in place of an unparsable colour string.
var Black = color.NRGBA{A: 0xff}

// ColorError reports a colour string that could not be parsed.
type ColorError struct {
	Value string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("raster: invalid color %q", e.Value)
}

// ParseColor parses a "#RRGGBBAA" colour. Shorter strings are padded with
// 'F' digits, so "#FF0000" is opaque red and "#" is opaque white. Digits
// after the alpha channel are ignored.
//
// An invalid string yields opaque black and a *ColorError.
func ParseColor(s string) (color.NRGBA, error) {
	if s == "" || s[0] != '#' {
		return Black, &ColorError{Value: s}
	}
	hex := s[1:]
	if len(hex) < 8 {
		hex += strings.Repeat("F", 8-len(hex))
	}

	var c [4]uint8
	for i := range c {
		hi, ok1 := hexDigit(hex[2*i])
		lo, ok2 := hexDigit(hex[2*i+1])
		if !ok1 || !ok2 {
			return Black, &ColorError{Value: s}
		}
		c[i] = hi<<4 | lo
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

// FormatColor returns c as "#RRGGBBAA".
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// BlendModeError reports an unknown blend mode name.
type BlendModeError struct {
	Name string
}

func (e *BlendModeError) Error() string {
	return fmt.Sprintf("raster: unknown blend mode %q", e.Name)
}

// ParseBlendMode looks up a blend mode by name. An empty name is SrcOver.
// An unknown name yields SrcOver and a *BlendModeError.
func ParseBlendMode(name string) (blend.Mode, error) {
	if name == "" {
		return blend.SrcOver, nil
	}
	m, ok := blend.ParseMode(name)
	if !ok {
		return blend.SrcOver, &BlendModeError{Name: name}
	}
	return m, nil
}

// premul converts c to premultiplied 8-bit channels.
func premul(c color.NRGBA) (r, g, b, a byte) {
	a = c.A
	return mul255(c.R, a), mul255(c.G, a), mul255(c.B, a), a
}

func mul255(x, y byte) byte {
	return byte((uint16(x)*uint16(y) + 127) / 255)
}
