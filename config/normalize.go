package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/bmfont/layout"
	"github.com/gogpu/bmfont/raster"
	"github.com/gogpu/bmfont/text"
)

// Values substituted by Normalize.
const (
	FallbackMaxWidth    = 2048
	FallbackBackground  = "#FFFFFF00"
	FallbackRenderScale = 2.0

	minRenderScale = 0.001
)

// Normalize clamps values the layout cannot work with. It is idempotent.
func (c *Config) Normalize() {
	if c.MaxWidth <= 0 {
		c.MaxWidth = FallbackMaxWidth
	}
	c.SpacingGlyphX = max(c.SpacingGlyphX, 0)
	c.SpacingGlyphY = max(c.SpacingGlyphY, 0)

	c.PaddingLeft = max(c.PaddingLeft, 0)
	c.PaddingRight = max(c.PaddingRight, 0)
	c.PaddingUp = max(c.PaddingUp, 0)
	c.PaddingDown = max(c.PaddingDown, 0)

	c.GlyphPaddingLeft = max(c.GlyphPaddingLeft, 0)
	c.GlyphPaddingRight = max(c.GlyphPaddingRight, 0)
	c.GlyphPaddingUp = max(c.GlyphPaddingUp, 0)
	c.GlyphPaddingDown = max(c.GlyphPaddingDown, 0)

	ts := &c.TextStyle
	ts.OutlineThickness = max(ts.OutlineThickness, 0)
	if ts.Background == "" {
		ts.Background = FallbackBackground
	}
	if ts.OutlineRenderScale < minRenderScale {
		ts.OutlineRenderScale = FallbackRenderScale
	}
	c.Workers = max(c.Workers, 0)
}

// Validate reports the first value that makes a run impossible as a
// *FieldError.
func (c *Config) Validate() error {
	if len(c.Pages) == 0 {
		return &FieldError{Field: "pages", Reason: "at least one page is required"}
	}
	if c.TextStyle.FontSize <= 0 {
		return &FieldError{Field: "text_style.font_size", Reason: fmt.Sprintf("must be positive, got %d", c.TextStyle.FontSize)}
	}
	if c.MaxWidth <= 0 {
		return &FieldError{Field: "max_width", Reason: fmt.Sprintf("must be positive, got %d", c.MaxWidth)}
	}
	switch c.MetricsBackend {
	case "", text.MetricsXImage, text.MetricsGoText:
	default:
		return &FieldError{Field: "metrics_backend", Reason: fmt.Sprintf("unknown backend %q", c.MetricsBackend)}
	}
	if c.Workers < 0 {
		return &FieldError{Field: "workers", Reason: "must not be negative"}
	}
	return nil
}

// Layout returns the atlas layout settings.
func (c *Config) Layout() layout.Config {
	return layout.Config{
		FontSize: c.TextStyle.FontSize,
		Padding: layout.Padding{
			Up: c.PaddingUp, Right: c.PaddingRight, Down: c.PaddingDown, Left: c.PaddingLeft,
		},
		Spacing:           layout.Spacing{X: c.SpacingGlyphX, Y: c.SpacingGlyphY},
		GlyphPadding:      c.glyphPadding(),
		OutlineMargin:     c.TextStyle.OutlineThickness,
		MaxWidth:          c.MaxWidth,
		PowerOfTwo:        c.PowerOfTwo,
		FullyWrapped:      c.FullyWrapped,
		LineHeightAdvance: c.LineHeightAdvance,
		GlyphXAdvance:     c.GlyphPaddingXAdvance,
		GlyphYAdvance:     c.GlyphPaddingYAdvance,
	}
}

func (c *Config) glyphPadding() layout.Padding {
	return layout.Padding{
		Up: c.GlyphPaddingUp, Right: c.GlyphPaddingRight, Down: c.GlyphPaddingDown, Left: c.GlyphPaddingLeft,
	}
}

// RasterStyle converts the text style. Invalid colours become opaque black
// and unknown blend modes or effects are ignored; each of them is reported
// in the returned error, joined with errors.Join. The style is usable even
// when the error is non-nil.
func (c *Config) RasterStyle() (raster.Style, error) {
	var p parser
	ts := &c.TextStyle

	s := raster.Style{
		Background:         p.color("text_style.background_color", ts.Background),
		Text:               p.paint("text_style.", "", ts.Color, ts.BlendMode, ts.Effect),
		TextShadows:        p.shadows("text_style.shadows", ts.Shadows),
		OutlineThickness:   ts.OutlineThickness,
		OutlineRenderScale: ts.OutlineRenderScale,
		Outline:            p.paint("text_style.", "outline_", ts.OutlineColor, ts.OutlineBlendMode, ts.OutlineEffect),
		OutlineShadows:     p.shadows("text_style.outline_shadows", ts.OutlineShadows),
		GlyphPadding:       c.glyphPadding(),
		Debug: raster.Debug{
			Enabled: c.DrawDebug,
			Box:     p.color("color_debug_draw_glyph_all_area", c.DebugBoxColor),
			Outline: p.color("color_debug_draw_glyph_outline_thickness_area", c.DebugOutlineColor),
			Ink:     p.color("color_debug_draw_glyph_real_area", c.DebugInkColor),
		},
	}
	return s, errors.Join(p.errs...)
}

// parser collects conversion errors.
type parser struct {
	errs []error
}

func (p *parser) fail(field string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s: %w", field, err))
}

func (p *parser) color(field, s string) color.NRGBA {
	c, err := raster.ParseColor(s)
	if err != nil {
		p.fail(field, err)
	}
	return c
}

func (p *parser) blend(field, name string) raster.BlendMode {
	m, err := raster.ParseBlendMode(name)
	if err != nil {
		p.fail(field, err)
	}
	return m
}

// paint converts a colour, blend mode and effect whose keys are
// prefix+key+"color" and so on.
func (p *parser) paint(prefix, key, col, mode string, effect TextEffect) raster.Paint {
	field := prefix + key
	paint := raster.Paint{
		Color: p.color(field+"color", col),
		Blend: p.blend(field+"blend_mode", mode),
	}
	switch effect.Type {
	case "", EffectNone:
	case EffectLinearGradient:
		lg := effect.LinearGradient
		colors := make([]color.NRGBA, len(lg.Colors))
		for i, s := range lg.Colors {
			colors[i] = p.color(fmt.Sprintf("%seffect.linear_gradient.colors[%d]", field, i), s)
		}
		paint.Gradient = raster.NewLinearGradient(
			raster.Point{X: lg.Begin.X, Y: lg.Begin.Y},
			raster.Point{X: lg.End.X, Y: lg.End.Y},
			colors, lg.Pos)
	default:
		p.errs = append(p.errs, &FieldError{Field: field + "effect.effect_type", Reason: fmt.Sprintf("unknown effect %q", effect.Type)})
	}
	return paint
}

func (p *parser) shadows(field string, in []TextShadow) []raster.Shadow {
	if len(in) == 0 {
		return nil
	}
	out := make([]raster.Shadow, len(in))
	for i, s := range in {
		f := fmt.Sprintf("%s[%d]", field, i)
		out[i] = raster.Shadow{
			OffsetX: s.OffsetX,
			OffsetY: s.OffsetY,
			Blur:    max(s.BlurRadius, 0),
			Color:   p.color(f+".color", s.Color),
			Blend:   p.blend(f+".blend_mode", s.BlendMode),
		}
	}
	return out
}
