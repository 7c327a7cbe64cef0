// Package config loads the JSON generation settings of a bitmap font.
//
// The schema uses the snake_case keys of the fnt_creator tool,
// including its spelling of line_height_padding_adcance, so existing
// configuration files load unchanged. Keys missing from a file keep their
// defaults; see [Default].
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed template.json
var template []byte

// DefaultText is the character set of a page without explicit text.
const DefaultText = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!№;%:?*()_+-=.,/|\"'@#$^&{}[] "

// Config is a complete generation run.
type Config struct {
	// UseGPU is accepted for compatibility and ignored.
	UseGPU bool `json:"use_gpu"`

	OutputFile string `json:"output_file"`

	// SpacingHoriz and SpacingVert are reported on the descriptor info line.
	SpacingHoriz int `json:"spacing_horiz"`
	SpacingVert  int `json:"spacing_vert"`

	// SpacingGlyphX and SpacingGlyphY separate glyph boxes in the atlas.
	SpacingGlyphX int `json:"spacing_glyph_x"`
	SpacingGlyphY int `json:"spacing_glyph_y"`

	LineHeightAdvance int `json:"line_height_padding_adcance"`

	GlyphPaddingXAdvance int `json:"glyph_padding_xadvance"`
	GlyphPaddingYAdvance int `json:"glyph_padding_yadvance"`
	GlyphPaddingUp       int `json:"glyph_padding_up"`
	GlyphPaddingDown     int `json:"glyph_padding_down"`
	GlyphPaddingLeft     int `json:"glyph_padding_left"`
	GlyphPaddingRight    int `json:"glyph_padding_right"`

	PaddingUp    int `json:"padding_up"`
	PaddingDown  int `json:"padding_down"`
	PaddingLeft  int `json:"padding_left"`
	PaddingRight int `json:"padding_right"`

	// PowerOfTwo rounds page sizes up to powers of two.
	PowerOfTwo   bool `json:"is_NPOT"`
	FullyWrapped bool `json:"is_fully_wrapped_mode"`
	MaxWidth     int  `json:"max_width"`

	DrawDebug         bool   `json:"is_draw_debug"`
	DebugBoxColor     string `json:"color_debug_draw_glyph_all_area"`
	DebugOutlineColor string `json:"color_debug_draw_glyph_outline_thickness_area"`
	DebugInkColor     string `json:"color_debug_draw_glyph_real_area"`

	TextStyle TextStyle `json:"text_style"`
	Pages     []Page    `json:"pages"`

	// MetricsBackend selects the glyph metrics implementation: "ximage"
	// (default) or "gotext".
	MetricsBackend string `json:"metrics_backend"`

	// Unicode writes codepoints as char ids. When false, ids are ANSI
	// (Windows-1252) codes and other characters are dropped.
	Unicode bool `json:"unicode"`

	// NormalizeText applies NFC normalization to page text.
	NormalizeText bool `json:"normalize_text"`

	// Workers bounds how many pages are drawn at once. Zero means one per
	// CPU.
	Workers int `json:"workers"`

	// FontCacheDir is where the system font index is cached.
	FontCacheDir string `json:"font_cache_dir"`
}

// TextStyle is how glyphs are drawn.
type TextStyle struct {
	FontSize   int          `json:"font_size"`
	Color      string       `json:"color"`
	BlendMode  string       `json:"blend_mode"`
	Shadows    []TextShadow `json:"shadows"`
	Effect     TextEffect   `json:"effect"`
	Background string       `json:"background_color"`
	Bold       bool         `json:"is_bold"`
	Italic     bool         `json:"is_italic"`

	OutlineThickness   int          `json:"outline_thickness"`
	OutlineRenderScale float64      `json:"outline_thickness_render_scale"`
	OutlineColor       string       `json:"outline_color"`
	OutlineBlendMode   string       `json:"outline_blend_mode"`
	OutlineEffect      TextEffect   `json:"outline_effect"`
	OutlineShadows     []TextShadow `json:"outline_shadows"`
}

// Effect types.
const (
	EffectNone           = "none"
	EffectLinearGradient = "linear_gradient"
)

// TextEffect is an optional fill effect.
type TextEffect struct {
	Type           string         `json:"effect_type"`
	LinearGradient LinearGradient `json:"linear_gradient"`
}

// Position is a point relative to the glyph ink box.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LinearGradient parameters. At least two colours are used; missing ones
// are black. Pos is optional.
type LinearGradient struct {
	Begin  Position  `json:"begin"`
	End    Position  `json:"end"`
	Colors []string  `json:"colors"`
	Pos    []float64 `json:"pos"`
}

// TextShadow is a blurred, offset copy of the glyph.
type TextShadow struct {
	OffsetX    int     `json:"offsetx"`
	OffsetY    int     `json:"offsety"`
	BlurRadius float64 `json:"blur_radius"`
	Color      string  `json:"color"`
	BlendMode  string  `json:"blend_mode"`
}

// Page selects the characters of one atlas page.
type Page struct {
	// FixedWidthAlignment is accepted for compatibility and ignored.
	FixedWidthAlignment bool `json:"fixed_width_alignment"`

	Text  string   `json:"text"`
	Chars []uint32 `json:"chars"`

	// Fonts are font files or family names tried in order. Characters no
	// font covers fall back to the system fonts.
	Fonts []string `json:"fonts"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		UseGPU:            true,
		SpacingHoriz:      1,
		SpacingVert:       1,
		SpacingGlyphX:     1,
		SpacingGlyphY:     1,
		PowerOfTwo:        true,
		FullyWrapped:      true,
		MaxWidth:          4096,
		DebugBoxColor:     "#00FF00FF",
		DebugOutlineColor: "#00FFFFFF",
		DebugInkColor:     "#FF00FFFF",
		TextStyle:         DefaultTextStyle(),
		MetricsBackend:    "ximage",
		Unicode:           true,
	}
}

// DefaultTextStyle returns black 30px text with a white outline setup.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize:           30,
		Color:              "#000000ff",
		Effect:             defaultEffect(),
		OutlineRenderScale: 2,
		OutlineColor:       "#ffffffff",
		OutlineEffect:      defaultEffect(),
	}
}

func defaultEffect() TextEffect {
	return TextEffect{
		Type: EffectNone,
		LinearGradient: LinearGradient{
			Begin: Position{X: 0.5, Y: 1},
			End:   Position{X: 0.5, Y: 0},
		},
	}
}

// UnmarshalJSON fills keys missing from a page with their defaults.
func (p *Page) UnmarshalJSON(data []byte) error {
	type plain Page
	v := plain{Text: DefaultText}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Page(v)
	return nil
}

// UnmarshalJSON fills keys missing from a shadow with their defaults.
func (s *TextShadow) UnmarshalJSON(data []byte) error {
	type plain TextShadow
	v := plain{Color: "#ffffffff"}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = TextShadow(v)
	return nil
}

// Template returns the JSON of the built-in configuration.
func Template() []byte {
	return bytes.Clone(template)
}

// LoadTemplate parses the built-in configuration.
func LoadTemplate() (*Config, error) {
	return Parse(template)
}

// Parse decodes a JSON configuration over the defaults. It neither
// normalizes nor validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}

// Load reads a JSON configuration file, normalizes and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
