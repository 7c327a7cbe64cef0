package layout

// ChannelAll is the channel mask of a glyph stored in all four color channels.
const ChannelAll = 15

// GlyphMetric holds the ink metrics of one glyph in pixels at the requested
// font size. Values come from a metrics provider and are never modified.
type GlyphMetric struct {
	// Codepoint is the character this glyph renders.
	Codepoint rune

	// Width and Height are the ink box size.
	Width  int
	Height int

	// Left is the distance from the pen origin to the left edge of the ink.
	Left int

	// Top is the distance from the baseline up to the top of the ink.
	Top int

	// Advance is how far the pen moves after drawing the glyph.
	Advance int
}

// Below returns how far the ink extends below the baseline.
func (m GlyphMetric) Below() int {
	return m.Height - m.Top
}

// Padding is a set of per-edge distances.
type Padding struct {
	Up, Right, Down, Left int
}

// Spacing is the gap between neighbouring glyph boxes.
type Spacing struct {
	X, Y int
}

// Config controls page sizing and glyph placement.
//
// All paddings, spacings and the outline margin must be non-negative and
// MaxWidth must be positive. Clamping is the caller's job.
type Config struct {
	// FontSize is the nominal font size in pixels. It is the reference the
	// vertical glyph offsets are measured against.
	FontSize int

	// Padding is kept free on each page edge.
	Padding Padding

	// Spacing separates glyph boxes horizontally and vertically.
	Spacing Spacing

	// GlyphPadding is reserved around every glyph, outside its outline.
	GlyphPadding Padding

	// OutlineMargin is the uniform border reserved around the ink for a
	// stroked outline.
	OutlineMargin int

	// MaxWidth bounds the page width.
	MaxWidth int

	// PowerOfTwo rounds page dimensions up to powers of two.
	PowerOfTwo bool

	// FullyWrapped reports line heights that contain every glyph including
	// descenders. When false the baseline is aligned on the real ink bottom
	// and the outline is allowed to hang below the line box.
	FullyWrapped bool

	// LineHeightAdvance is added to every glyph's vertical offset.
	LineHeightAdvance int

	// GlyphXAdvance is added to every glyph's advance.
	GlyphXAdvance int

	// GlyphYAdvance is added to every glyph's vertical offset.
	GlyphYAdvance int
}

// boxSize returns the atlas space a glyph occupies: ink, outline margin on
// both sides and the per-glyph padding.
func (c *Config) boxSize(m GlyphMetric) (w, h int) {
	w = m.Width + 2*c.OutlineMargin + c.GlyphPadding.Left + c.GlyphPadding.Right
	h = m.Height + 2*c.OutlineMargin + c.GlyphPadding.Up + c.GlyphPadding.Down
	return w, h
}

// PlacedGlyph is a glyph with its position on a page and the offsets a text
// renderer consumes.
type PlacedGlyph struct {
	GlyphMetric

	// X and Y are the top-left corner of the glyph box on the page.
	X, Y int

	// BoxWidth and BoxHeight are the atlas space occupied by the glyph.
	BoxWidth, BoxHeight int

	// XOffset and YOffset position the box relative to the pen and the top
	// of the line.
	XOffset, YOffset int

	// XAdvance is the pen movement after the glyph.
	XAdvance int

	// Page is the index of the page holding the glyph.
	Page int

	// Channel is the color channel mask of the glyph.
	Channel int
}

// Page is one atlas texture and the glyphs packed onto it.
type Page struct {
	Index    int
	Width    int
	Height   int
	Glyphs   []PlacedGlyph
	FileName string
}

// Result is the output of ComputeLayout.
type Result struct {
	Page Page

	// MaxOffsetY is the largest below-baseline extent on the page,
	// including configured vertical adjustments. It is folded across pages
	// by the caller to grow the reported line height.
	MaxOffsetY int

	// Rows is the number of shelves the pack opened.
	Rows int
}
