package layout

import "math/bits"

// NextPOT returns the smallest power of two that is >= x.
// Values below 2 return 1.
func NextPOT(x int) int {
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(x-1))
}

// MinWidth returns the narrowest page that can hold the widest glyph of the
// set: its box plus the left and right page padding.
func MinWidth(glyphs []GlyphMetric, cfg Config) int {
	widest := 0
	for _, g := range glyphs {
		widest = max(widest, g.Width)
	}
	return widest + cfg.Padding.Left + cfg.Padding.Right +
		cfg.GlyphPadding.Left + cfg.GlyphPadding.Right + 2*cfg.OutlineMargin
}

// Height returns the page height needed to pack glyphs at the given width.
//
// The bottom padding is always kept visible. With PowerOfTwo the result is
// rounded up to a power of two; the padding is added first when the rounding
// alone would leave less than the padding free.
func Height(glyphs []GlyphMetric, cfg Config, width int) int {
	p := newShelfPacker(width, &cfg)
	for _, g := range glyphs {
		p.place(cfg.boxSize(g))
	}

	y := p.bottom()
	if cfg.PowerOfTwo {
		if NextPOT(y)-y < cfg.Padding.Down {
			y += cfg.Padding.Down
		}
		return NextPOT(y)
	}
	return y + cfg.Padding.Down
}

// SearchWidth picks the page width for a glyph set.
//
// Candidates double from 2. A candidate narrower than MinWidth is skipped.
// The first remaining candidate whose packed height does not exceed it wins.
// A candidate beyond MaxWidth ends the search and the width is clamped to
// MaxWidth; the page then grows in height instead.
func SearchWidth(glyphs []GlyphMetric, cfg Config) int {
	minWidth := MinWidth(glyphs, cfg)

	width := 0
	for w := 2; ; w *= 2 {
		candidate := w
		if cfg.PowerOfTwo {
			candidate = NextPOT(candidate)
		}
		if candidate < minWidth {
			continue
		}
		if candidate > cfg.MaxWidth || Height(glyphs, cfg, candidate) <= candidate {
			width = candidate
			break
		}
	}

	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}
	return width
}
