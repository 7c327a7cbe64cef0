package layout

// ComputeLayout sizes a page for glyphs and places every glyph on it.
//
// index is stored on the page and on each placed glyph. The glyph order of
// the result matches the input order.
//
// The placement pass uses the same shelf packer as Height, so the computed
// page height always contains every placed box.
func ComputeLayout(index int, glyphs []GlyphMetric, cfg Config) Result {
	width := SearchWidth(glyphs, cfg)
	height := Height(glyphs, cfg, width)

	page := Page{
		Index:  index,
		Width:  width,
		Height: height,
		Glyphs: make([]PlacedGlyph, 0, len(glyphs)),
	}

	margin := cfg.OutlineMargin
	packer := newShelfPacker(width, &cfg)
	maxOffsetY := 0

	for _, g := range glyphs {
		boxW, boxH := cfg.boxSize(g)
		x, y := packer.place(boxW, boxH)

		below := g.Below() + cfg.GlyphYAdvance + cfg.LineHeightAdvance
		if cfg.FullyWrapped {
			maxOffsetY = max(maxOffsetY, below)
		} else {
			maxOffsetY = max(maxOffsetY, below+margin)
		}

		// Offset from the top of the line: the nominal font size minus the
		// part of the ink above the baseline.
		yOffset := below + cfg.FontSize - g.Height
		if !cfg.FullyWrapped {
			yOffset += margin
		}

		// Center glyphs whose advance is wider than their ink.
		leftSpace := max(g.Advance-g.Width, 0)

		page.Glyphs = append(page.Glyphs, PlacedGlyph{
			GlyphMetric: g,
			X:           x,
			Y:           y,
			BoxWidth:    boxW,
			BoxHeight:   boxH,
			XOffset:     g.Left - leftSpace/2,
			YOffset:     yOffset,
			XAdvance:    g.Advance + cfg.GlyphXAdvance,
			Page:        index,
			Channel:     ChannelAll,
		})
	}

	return Result{
		Page:       page,
		MaxOffsetY: maxOffsetY,
		Rows:       packer.rows,
	}
}
