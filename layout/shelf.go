package layout

// shelfPacker places boxes row by row on a page of fixed width.
//
// Boxes are placed left to right in the order they are given. A box that
// would touch the right padding starts a new row (shelf) below the tallest
// box of the current row. Nothing is ever placed back on an earlier shelf,
// which keeps the result a pure function of the input order.
type shelfPacker struct {
	width   int
	padding Padding
	spacing Spacing

	x         int // next free x on the current shelf
	y         int // top of the current shelf
	rowHeight int // tallest box on the current shelf
	rows      int
}

// newShelfPacker creates a packer for a page of the given width.
func newShelfPacker(width int, cfg *Config) *shelfPacker {
	return &shelfPacker{
		width:   width,
		padding: cfg.Padding,
		spacing: cfg.Spacing,
		x:       cfg.Padding.Left,
		y:       cfg.Padding.Up,
		rows:    1,
	}
}

// place returns the top-left corner for a box of size w×h.
func (p *shelfPacker) place(w, h int) (x, y int) {
	prev := p.rowHeight
	p.rowHeight = max(p.rowHeight, h)

	if p.x+w+p.padding.Right >= p.width {
		p.y += prev + p.spacing.Y
		p.x = p.padding.Left
		p.rowHeight = h
		p.rows++
	}

	x, y = p.x, p.y
	p.x += w + p.spacing.X
	return x, y
}

// bottom returns the y coordinate just below the current shelf.
func (p *shelfPacker) bottom() int {
	return p.y + p.rowHeight
}
