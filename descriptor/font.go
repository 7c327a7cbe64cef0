// Package descriptor reads and writes the plain-text bitmap font descriptor
// (the AngelCode BMFont text format) consumed by runtime text renderers.
//
// The writer emits one "info" and one "common" line followed by a "page",
// "chars" and the "char" lines for every page, all terminated by CRLF.
package descriptor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/bmfont/layout"
)

// DefaultFace is the face name written on the info line.
const DefaultFace = "arial"

// Font is a complete font descriptor.
type Font struct {
	Face    string
	Size    int
	Bold    bool
	Italic  bool
	Unicode bool

	StretchH int
	Smooth   bool
	AA       int

	Padding layout.Padding
	Spacing layout.Spacing
	Outline int

	LineHeight int
	Base       int

	// ScaleW and ScaleH are lower bounds for the texture size written on
	// the common line. The written value is the maximum of these and the
	// page dimensions. Parse fills them from the file.
	ScaleW int
	ScaleH int

	Pages []Page
}

// Page is one texture page of a font.
type Page struct {
	ID   int
	File string

	// Width and Height are the texture size. They are not serialized per
	// page; the writer folds them into the common line.
	Width  int
	Height int

	Chars []Char
}

// Char is one glyph entry.
type Char struct {
	ID       uint32
	X        int
	Y        int
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	XAdvance int
	Page     int
	Channel  int
}

// Scale returns the texture size written on the common line: the largest
// page width and height.
func (f *Font) Scale() (w, h int) {
	w, h = f.ScaleW, f.ScaleH
	for _, p := range f.Pages {
		w = max(w, p.Width)
		h = max(h, p.Height)
	}
	return w, h
}

// CharCount returns the number of chars across all pages.
func (f *Font) CharCount() int {
	n := 0
	for _, p := range f.Pages {
		n += len(p.Chars)
	}
	return n
}

// FromLayout converts a laid out page. Char ids are the glyph codepoints.
func FromLayout(p layout.Page) Page {
	page := Page{
		ID:     p.Index,
		File:   p.FileName,
		Width:  p.Width,
		Height: p.Height,
		Chars:  make([]Char, len(p.Glyphs)),
	}
	for i, g := range p.Glyphs {
		page.Chars[i] = Char{
			ID:       uint32(g.Codepoint), //nolint:gosec // codepoints are non-negative
			X:        g.X,
			Y:        g.Y,
			Width:    g.BoxWidth,
			Height:   g.BoxHeight,
			XOffset:  g.XOffset,
			YOffset:  g.YOffset,
			XAdvance: g.XAdvance,
			Page:     g.Page,
			Channel:  g.Channel,
		}
	}
	return page
}

// BaseName strips a trailing ".fnt" (any case) from an output file name.
// A name that is only the extension is kept as is.
func BaseName(output string) string {
	const ext = ".fnt"
	if len(output) > len(ext) && strings.EqualFold(output[len(output)-len(ext):], ext) {
		return output[:len(output)-len(ext)]
	}
	return output
}

// PageFileName returns the texture file name of page index: "<base>.png" for
// a single page, "<base><index>.png" otherwise.
func PageFileName(base string, index, total int) string {
	if total > 1 {
		return fmt.Sprintf("%s%d.png", base, index)
	}
	return base + ".png"
}

// DescriptorFileName returns the descriptor path for base.
func DescriptorFileName(base string) string {
	return base + ".fnt"
}

// RelativeFile returns the page file name as referenced from a descriptor
// stored next to it.
func RelativeFile(path string) string {
	return filepath.Base(path)
}
