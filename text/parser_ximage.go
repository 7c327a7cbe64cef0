package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte, index int) (ParsedFont, error) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	if index < 0 || index >= coll.NumFonts() {
		return nil, &CollectionIndexError{Index: index, Count: coll.NumFonts()}
	}
	f, err := coll.Font(index)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font %d: %w", index, err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
// sfnt.Font is safe for concurrent use as long as every call has its own
// sfnt.Buffer.
type ximageParsedFont struct {
	font *opentype.Font
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	name, err := f.font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string {
	name, err := f.font.Name(nil, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) uint16 {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

// NewFace implements ParsedFont.NewFace.
func (f *ximageParsedFont) NewFace(size float64, hinting font.Hinting) (font.Face, error) {
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}
	return face, nil
}
