package text

import "golang.org/x/image/font"

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library.
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF, OTF or a TTC collection) and returns the
	// font at index. Index 0 selects the only font of a plain font file.
	Parse(data []byte, index int) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// GlyphIndex returns the glyph index for a rune.
	// Returns 0 if the font has no glyph for r.
	GlyphIndex(r rune) uint16

	// NewFace returns a face at size pixels per em (72 DPI).
	// The returned face is not safe for concurrent use.
	NewFace(size float64, hinting font.Hinting) (font.Face, error)
}

// parserRegistry holds registered font parsers.
// The default parser is "ximage" (golang.org/x/image).
var parserRegistry = map[string]FontParser{
	"ximage": &ximageParser{},
}

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser.
// It must be called before any FontSource using name is created.
func RegisterParser(name string, parser FontParser) {
	parserRegistry[name] = parser
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) FontParser {
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
