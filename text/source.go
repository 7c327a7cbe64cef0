package text

import (
	"fmt"
	"os"
	"sync"

	tsfont "github.com/go-text/typesetting/font"
)

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
// FontSource is heavyweight and should be shared across pages.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	data   []byte
	parsed ParsedFont
	name   string
	path   string
	config sourceConfig

	// goText is the go-text view of the same font, parsed on first use by
	// the gotext metrics backend. tsfont.Font is read-only and safe for
	// concurrent use.
	goTextOnce sync.Once
	goText     *tsfont.Font
	goTextErr  error
}

// NewFontSource creates a FontSource from font data (TTF, OTF or TTC).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parsed, err := getParser(config.parserName).Parse(data, config.index)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &FontSource{
		data:   dataCopy,
		parsed: parsed,
		config: config,
	}
	s.addr = s
	s.name = extractFontName(parsed)
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	s, err := NewFontSource(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("text: %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Face creates a Face at size pixels per em.
func (s *FontSource) Face(size float64, opts ...FaceOption) (*Face, error) {
	if s == nil {
		panic("text: FontSource is nil, did you check the error from NewFontSourceFromFile?")
	}
	s.copyCheck()

	if size <= 0 {
		return nil, ErrInvalidSize
	}

	config := defaultFaceConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return newFace(s, size, config)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Path returns the file the source was loaded from, or "" for in-memory data.
func (s *FontSource) Path() string {
	s.copyCheck()
	return s.path
}

// Parsed returns the parsed font.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	return s.parsed
}

// HasGlyph reports whether the font maps r to a glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	s.copyCheck()
	return s.parsed.GlyphIndex(r) != 0
}

// goTextFont returns the go-text parse of the source data.
func (s *FontSource) goTextFont() (*tsfont.Font, error) {
	s.goTextOnce.Do(func() {
		s.goText, s.goTextErr = parseGoText(s.data, s.config.index)
	})
	return s.goText, s.goTextErr
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName returns the family name, falling back to the full name.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}

// OpenFace loads the font file at path and creates a face at size pixels
// per em.
func OpenFace(path string, size float64, opts ...FaceOption) (*Face, error) {
	src, err := NewFontSourceFromFile(path)
	if err != nil {
		return nil, err
	}
	return src.Face(size, opts...)
}
