package text

import (
	"fmt"
	"strings"
	"sync"

	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
)

// probeRunes are tried in order to find a rune a family covers, so that a
// styled query for the family resolves to one of its own fonts.
var probeRunes = []rune{'a', 'A', '0', '中', 'あ', '가'}

type fontKey struct {
	file  string
	index int
}

// SystemFonts resolves font family names and per-character fallbacks
// against the fonts installed on the system.
//
// SystemFonts is safe for concurrent use. Queries are serialized because the
// underlying font map is stateful.
type SystemFonts struct {
	mu     sync.Mutex
	fm     *fontscan.FontMap
	size   float64
	config systemConfig
	faces  map[fontKey]*Face
}

// NewSystemFonts scans the system fonts. Faces are created at size pixels
// per em. The font index is cached on disk, so only the first call on a
// machine is slow.
func NewSystemFonts(size float64, opts ...SystemOption) (*SystemFonts, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	config := defaultSystemConfig()
	for _, opt := range opts {
		opt(&config)
	}

	fm := fontscan.NewFontMap(printfLogger{l: config.logger})
	if err := fm.UseSystemFonts(config.cacheDir); err != nil {
		return nil, fmt.Errorf("text: load system fonts: %w", err)
	}
	return &SystemFonts{
		fm:     fm,
		size:   size,
		config: config,
		faces:  make(map[fontKey]*Face),
	}, nil
}

// Family returns the installed font of family name closest to style.
// It returns ErrFontNotFound when no installed font has that family.
func (s *SystemFonts) Family(name string, style Style) (*Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.fm.FindSystemFont(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	regular, err := s.faceAt(fontKey{file: loc.File, index: int(loc.Index)})
	if err != nil {
		return nil, err
	}
	if style == (Style{}) {
		return regular, nil
	}

	s.fm.SetQuery(fontscan.Query{Families: []string{name}, Aspect: aspectFor(style)})
	for _, r := range probeRunes {
		if !regular.HasGlyph(r) {
			continue
		}
		tf := s.fm.ResolveFace(r)
		if tf == nil {
			break
		}
		family, _ := s.fm.FontMetadata(tf.Font)
		if family != "" && !sameFamily(family, name) {
			break
		}
		styled, err := s.faceAt(s.keyOf(tf))
		if err != nil {
			break
		}
		return styled, nil
	}
	s.config.logger.Debug("no styled variant, using regular",
		"family", name, "style", style.String())
	return regular, nil
}

// Lookup implements Provider. It asks the system for a font covering r
// among the fallback families and style.
func (s *SystemFonts) Lookup(r rune, style Style) (Glyph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fm.SetQuery(fontscan.Query{Families: s.config.families, Aspect: aspectFor(style)})
	tf := s.fm.ResolveFace(r)
	if tf == nil {
		return Glyph{}, false
	}
	face, err := s.faceAt(s.keyOf(tf))
	if err != nil {
		s.config.logger.Warn("load fallback font", "rune", r, "err", err)
		return Glyph{}, false
	}
	// ResolveFace may return an arbitrary face when nothing covers r.
	return face.Lookup(r, style)
}

// Close releases all faces created by s.
func (s *SystemFonts) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var first error
	for k, f := range s.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(s.faces, k)
	}
	return first
}

func (s *SystemFonts) keyOf(tf *tsfont.Face) fontKey {
	loc := s.fm.FontLocation(tf.Font)
	return fontKey{file: loc.File, index: int(loc.Index)}
}

// faceAt returns the cached face for key, loading the file on first use.
// Caller must hold s.mu.
func (s *SystemFonts) faceAt(key fontKey) (*Face, error) {
	if f, ok := s.faces[key]; ok {
		return f, nil
	}
	src, err := NewFontSourceFromFile(key.file, WithCollectionIndex(key.index))
	if err != nil {
		return nil, err
	}
	f, err := src.Face(s.size, s.config.face...)
	if err != nil {
		return nil, err
	}
	s.config.logger.Debug("loaded system font", "family", src.Name(), "file", key.file, "index", key.index)
	s.faces[key] = f
	return f, nil
}

func aspectFor(style Style) tsfont.Aspect {
	a := tsfont.Aspect{Style: tsfont.StyleNormal, Weight: tsfont.WeightNormal}
	if style.Italic {
		a.Style = tsfont.StyleItalic
	}
	if style.Bold {
		a.Weight = tsfont.WeightBold
	}
	return a
}

// sameFamily compares family names ignoring case, spaces and hyphens.
func sameFamily(a, b string) bool {
	norm := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.EqualFold(norm.Replace(a), norm.Replace(b))
}
