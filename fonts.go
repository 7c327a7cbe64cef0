package bmfont

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gogpu/bmfont/config"
	"github.com/gogpu/bmfont/text"
)

// fontSet resolves the fonts named by the pages of one run. A name is
// opened as a file when one exists at that path and looked up as an
// installed family otherwise. System fonts are scanned on first use only.
type fontSet struct {
	size     float64
	cacheDir string
	faceOpts []text.FaceOption
	log      *slog.Logger

	byName map[string]*text.Face
	owned  []*text.Face

	sysOnce  sync.Once
	sys      *text.SystemFonts
	fallback *text.CachedProvider
}

func newFontSet(cfg *config.Config, log *slog.Logger) *fontSet {
	s := &fontSet{
		size:     float64(cfg.TextStyle.FontSize),
		cacheDir: cfg.FontCacheDir,
		faceOpts: []text.FaceOption{text.WithMetrics(cfg.MetricsBackend)},
		log:      log,
		byName:   make(map[string]*text.Face),
	}
	s.fallback = text.NewCachedProvider(text.ProviderFunc(s.systemLookup), 0)
	return s
}

// page returns the provider of a page: its fonts in order, then the system
// fallback.
func (s *fontSet) page(p config.Page, style text.Style) text.Provider {
	chain := &text.Chain{Fallback: s.fallback}
	for _, name := range p.Fonts {
		if name == "" {
			continue
		}
		f, err := s.face(name, style)
		if err != nil {
			s.log.Warn("font not available, skipped", "font", name, "err", err)
			continue
		}
		chain.Faces = append(chain.Faces, f)
	}
	return chain
}

func (s *fontSet) face(name string, style text.Style) (*text.Face, error) {
	if f, ok := s.byName[name]; ok {
		return f, nil
	}

	var f *text.Face
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		f, err = text.OpenFace(name, s.size, s.faceOpts...)
		if err != nil {
			return nil, err
		}
		s.owned = append(s.owned, f)
	} else {
		sys := s.system()
		if sys == nil {
			return nil, fmt.Errorf("%w: %q", text.ErrFontNotFound, name)
		}
		f, err = sys.Family(name, style)
		if err != nil {
			return nil, err
		}
	}
	s.byName[name] = f
	return f, nil
}

func (s *fontSet) system() *text.SystemFonts {
	s.sysOnce.Do(func() {
		sys, err := text.NewSystemFonts(s.size,
			text.WithLogger(s.log),
			text.WithCacheDir(s.cacheDir),
			text.WithFaceOptions(s.faceOpts...),
		)
		if err != nil {
			s.log.Warn("system fonts unavailable", "err", err)
			return
		}
		s.sys = sys
	})
	return s.sys
}

func (s *fontSet) systemLookup(r rune, style text.Style) (text.Glyph, bool) {
	sys := s.system()
	if sys == nil {
		return text.Glyph{}, false
	}
	return sys.Lookup(r, style)
}

// Close releases the faces opened from files and the system fonts.
func (s *fontSet) Close() error {
	var errs []error
	for _, f := range s.owned {
		errs = append(errs, f.Close())
	}
	if s.sys != nil {
		errs = append(errs, s.sys.Close())
	}
	hits, misses := s.fallback.Stats()
	s.log.Debug("fallback lookups", "hits", hits, "misses", misses)
	return errors.Join(errs...)
}
