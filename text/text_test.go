package text

import (
	"errors"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T, ttf []byte, size float64, opts ...FaceOption) *Face {
	t.Helper()

	source, err := NewFontSource(ttf)
	if err != nil {
		t.Fatalf("failed to create font source: %v", err)
	}
	face, err := source.Face(size, opts...)
	if err != nil {
		t.Fatalf("failed to create face: %v", err)
	}
	t.Cleanup(func() {
		_ = face.Close()
	})
	return face
}

func TestNewFontSource_Errors(t *testing.T) {
	if _, err := NewFontSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSource(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewFontSource([]byte("not a font")); err == nil {
		t.Error("NewFontSource(garbage) succeeded")
	}

	_, err := NewFontSource(goregular.TTF, WithCollectionIndex(1))
	var ie *CollectionIndexError
	if !errors.As(err, &ie) {
		t.Fatalf("index 1 of a single font: error = %v, want *CollectionIndexError", err)
	}
	if ie.Count != 1 {
		t.Errorf("Count = %d, want 1", ie.Count)
	}
}

func TestNewFontSourceFromFile_Missing(t *testing.T) {
	if _, err := NewFontSourceFromFile("/nonexistent/font.ttf"); err == nil {
		t.Error("NewFontSourceFromFile() on missing file succeeded")
	}
}

func TestFontSource_Name(t *testing.T) {
	source, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if got := source.Name(); got != "Go" {
		t.Errorf("Name() = %q, want %q", got, "Go")
	}
	if source.Path() != "" {
		t.Errorf("Path() = %q, want empty for in-memory data", source.Path())
	}
	if source.Parsed().NumGlyphs() == 0 {
		t.Error("NumGlyphs() = 0")
	}
}

func TestFontSource_InvalidSize(t *testing.T) {
	source, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := source.Face(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Face(0) error = %v, want ErrInvalidSize", err)
	}
}

func TestFace_Metric(t *testing.T) {
	face := testFace(t, goregular.TTF, 32)

	a, ok := face.Metric('A')
	if !ok {
		t.Fatal("Metric('A') not found")
	}
	if a.Codepoint != 'A' || a.Width <= 0 || a.Height <= 0 || a.Advance <= 0 {
		t.Errorf("Metric('A') = %+v", a)
	}
	if a.Top <= 0 || a.Below() < 0 || a.Below() > 1 {
		t.Errorf("'A' should sit on the baseline: Top=%d Below=%d", a.Top, a.Below())
	}

	g, ok := face.Metric('g')
	if !ok {
		t.Fatal("Metric('g') not found")
	}
	if g.Below() <= 1 {
		t.Errorf("'g' Below() = %d, want a descender", g.Below())
	}

	sp, ok := face.Metric(' ')
	if !ok {
		t.Fatal("Metric(' ') not found")
	}
	if sp.Width != 0 || sp.Height != 0 || sp.Advance <= 0 {
		t.Errorf("Metric(' ') = %+v, want empty ink and positive advance", sp)
	}

	if _, ok := face.Metric('中'); ok {
		t.Error("Metric('中') found in Go Regular")
	}
}

func TestFace_Metric_ScalesWithSize(t *testing.T) {
	small := testFace(t, goregular.TTF, 16)
	large := testFace(t, goregular.TTF, 64)

	ms, _ := small.Metric('H')
	ml, _ := large.Metric('H')
	if ml.Height < 3*ms.Height {
		t.Errorf("height at 64px = %d, at 16px = %d; want roughly 4x", ml.Height, ms.Height)
	}
}

func TestFace_Mask(t *testing.T) {
	face := testFace(t, goregular.TTF, 32)

	m, _ := face.Metric('O')
	mask := face.Mask(m)
	b := mask.Bounds()
	if b.Dx() != m.Width || b.Dy() != m.Height {
		t.Fatalf("mask size = %dx%d, want %dx%d", b.Dx(), b.Dy(), m.Width, m.Height)
	}

	inked := 0
	for _, a := range mask.Pix {
		if a > 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Fatal("mask is empty")
	}
	// An 'O' is hollow: the center pixel is blank.
	if c := mask.AlphaAt(m.Width/2, m.Height/2).A; c != 0 {
		t.Errorf("center alpha = %d, want 0", c)
	}

	sp, _ := face.Metric(' ')
	if got := face.Mask(sp).Bounds(); !got.Empty() {
		t.Errorf("space mask bounds = %v, want empty", got)
	}
}

func TestFace_Concurrent(t *testing.T) {
	face := testFace(t, goregular.TTF, 24)
	want, _ := face.Metric('W')

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if got, _ := face.Metric('W'); got != want {
					t.Errorf("Metric('W') = %+v, want %+v", got, want)
					return
				}
				face.Mask(want)
			}
		}()
	}
	wg.Wait()
}

func TestFace_GoTextMetrics(t *testing.T) {
	xi := testFace(t, goregular.TTF, 32)
	gt := testFace(t, goregular.TTF, 32, WithMetrics(MetricsGoText))

	for _, r := range "AgHj" {
		want, _ := xi.Metric(r)
		got, ok := gt.Metric(r)
		if !ok {
			t.Fatalf("gotext Metric(%q) not found", r)
		}
		if diff(got.Width, want.Width) > 2 || diff(got.Height, want.Height) > 2 {
			t.Errorf("gotext Metric(%q) = %+v, ximage = %+v", r, got, want)
		}
		if diff(got.Advance, want.Advance) > 1 {
			t.Errorf("gotext advance(%q) = %d, ximage = %d", r, got.Advance, want.Advance)
		}
		if diff(got.Top, want.Top) > 1 {
			t.Errorf("gotext top(%q) = %d, ximage = %d", r, got.Top, want.Top)
		}
	}
	if _, ok := gt.Metric('中'); ok {
		t.Error("gotext Metric('中') found in Go Regular")
	}
}

func TestFace_UnknownBackend(t *testing.T) {
	source, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := source.Face(16, WithMetrics("skia")); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Face() error = %v, want ErrUnknownBackend", err)
	}
}

func TestChain_Lookup(t *testing.T) {
	regular := testFace(t, goregular.TTF, 20)
	bold := testFace(t, gobold.TTF, 20)

	fallbackCalls := 0
	fallback := ProviderFunc(func(r rune, _ Style) (Glyph, bool) {
		fallbackCalls++
		if r == '中' {
			return Glyph{Face: bold}, true
		}
		return Glyph{}, false
	})

	c := &Chain{Faces: []*Face{regular, bold}, Fallback: fallback}

	g, ok := c.Lookup('A', Style{Bold: true})
	if !ok || g.Face != regular {
		t.Errorf("Lookup('A') face = %p, want first face %p", g.Face, regular)
	}
	if g.Metric.Codepoint != 'A' {
		t.Errorf("Metric.Codepoint = %q, want 'A'", g.Metric.Codepoint)
	}
	if _, ok := c.Lookup('中', Style{}); !ok {
		t.Error("Lookup('中') did not reach the fallback")
	}
	if _, ok := c.Lookup('\U0001F600', Style{}); ok {
		t.Error("Lookup(emoji) found a glyph")
	}
	if fallbackCalls != 2 {
		t.Errorf("fallback called %d times, want 2", fallbackCalls)
	}

	empty := &Chain{}
	if _, ok := empty.Lookup('A', Style{}); ok {
		t.Error("empty chain found a glyph")
	}
}

func TestCachedProvider(t *testing.T) {
	face := testFace(t, goregular.TTF, 20)
	calls := 0
	next := ProviderFunc(func(r rune, s Style) (Glyph, bool) {
		calls++
		return face.Lookup(r, s)
	})

	c := NewCachedProvider(next, 0)
	for range 3 {
		if _, ok := c.Lookup('A', Style{}); !ok {
			t.Fatal("Lookup('A') failed")
		}
		if _, ok := c.Lookup('中', Style{}); ok {
			t.Fatal("Lookup('中') succeeded")
		}
	}
	if _, ok := c.Lookup('A', Style{Bold: true}); !ok {
		t.Fatal("Lookup('A', bold) failed")
	}
	if calls != 3 {
		t.Errorf("underlying provider called %d times, want 3", calls)
	}
	hits, misses := c.Stats()
	if hits != 4 || misses != 3 {
		t.Errorf("Stats() = %d hits, %d misses; want 4, 3", hits, misses)
	}
}

func TestStyle_String(t *testing.T) {
	tests := []struct {
		s    Style
		want string
	}{
		{Style{}, "regular"},
		{Style{Bold: true}, "bold"},
		{Style{Italic: true}, "italic"},
		{Style{Bold: true, Italic: true}, "bold italic"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestSameFamily(t *testing.T) {
	if !sameFamily("DejaVu Sans", "dejavusans") {
		t.Error(`sameFamily("DejaVu Sans", "dejavusans") = false`)
	}
	if sameFamily("Arial", "Arial Black") {
		t.Error(`sameFamily("Arial", "Arial Black") = true`)
	}
}

func TestSystemFonts(t *testing.T) {
	if _, err := NewSystemFonts(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewSystemFonts(0) error = %v, want ErrInvalidSize", err)
	}
	if testing.Short() {
		t.Skip("skipping system font scan in short mode")
	}

	sys, err := NewSystemFonts(16, WithCacheDir(t.TempDir()))
	if err != nil {
		t.Skipf("no system fonts: %v", err)
	}
	t.Cleanup(func() { _ = sys.Close() })

	g, ok := sys.Lookup('A', Style{})
	if !ok {
		t.Skip("no installed font covers 'A'")
	}
	if g.Face == nil || g.Metric.Width <= 0 {
		t.Errorf("Lookup('A') = %+v", g)
	}
	if _, err := sys.Family("no such family 1f9a", Style{}); !errors.Is(err, ErrFontNotFound) {
		t.Errorf("Family(unknown) error = %v, want ErrFontNotFound", err)
	}
}

func diff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
