package bmfont

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/bmfont/config"
	"github.com/gogpu/bmfont/descriptor"
	"github.com/gogpu/bmfont/layout"
	"github.com/gogpu/bmfont/raster"
	"github.com/gogpu/bmfont/text"
)

// boxProvider returns fixed 10x10 metrics for every rune except those in
// missing. The ink extends below pixels under the baseline.
func boxProvider(below int, missing ...rune) text.Provider {
	return text.ProviderFunc(func(r rune, _ text.Style) (text.Glyph, bool) {
		if slices.Contains(missing, r) {
			return text.Glyph{}, false
		}
		return text.Glyph{Metric: layout.GlyphMetric{
			Codepoint: r, Width: 10, Height: 10, Top: 10 - below, Advance: 12,
		}}, true
	})
}

func withBoxProvider(below int, missing ...rune) Option {
	p := boxProvider(below, missing...)
	return WithProvider(func(int) (text.Provider, error) { return p, nil })
}

func testConfig(t *testing.T, pages ...string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputFile = filepath.Join(t.TempDir(), "font.fnt")
	for _, s := range pages {
		cfg.Pages = append(cfg.Pages, config.Page{Text: s})
	}
	return cfg
}

func readDescriptor(t *testing.T, path string) *descriptor.Font {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open descriptor: %v", err)
	}
	defer f.Close()
	font, err := descriptor.Parse(f)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return font
}

func TestCollectCodepoints(t *testing.T) {
	tests := []struct {
		name      string
		page      config.Page
		normalize bool
		want      []rune
	}{
		{"text", config.Page{Text: "abca"}, false, []rune{'a', 'b', 'c'}},
		{"chars first", config.Page{Text: "ba", Chars: []uint32{'c', 'a'}}, false, []rune{'c', 'a', 'b'}},
		{"empty", config.Page{}, false, []rune{}},
		{"decomposed", config.Page{Text: "e\u0301"}, false, []rune{'e', '\u0301'}},
		{"normalized", config.Page{Text: "e\u0301\u00e9"}, true, []rune{'\u00e9'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectCodepoints(tt.page, tt.normalize)
			if !slices.Equal(got, tt.want) {
				t.Errorf("CollectCodepoints() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	if _, err := NewGenerator(nil); !errors.Is(err, ErrNoPages) {
		t.Errorf("NewGenerator(nil) error = %v, want ErrNoPages", err)
	}
	if _, err := NewGenerator(config.Default()); !errors.Is(err, ErrNoPages) {
		t.Errorf("NewGenerator(no pages) error = %v, want ErrNoPages", err)
	}

	cfg := testConfig(t, "a")
	cfg.TextStyle.FontSize = 0
	_, err := NewGenerator(cfg)
	var fe *config.FieldError
	if !errors.As(err, &fe) || fe.Field != "text_style.font_size" {
		t.Errorf("NewGenerator(font_size 0) error = %v, want FieldError for text_style.font_size", err)
	}
}

func TestNewGeneratorCopiesConfig(t *testing.T) {
	cfg := testConfig(t, "a")
	cfg.MaxWidth = 0
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if cfg.MaxWidth != 0 {
		t.Error("NewGenerator modified the caller's config")
	}
	if got := g.Config().MaxWidth; got != config.FallbackMaxWidth {
		t.Errorf("normalized MaxWidth = %d, want %d", got, config.FallbackMaxWidth)
	}

	cfg = config.Default()
	cfg.Pages = []config.Page{{Text: "a"}}
	g, err = NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if got := g.Config().OutputFile; got != DefaultOutput {
		t.Errorf("OutputFile = %q, want %q", got, DefaultOutput)
	}
}

func TestGeneratorLineHeightFullyWrapped(t *testing.T) {
	run := func(below int) *Result {
		t.Helper()
		cfg := testConfig(t, "g")
		cfg.FullyWrapped = true
		g, err := NewGenerator(cfg, withBoxProvider(below), WithSkipImages())
		if err != nil {
			t.Fatalf("NewGenerator() error = %v", err)
		}
		res, err := g.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return res
	}

	nominal := run(0)
	descender := run(5)
	if nominal.Font.LineHeight != 30 {
		t.Errorf("nominal lineHeight = %d, want 30", nominal.Font.LineHeight)
	}
	if d := descender.Font.LineHeight - nominal.Font.LineHeight; d != 5 {
		t.Errorf("lineHeight grew by %d, want 5", d)
	}
	if descender.MaxOffsetY != 5 {
		t.Errorf("MaxOffsetY = %d, want 5", descender.MaxOffsetY)
	}
	if descender.PagePaths != nil {
		t.Errorf("PagePaths = %v, want nil when images are skipped", descender.PagePaths)
	}
}

func TestGeneratorLineHeightTerms(t *testing.T) {
	cfg := testConfig(t, "g")
	cfg.FullyWrapped = false
	cfg.TextStyle.OutlineThickness = 2
	cfg.GlyphPaddingUp = 1
	cfg.GlyphPaddingDown = 3
	cfg.LineHeightAdvance = 4

	g, err := NewGenerator(cfg, withBoxProvider(5), WithSkipImages())
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	res, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// 30 + 2*2 + 1 + 3 + 4, the descender is not folded in.
	if res.Font.LineHeight != 42 {
		t.Errorf("lineHeight = %d, want 42", res.Font.LineHeight)
	}
	if res.Font.Base != 30 || res.Font.Outline != 2 {
		t.Errorf("base, outline = %d, %d, want 30, 2", res.Font.Base, res.Font.Outline)
	}
}

func TestGeneratorTwoPages(t *testing.T) {
	cfg := testConfig(t, "AB", "CDEFG")
	g, err := NewGenerator(cfg, withBoxProvider(0))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	res, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	dir := filepath.Dir(cfg.OutputFile)
	wantPaths := []string{filepath.Join(dir, "font0.png"), filepath.Join(dir, "font1.png")}
	if !slices.Equal(res.PagePaths, wantPaths) {
		t.Errorf("PagePaths = %v, want %v", res.PagePaths, wantPaths)
	}
	if res.DescriptorPath != filepath.Join(dir, "font.fnt") {
		t.Errorf("DescriptorPath = %q", res.DescriptorPath)
	}

	font := readDescriptor(t, res.DescriptorPath)
	if len(font.Pages) != 2 {
		t.Fatalf("descriptor has %d pages, want 2", len(font.Pages))
	}
	wantIDs := [][]uint32{{'A', 'B'}, {'C', 'D', 'E', 'F', 'G'}}
	for i, p := range font.Pages {
		if p.ID != i || p.File != filepath.Base(wantPaths[i]) {
			t.Errorf("page %d: id=%d file=%q", i, p.ID, p.File)
		}
		var ids []uint32
		for _, c := range p.Chars {
			ids = append(ids, c.ID)
			if c.Page != i {
				t.Errorf("page %d: char %d has page=%d", i, c.ID, c.Page)
			}
		}
		if !slices.Equal(ids, wantIDs[i]) {
			t.Errorf("page %d: ids = %v, want %v", i, ids, wantIDs[i])
		}
	}

	for i, path := range wantPaths {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("page %d image: %v", i, err)
		}
		cfgImg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("page %d: decode: %v", i, err)
		}
		pw, ph := res.Font.Pages[i].Width, res.Font.Pages[i].Height
		if cfgImg.Width != pw || cfgImg.Height != ph {
			t.Errorf("page %d image is %dx%d, want %dx%d", i, cfgImg.Width, cfgImg.Height, pw, ph)
		}
	}

	w, h := res.Font.Scale()
	if font.ScaleW != w || font.ScaleH != h {
		t.Errorf("scale = %dx%d, want %dx%d", font.ScaleW, font.ScaleH, w, h)
	}
}

func TestGeneratorDropsMissing(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	cfg := testConfig(t, "A\nZB")
	g, err := NewGenerator(cfg, withBoxProvider(0, 'Z'), WithSkipImages())
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	res, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !slices.Equal(res.Dropped, []rune{'Z'}) {
		t.Errorf("Dropped = %q, want [Z]", res.Dropped)
	}
	if n := res.Font.CharCount(); n != 2 {
		t.Errorf("CharCount() = %d, want 2", n)
	}
	if n := strings.Count(buf.String(), "no font covers character"); n != 1 {
		t.Errorf("logged %d missing-glyph warnings, want 1:\n%s", n, buf.String())
	}
}

func TestGeneratorANSI(t *testing.T) {
	cfg := testConfig(t, "A€中")
	cfg.Unicode = false
	g, err := NewGenerator(cfg, withBoxProvider(0), WithSkipImages())
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	res, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !slices.Equal(res.Dropped, []rune{'中'}) {
		t.Errorf("Dropped = %q, want [中]", res.Dropped)
	}

	font := readDescriptor(t, res.DescriptorPath)
	if font.Unicode {
		t.Error("descriptor unicode = 1, want 0")
	}
	var ids []uint32
	for _, c := range font.Pages[0].Chars {
		ids = append(ids, c.ID)
	}
	if want := []uint32{'A', 0x80}; !slices.Equal(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

// failingRasterizer fails on one page and draws blank images for the others.
type failingRasterizer struct {
	failPage int
}

func (f failingRasterizer) DrawPage(ctx context.Context, width, height int, glyphs []raster.Glyph) (*image.RGBA, error) {
	if len(glyphs) > 0 && glyphs[0].Page == f.failPage {
		return nil, errors.New("device lost")
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

func TestGeneratorFailFast(t *testing.T) {
	cfg := testConfig(t, "AB", "CD", "EF")
	g, err := NewGenerator(cfg, withBoxProvider(0),
		WithRasterizer(failingRasterizer{failPage: 1}), WithWorkers(1))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	res, err := g.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want page error")
	}
	if res != nil {
		t.Errorf("Run() result = %+v, want nil", res)
	}

	var pe *PageError
	if !errors.As(err, &pe) || pe.Page != 1 {
		t.Fatalf("Run() error = %v, want *PageError for page 1", err)
	}
	if !strings.Contains(err.Error(), "device lost") {
		t.Errorf("error %q does not carry the cause", err)
	}
	if _, err := os.Stat(descriptor.DescriptorFileName(descriptor.BaseName(cfg.OutputFile))); !os.IsNotExist(err) {
		t.Errorf("descriptor written after failed page: stat error = %v", err)
	}
}

func TestGeneratorCancelled(t *testing.T) {
	cfg := testConfig(t, "AB")
	g, err := NewGenerator(cfg, withBoxProvider(0))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(cfg.OutputFile); !os.IsNotExist(err) {
		t.Errorf("descriptor written after cancel: stat error = %v", err)
	}
}

func TestGeneratorProviderError(t *testing.T) {
	cfg := testConfig(t, "AB")
	errNoFonts := errors.New("no fonts")
	g, err := NewGenerator(cfg, WithProvider(func(int) (text.Provider, error) {
		return nil, errNoFonts
	}))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if _, err := g.Run(context.Background()); !errors.Is(err, errNoFonts) {
		t.Errorf("Run() error = %v, want %v", err, errNoFonts)
	}
}

func TestGeneratorFontFile(t *testing.T) {
	dir := t.TempDir()
	fontPath := filepath.Join(dir, "goregular.ttf")
	if err := os.WriteFile(fontPath, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.OutputFile = filepath.Join(dir, "regular.FNT")
	cfg.TextStyle.OutlineThickness = 1
	cfg.Pages = []config.Page{{Text: "Ag", Fonts: []string{fontPath}}}

	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	res, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Dropped) != 0 {
		t.Errorf("Dropped = %q, want none", res.Dropped)
	}
	if res.DescriptorPath != filepath.Join(dir, "regular.fnt") {
		t.Errorf("DescriptorPath = %q", res.DescriptorPath)
	}

	font := readDescriptor(t, res.DescriptorPath)
	if font.Pages[0].File != "regular.png" {
		t.Errorf("page file = %q, want regular.png", font.Pages[0].File)
	}
	chars := font.Pages[0].Chars
	if len(chars) != 2 {
		t.Fatalf("got %d chars, want 2", len(chars))
	}
	for _, c := range chars {
		if c.Width <= 2 || c.Height <= 2 || c.XAdvance <= 0 || c.Channel != layout.ChannelAll {
			t.Errorf("char %q: implausible entry %+v", rune(c.ID), c)
		}
	}

	f, err := os.Open(res.PagePaths[0])
	if err != nil {
		t.Fatalf("open page: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode page: %v", err)
	}
	inked := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("page image has no drawn pixels")
	}
}

func TestPageError(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&PageError{Page: 3, Err: cause})
	if !errors.Is(err, cause) {
		t.Error("PageError does not unwrap to its cause")
	}
	if got, want := err.Error(), "bmfont: page 3: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
