package bmfont

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/gogpu/bmfont/config"
	"github.com/gogpu/bmfont/descriptor"
	"github.com/gogpu/bmfont/internal/parallel"
	"github.com/gogpu/bmfont/layout"
	"github.com/gogpu/bmfont/raster"
	"github.com/gogpu/bmfont/text"
)

// DefaultOutput is the output file used when the configuration names none.
const DefaultOutput = "out.fnt"

// Generator runs bitmap font generations for one configuration.
//
// A Generator is immutable after creation; Run may be called repeatedly and
// concurrently as long as the runs write to different outputs.
type Generator struct {
	cfg  config.Config
	opts options
}

// Result describes the files written by a run.
type Result struct {
	// Font is the descriptor as written.
	Font *descriptor.Font

	// DescriptorPath is the path of the written descriptor.
	DescriptorPath string

	// PagePaths holds the image path of every page, in page order. It is
	// empty when images were skipped.
	PagePaths []string

	// Dropped lists the characters left out because no font covers them
	// or, in ANSI mode, because they have no single-byte code.
	Dropped []rune

	// MaxOffsetY is the largest below-baseline extent across all pages.
	MaxOffsetY int
}

// pageGlyphs are the glyphs found for one page, in request order.
type pageGlyphs struct {
	metrics []layout.GlyphMetric
	faces   []*text.Face
	ids     []uint32
}

// NewGenerator validates cfg and creates a Generator. The configuration is
// copied and normalized; later changes to cfg have no effect.
func NewGenerator(cfg *config.Config, opts ...Option) (*Generator, error) {
	if cfg == nil || len(cfg.Pages) == 0 {
		return nil, ErrNoPages
	}
	c := *cfg
	c.Pages = slices.Clone(cfg.Pages)
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutput
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	o := options{workers: c.Workers}
	for _, opt := range opts {
		opt(&o)
	}

	if o.rasterizer == nil && !o.skipImages {
		style, err := c.RasterStyle()
		if err != nil {
			Logger().Warn("text style has invalid values, using fallbacks", "err", err)
		}
		o.rasterizer = raster.New(style, raster.WithLogger(Logger()))
	}
	return &Generator{cfg: c, opts: o}, nil
}

// Config returns the normalized configuration of g.
func (g *Generator) Config() config.Config {
	return g.cfg
}

// Run generates the font: page images first, then the descriptor.
//
// If any page fails to draw or save, Run returns a *PageError and writes no
// descriptor. Cancelling ctx stops the run between pages; the descriptor is
// not written then either.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	log := Logger()
	base := descriptor.BaseName(g.cfg.OutputFile)
	res := &Result{DescriptorPath: descriptor.DescriptorFileName(base)}

	// Faces stay open until the pages are drawn.
	var fonts *fontSet
	if g.opts.provider == nil {
		fonts = newFontSet(&g.cfg, log)
		defer func() {
			if err := fonts.Close(); err != nil {
				log.Warn("close fonts", "err", err)
			}
		}()
	}

	clock := time.Now()
	glyphs, err := g.matchFonts(ctx, fonts, log, res)
	if err != nil {
		return nil, err
	}
	log.Info("match font", "elapsed", time.Since(clock))

	pages := g.layoutPages(glyphs, base, log, res)

	clock = time.Now()
	if g.opts.skipImages {
		res.PagePaths = nil
	} else {
		if err := g.drawPages(ctx, pages, glyphs, res.PagePaths); err != nil {
			return nil, err
		}
		log.Info("draw text", "pages", len(pages), "elapsed", time.Since(clock))
		clock = time.Now()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Font = g.descriptor(pages, glyphs, res.MaxOffsetY)
	if err := descriptor.WriteFile(res.DescriptorPath, res.Font); err != nil {
		return nil, fmt.Errorf("bmfont: save font: %w", err)
	}
	log.Info("save font", "path", res.DescriptorPath,
		"chars", res.Font.CharCount(), "elapsed", time.Since(clock))
	return res, nil
}

// matchFonts looks up the metrics of every requested character.
// fonts is nil when a provider factory is configured.
func (g *Generator) matchFonts(ctx context.Context, fonts *fontSet, log *slog.Logger, res *Result) ([]pageGlyphs, error) {
	style := text.Style{Bold: g.cfg.TextStyle.Bold, Italic: g.cfg.TextStyle.Italic}
	out := make([]pageGlyphs, len(g.cfg.Pages))
	for i, page := range g.cfg.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var provider text.Provider
		if g.opts.provider != nil {
			p, err := g.opts.provider(i)
			if err != nil {
				return nil, fmt.Errorf("bmfont: page %d: provider: %w", i, err)
			}
			provider = p
		} else {
			provider = fonts.page(page, style)
		}

		pg := &out[i]
		for _, r := range CollectCodepoints(page, g.cfg.NormalizeText) {
			if r == '\n' {
				continue
			}
			id := uint32(r) //nolint:gosec // codepoints are non-negative
			if !g.cfg.Unicode {
				ansi, ok := descriptor.ANSICharID(r)
				if !ok {
					log.Warn("character has no ANSI code, dropped", "page", i, "char", string(r), "codepoint", r)
					res.Dropped = append(res.Dropped, r)
					continue
				}
				id = ansi
			}
			gl, ok := provider.Lookup(r, style)
			if !ok {
				log.Warn("no font covers character, dropped", "page", i, "char", string(r), "codepoint", r)
				res.Dropped = append(res.Dropped, r)
				continue
			}
			gl.Metric.Codepoint = r
			pg.metrics = append(pg.metrics, gl.Metric)
			pg.faces = append(pg.faces, gl.Face)
			pg.ids = append(pg.ids, id)
		}
	}
	return out, nil
}

// layoutPages packs every page and names its image. The largest
// below-baseline offset is folded into res.
func (g *Generator) layoutPages(glyphs []pageGlyphs, base string, log *slog.Logger, res *Result) []layout.Page {
	lcfg := g.cfg.Layout()
	pages := make([]layout.Page, len(glyphs))
	res.PagePaths = make([]string, len(glyphs))
	for i, pg := range glyphs {
		r := layout.ComputeLayout(i, pg.metrics, lcfg)
		path := descriptor.PageFileName(base, i, len(glyphs))
		r.Page.FileName = descriptor.RelativeFile(path)
		res.PagePaths[i] = path
		res.MaxOffsetY = max(res.MaxOffsetY, r.MaxOffsetY)
		pages[i] = r.Page

		log.Debug("layout page", "page", i, "glyphs", len(r.Page.Glyphs),
			"width", r.Page.Width, "height", r.Page.Height, "rows", r.Rows)
	}
	return pages
}

// drawPages rasterizes and saves all pages on a worker pool. The first
// failing page cancels the others.
func (g *Generator) drawPages(ctx context.Context, pages []layout.Page, glyphs []pageGlyphs, paths []string) error {
	workers := g.opts.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := parallel.NewWorkerPool(min(workers, max(len(pages), 1)))
	defer pool.Close()

	return pool.Run(ctx, len(pages), func(ctx context.Context, i int) error {
		if err := g.drawPage(ctx, pages[i], glyphs[i].faces, paths[i]); err != nil {
			return &PageError{Page: i, Err: err}
		}
		return nil
	})
}

func (g *Generator) drawPage(ctx context.Context, page layout.Page, faces []*text.Face, path string) error {
	glyphs := make([]raster.Glyph, len(page.Glyphs))
	for j, pg := range page.Glyphs {
		glyphs[j] = raster.Glyph{PlacedGlyph: pg}
		if f := faces[j]; f != nil {
			glyphs[j].Mask = f.Mask(pg.GlyphMetric)
		}
	}
	// An empty page may have no height without power-of-two sizes.
	img, err := g.opts.rasterizer.DrawPage(ctx, max(page.Width, 1), max(page.Height, 1), glyphs)
	if err != nil {
		return err
	}
	return raster.SavePNG(path, img)
}

// descriptor builds the font descriptor of the laid out pages.
func (g *Generator) descriptor(pages []layout.Page, glyphs []pageGlyphs, maxOffsetY int) *descriptor.Font {
	ts := &g.cfg.TextStyle
	lineHeight := ts.FontSize + 2*ts.OutlineThickness +
		g.cfg.GlyphPaddingUp + g.cfg.GlyphPaddingDown + g.cfg.LineHeightAdvance
	if g.cfg.FullyWrapped {
		lineHeight += maxOffsetY
	}

	f := &descriptor.Font{
		Face:       descriptor.DefaultFace,
		Size:       ts.FontSize,
		Bold:       ts.Bold,
		Italic:     ts.Italic,
		Unicode:    g.cfg.Unicode,
		StretchH:   100,
		Smooth:     true,
		AA:         2,
		Spacing:    layout.Spacing{X: g.cfg.SpacingHoriz, Y: g.cfg.SpacingVert},
		Outline:    ts.OutlineThickness,
		LineHeight: lineHeight,
		Base:       ts.FontSize,
		Pages:      make([]descriptor.Page, len(pages)),
	}
	for i, p := range pages {
		f.Pages[i] = descriptor.FromLayout(p)
		for j := range f.Pages[i].Chars {
			f.Pages[i].Chars[j].ID = glyphs[i].ids[j]
		}
	}
	return f
}
