package bmfont

import (
	"context"
	"image"

	"github.com/gogpu/bmfont/raster"
	"github.com/gogpu/bmfont/text"
)

// PageRasterizer draws the glyphs of one page into an image of the given
// size. [raster.Rasterizer] is the default implementation.
type PageRasterizer interface {
	DrawPage(ctx context.Context, width, height int, glyphs []raster.Glyph) (*image.RGBA, error)
}

// ProviderFactory returns the metrics provider of a page.
type ProviderFactory func(page int) (text.Provider, error)

// Option configures a Generator during creation.
//
// Example:
//
//	gen, err := bmfont.NewGenerator(cfg,
//		bmfont.WithWorkers(2),
//		bmfont.WithSkipImages(),
//	)
type Option func(*options)

type options struct {
	provider   ProviderFactory
	rasterizer PageRasterizer
	workers    int
	skipImages bool
}

// WithProvider replaces the font lookup of every page. By default a page
// uses its configured fonts followed by the system fonts.
func WithProvider(f ProviderFactory) Option {
	return func(o *options) {
		o.provider = f
	}
}

// WithRasterizer sets the page rasterizer. By default a [raster.Rasterizer]
// built from the configured text style is used.
func WithRasterizer(r PageRasterizer) Option {
	return func(o *options) {
		o.rasterizer = r
	}
}

// WithWorkers bounds how many pages are drawn at once. It overrides the
// workers value of the configuration. Zero means one per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.workers = n
		}
	}
}

// WithSkipImages disables drawing and saving page images. Only the
// descriptor is written.
func WithSkipImages() Option {
	return func(o *options) {
		o.skipImages = true
	}
}
