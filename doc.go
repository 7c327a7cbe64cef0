// Package bmfont generates bitmap font atlases.
//
// A generation run reads a [config.Config], looks up the metrics of every
// requested character, packs the glyphs of each page into a texture, draws
// the pages and writes a text descriptor in the AngelCode BMFont format next
// to the page images.
//
// # Quick Start
//
//	cfg, err := config.Load("font.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	gen, err := bmfont.NewGenerator(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := gen.Run(context.Background())
//
// # Pipeline
//
// Each page goes through the same steps:
//
//   - codepoints are collected from the page's chars and text
//   - glyph metrics come from the page fonts, then the system fonts
//   - the layout engine picks the page size and places every glyph
//   - the rasterizer draws outline, shadows and fill into the page image
//
// Pages are drawn concurrently. The descriptor is written only after every
// page image was saved; a failing page aborts the run.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to route its messages
// to a [log/slog] handler.
package bmfont
