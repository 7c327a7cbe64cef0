// Package text supplies glyph ink metrics and glyph masks for the atlas
// generator.
//
// The pipeline follows a separation of concerns:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF/TTC data)
//   - Face: a FontSource at one pixel size, answering metric and mask queries
//   - Provider: maps a (codepoint, style) pair to a Glyph
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	face, err := source.Face(32)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer face.Close()
//
//	m, ok := face.Metric('A')
//
// # Providers
//
// A Chain tries an ordered list of faces and then a fallback provider, the
// way a page's font list is resolved. SystemFonts resolves family names and
// per-character fallbacks against the installed fonts. CachedProvider
// memoizes any Provider.
//
// # Metrics backends
//
// Metrics are read from golang.org/x/image by default. The "gotext" backend
// measures glyphs with the go-text HarfBuzz shaper instead; masks are always
// rasterized by golang.org/x/image and aligned to the reported ink box.
//
// # Pluggable Parser Backend
//
// Font parsing is abstracted through the FontParser interface and can be
// replaced with RegisterParser and WithParser.
package text
