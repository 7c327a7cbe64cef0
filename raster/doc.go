// Package raster paints laid out glyphs into atlas page images.
//
// A [Rasterizer] draws every glyph of a page in a fixed order: outline
// shadows, the stroked outline, text shadows, the text fill and finally
// optional debug rectangles. Each layer is a coverage mask filled with a
// solid colour or a linear gradient and composited with a named blend mode.
//
// Colours are written as "#RRGGBBAA" strings; see [ParseColor].
package raster
