// Package layout implements the atlas layout engine of bmfont.
//
// Given the ink metrics of a page's glyphs and a Config, the engine decides
// the page dimensions and the position of every glyph on the page:
//
//   - SearchWidth picks the smallest doubling width (starting at 2) that keeps
//     the page near-square, clamped to Config.MaxWidth.
//   - Height simulates the row-major shelf pack for a candidate width.
//   - ComputeLayout repeats the same pack for the chosen width and records
//     positions plus the offsets a text renderer needs.
//
// The packing order is the glyph insertion order. This is a shelf pack, not a
// best-fit bin pack: it trades density for determinism and O(n) cost, so the
// same input always yields the same page.
//
// The package is pure. It has no shared state and performs no I/O, so pages
// may be laid out concurrently.
package layout
