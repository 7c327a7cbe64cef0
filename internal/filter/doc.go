// Package filter provides the alpha mask filters used to render glyph
// effects.
//
//   - Gaussian blur (separable) for soft shadows
//   - Morphological dilation and erosion for stroked outlines
//
// All filters operate on *image.Alpha coverage masks. A filter that spreads
// coverage returns a mask whose bounds grow by the filter reach, so the
// result still holds the whole effect.
package filter
