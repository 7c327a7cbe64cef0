package filter

import (
	"image"
	"math"
)

// Dilate grows the coverage of src by radius pixels using an anti-aliased
// disc. The result bounds are src's bounds grown by ceil(radius).
//
// For radius <= 0 the result is a copy of src.
func Dilate(src *image.Alpha, radius float64) *image.Alpha {
	reach := reachOf(radius)
	dst := image.NewAlpha(src.Bounds().Inset(-reach))
	if reach == 0 {
		copyAlpha(dst, src)
		return dst
	}
	disc := newDisc(radius)
	sb := src.Bounds()
	db := dst.Bounds()

	for y := db.Min.Y; y < db.Max.Y; y++ {
		for x := db.Min.X; x < db.Max.X; x++ {
			var best float64
			for _, tap := range disc {
				p := image.Point{X: x + tap.dx, Y: y + tap.dy}
				if !p.In(sb) {
					continue
				}
				v := float64(src.Pix[src.PixOffset(p.X, p.Y)]) * tap.weight
				if v > best {
					best = v
					if best >= 255 {
						break
					}
				}
			}
			dst.Pix[dst.PixOffset(x, y)] = uint8(math.Round(min(best, 255)))
		}
	}
	return dst
}

// Erode shrinks the coverage of src by radius pixels. Pixels outside src
// count as empty. The result keeps src's bounds.
func Erode(src *image.Alpha, radius float64) *image.Alpha {
	sb := src.Bounds()
	reach := reachOf(radius)

	// Erosion is dilation of the complement.
	inv := image.NewAlpha(sb.Inset(-reach))
	for i := range inv.Pix {
		inv.Pix[i] = 255
	}
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			inv.Pix[inv.PixOffset(x, y)] = 255 - src.Pix[src.PixOffset(x, y)]
		}
	}
	grown := Dilate(inv, radius)

	dst := image.NewAlpha(sb)
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			dst.Pix[dst.PixOffset(x, y)] = 255 - grown.Pix[grown.PixOffset(x, y)]
		}
	}
	return dst
}

// Stroke returns the band of width 2*radius centred on the edge of src's
// coverage: the dilated mask minus the eroded one. The result bounds match
// Dilate.
func Stroke(src *image.Alpha, radius float64) *image.Alpha {
	outer := Dilate(src, radius)
	inner := Erode(src, radius)
	ib := inner.Bounds()
	for y := ib.Min.Y; y < ib.Max.Y; y++ {
		for x := ib.Min.X; x < ib.Max.X; x++ {
			o := outer.PixOffset(x, y)
			i := inner.Pix[inner.PixOffset(x, y)]
			if outer.Pix[o] > i {
				outer.Pix[o] -= i
			} else {
				outer.Pix[o] = 0
			}
		}
	}
	return outer
}

type discTap struct {
	dx, dy int
	weight float64
}

// newDisc returns the offsets a pixel edge moves by when grown by radius,
// weighted by the covered fraction of the target pixel.
func newDisc(radius float64) []discTap {
	reach := reachOf(radius)
	taps := make([]discTap, 0, (2*reach+1)*(2*reach+1))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			w := radius + 1 - d
			if w <= 0 {
				continue
			}
			taps = append(taps, discTap{dx: dx, dy: dy, weight: min(w, 1)})
		}
	}
	return taps
}

func reachOf(radius float64) int {
	if radius <= 0 {
		return 0
	}
	return int(math.Ceil(radius))
}
