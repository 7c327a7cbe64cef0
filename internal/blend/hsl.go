package blend

import "math"

// Non-separable modes operate on the whole RGB triplet in [0, 1] floats,
// following the Lum/Sat/ClipColor helpers of the W3C compositing spec.

func lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

func sat(r, g, b float32) float32 {
	return max(r, g, b) - min(r, g, b)
}

func clipColor(r, g, b float32) (float32, float32, float32) {
	l := lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)
	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

func setLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - lum(r, g, b)
	return clipColor(r+d, g+d, b+d)
}

func setSat(r, g, b, s float32) (float32, float32, float32) {
	c := [3]*float32{&r, &g, &b}
	// Order pointers min, mid, max.
	if *c[0] > *c[1] {
		c[0], c[1] = c[1], c[0]
	}
	if *c[1] > *c[2] {
		c[1], c[2] = c[2], c[1]
	}
	if *c[0] > *c[1] {
		c[0], c[1] = c[1], c[0]
	}
	lo, mid, hi := c[0], c[1], c[2]
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid, *hi = 0, 0
	}
	*lo = 0
	return r, g, b
}

func nonSeparable(sr, sg, sb, sa, dr, dg, db, da byte, fn func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32)) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}
	s := func(c byte) float32 { return float32(c) / float32(sa) }
	d := func(c byte) float32 { return float32(c) / float32(da) }

	r, g, b := fn(s(sr), s(sg), s(sb), d(dr), d(dg), d(db))
	return composite(sr, sg, sb, sa, dr, dg, db, da, toByte(r), toByte(g), toByte(b))
}

func toByte(v float32) byte {
	return byte(math.Round(float64(max(0, min(1, v)) * 255)))
}

func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
		r, g, b := setSat(sr, sg, sb, sat(dr, dg, db))
		return setLum(r, g, b, lum(dr, dg, db))
	})
}

func blendSaturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
		r, g, b := setSat(dr, dg, db, sat(sr, sg, sb))
		return setLum(r, g, b, lum(dr, dg, db))
	})
}

func blendColor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
		return setLum(sr, sg, sb, lum(dr, dg, db))
	})
}

func blendLuminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
		return setLum(dr, dg, db, lum(sr, sg, sb))
	})
}
