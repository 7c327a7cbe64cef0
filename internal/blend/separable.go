package blend

import "math"

// separable composites with a per-channel blend function B operating on
// unpremultiplied channels:
//
//	result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Cs, Cd)
func separable(sr, sg, sb, sa, dr, dg, db, da byte, fn func(s, d byte) byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	br := fn(unpremul(sr, sa), unpremul(dr, da))
	bg := fn(unpremul(sg, sa), unpremul(dg, da))
	bb := fn(unpremul(sb, sa), unpremul(db, da))

	return composite(sr, sg, sb, sa, dr, dg, db, da, br, bg, bb)
}

// composite applies the blend compositing formula to an already blended,
// unpremultiplied color (br, bg, bb).
func composite(sr, sg, sb, sa, dr, dg, db, da, br, bg, bb byte) (byte, byte, byte, byte) {
	ks, kd := 255-da, 255-sa
	both := mulDiv255(sa, da)
	r := addClamp(addClamp(mulDiv255(dr, kd), mulDiv255(sr, ks)), mulDiv255(both, br))
	g := addClamp(addClamp(mulDiv255(dg, kd), mulDiv255(sg, ks)), mulDiv255(both, bg))
	b := addClamp(addClamp(mulDiv255(db, kd), mulDiv255(sb, ks)), mulDiv255(both, bb))
	a := addClamp(sa, mulDiv255(da, kd))
	return r, g, b, a
}

func unpremul(c, a byte) byte {
	if a == 0 {
		return 0
	}
	v := uint16(c) * 255 / uint16(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, mulDiv255)
}

func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return 255 - mulDiv255(255-s, 255-d)
	})
}

// hardLightChannel is Multiply for dark sources and Screen for light ones.
func hardLightChannel(s, d byte) byte {
	if s <= 127 {
		return mulDiv255(s, d) * 2
	}
	return 255 - 2*mulDiv255(255-s, 255-d)
}

func blendOverlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return hardLightChannel(d, s)
	})
}

func blendHardLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, hardLightChannel)
}

func blendDarken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, minByte)
}

func blendLighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, maxByte)
}

func blendColorDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if d == 0 {
			return 0
		}
		if s == 255 {
			return 255
		}
		return byte(min(uint16(d)*255/uint16(255-s), 255))
	})
}

func blendColorBurn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if d == 255 {
			return 255
		}
		if s == 0 {
			return 0
		}
		return 255 - byte(min(uint16(255-d)*255/uint16(s), 255))
	})
}

func blendSoftLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		cs := float64(s) / 255
		cd := float64(d) / 255
		var v float64
		if cs <= 0.5 {
			v = cd - (1-2*cs)*cd*(1-cd)
		} else {
			dd := math.Sqrt(cd)
			if cd <= 0.25 {
				dd = ((16*cd-12)*cd + 4) * cd
			}
			v = cd + (2*cs-1)*(dd-cd)
		}
		return byte(math.Round(math.Max(0, math.Min(1, v)) * 255))
	})
}

func blendDifference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return max(s, d) - min(s, d)
	})
}

func blendExclusion(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return byte(int(s) + int(d) - 2*int(mulDiv255(s, d)))
	})
}

func minByte(a, b byte) byte { return min(a, b) }

func maxByte(a, b byte) byte { return max(a, b) }
