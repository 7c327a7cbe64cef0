// Package blend implements Porter-Duff compositing and the W3C blend modes
// over premultiplied 8-bit RGBA.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"strconv"
	"strings"
)

// Mode is a compositing operation.
type Mode uint8

// Porter-Duff modes.
const (
	Clear   Mode = iota // 0
	Src                 // S
	Dst                 // D
	SrcOver             // S + D*(1-Sa)
	DstOver             // S*(1-Da) + D
	SrcIn               // S*Da
	DstIn               // D*Sa
	SrcOut              // S*(1-Da)
	DstOut              // D*(1-Sa)
	SrcATop             // S*Da + D*(1-Sa)
	DstATop             // S*(1-Da) + D*Sa
	Xor                 // S*(1-Da) + D*(1-Sa)
	Plus                // min(S+D, 1)
	Modulate            // S*D
)

// Separable and non-separable blend modes.
const (
	Screen Mode = iota + Modulate + 1
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Multiply
	Hue
	Saturation
	Color
	Luminosity
)

var modeNames = [...]string{
	Clear: "Clear", Src: "Src", Dst: "Dst", SrcOver: "SrcOver", DstOver: "DstOver",
	SrcIn: "SrcIn", DstIn: "DstIn", SrcOut: "SrcOut", DstOut: "DstOut",
	SrcATop: "SrcATop", DstATop: "DstATop", Xor: "Xor", Plus: "Plus",
	Modulate: "Modulate", Screen: "Screen", Overlay: "Overlay", Darken: "Darken",
	Lighten: "Lighten", ColorDodge: "ColorDodge", ColorBurn: "ColorBurn",
	HardLight: "HardLight", SoftLight: "SoftLight", Difference: "Difference",
	Exclusion: "Exclusion", Multiply: "Multiply", Hue: "Hue",
	Saturation: "Saturation", Color: "Color", Luminosity: "Luminosity",
}

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode looks up a mode by name, ignoring case. The second result is
// false for unknown names.
func ParseMode(name string) (Mode, bool) {
	for m, n := range modeNames {
		if strings.EqualFold(n, name) {
			return Mode(m), true
		}
	}
	return SrcOver, false
}

// Func blends one premultiplied source pixel onto a destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// FuncFor returns the blend function of mode. Unknown modes get SrcOver.
func FuncFor(mode Mode) Func {
	switch mode {
	case Clear:
		return blendClear
	case Src:
		return blendSrc
	case Dst:
		return blendDst
	case SrcOver:
		return blendSrcOver
	case DstOver:
		return blendDstOver
	case SrcIn:
		return blendSrcIn
	case DstIn:
		return blendDstIn
	case SrcOut:
		return blendSrcOut
	case DstOut:
		return blendDstOut
	case SrcATop:
		return blendSrcATop
	case DstATop:
		return blendDstATop
	case Xor:
		return blendXor
	case Plus:
		return blendPlus
	case Modulate:
		return blendModulate
	case Screen:
		return blendScreen
	case Overlay:
		return blendOverlay
	case Darken:
		return blendDarken
	case Lighten:
		return blendLighten
	case ColorDodge:
		return blendColorDodge
	case ColorBurn:
		return blendColorBurn
	case HardLight:
		return blendHardLight
	case SoftLight:
		return blendSoftLight
	case Difference:
		return blendDifference
	case Exclusion:
		return blendExclusion
	case Multiply:
		return blendMultiply
	case Hue:
		return blendHue
	case Saturation:
		return blendSaturation
	case Color:
		return blendColor
	case Luminosity:
		return blendLuminosity
	default:
		return blendSrcOver
	}
}

func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

func blendSrc(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func blendDst(_, _, _, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

func blendSrcOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	k := 255 - sa
	return addClamp(sr, mulDiv255(dr, k)),
		addClamp(sg, mulDiv255(dg, k)),
		addClamp(sb, mulDiv255(db, k)),
		addClamp(sa, mulDiv255(da, k))
}

func blendDstOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return blendSrcOver(dr, dg, db, da, sr, sg, sb, sa)
}

func blendSrcIn(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

func blendDstIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

func blendSrcOut(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	k := 255 - da
	return mulDiv255(sr, k), mulDiv255(sg, k), mulDiv255(sb, k), mulDiv255(sa, k)
}

func blendDstOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	k := 255 - sa
	return mulDiv255(dr, k), mulDiv255(dg, k), mulDiv255(db, k), mulDiv255(da, k)
}

func blendSrcATop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	k := 255 - sa
	return addClamp(mulDiv255(sr, da), mulDiv255(dr, k)),
		addClamp(mulDiv255(sg, da), mulDiv255(dg, k)),
		addClamp(mulDiv255(sb, da), mulDiv255(db, k)),
		da
}

func blendDstATop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return blendSrcATop(dr, dg, db, da, sr, sg, sb, sa)
}

func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	ks, kd := 255-da, 255-sa
	return addClamp(mulDiv255(sr, ks), mulDiv255(dr, kd)),
		addClamp(mulDiv255(sg, ks), mulDiv255(dg, kd)),
		addClamp(mulDiv255(sb, ks), mulDiv255(db, kd)),
		addClamp(mulDiv255(sa, ks), mulDiv255(da, kd))
}

func blendPlus(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

func blendModulate(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, dr), mulDiv255(sg, dg), mulDiv255(sb, db), mulDiv255(sa, da)
}

// mulDiv255 returns a*b/255 rounded to nearest.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addClamp returns min(a+b, 255).
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
