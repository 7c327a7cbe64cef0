package blend

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		want Mode
		ok   bool
	}{
		{"SrcOver", SrcOver, true},
		{"srcover", SrcOver, true},
		{"Multiply", Multiply, true},
		{"Luminosity", Luminosity, true},
		{"Xor", Xor, true},
		{"", SrcOver, false},
		{"Burn", SrcOver, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMode_StringRoundTrip(t *testing.T) {
	for m := Clear; m <= Luminosity; m++ {
		got, ok := ParseMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", m.String(), got, ok, m)
		}
	}
	if s := Mode(200).String(); s != "Mode(200)" {
		t.Errorf("Mode(200).String() = %q", s)
	}
}

type px struct{ r, g, b, a byte }

func apply(m Mode, s, d px) px {
	r, g, b, a := FuncFor(m)(s.r, s.g, s.b, s.a, d.r, d.g, d.b, d.a)
	return px{r, g, b, a}
}

func TestPorterDuff(t *testing.T) {
	red := px{255, 0, 0, 255}
	blue := px{0, 0, 255, 255}
	halfRed := px{128, 0, 0, 128}
	clear := px{}

	tests := []struct {
		name string
		mode Mode
		s, d px
		want px
	}{
		{"clear", Clear, red, blue, clear},
		{"src", Src, red, blue, red},
		{"dst", Dst, red, blue, blue},
		{"src over opaque", SrcOver, red, blue, red},
		{"src over transparent dst", SrcOver, halfRed, clear, halfRed},
		{"src over half", SrcOver, halfRed, blue, px{128, 0, 127, 255}},
		{"dst over", DstOver, red, blue, blue},
		{"src in empty", SrcIn, red, clear, clear},
		{"dst out", DstOut, red, blue, clear},
		{"src out empty dst", SrcOut, red, clear, red},
		{"xor opaque", Xor, red, blue, clear},
		{"plus clamps", Plus, red, px{255, 0, 255, 255}, px{255, 0, 255, 255}},
		{"modulate", Modulate, px{255, 128, 0, 255}, px{128, 255, 255, 255}, px{128, 128, 0, 255}},
		{"src atop keeps dst alpha", SrcATop, red, clear, clear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(tt.mode, tt.s, tt.d); got != tt.want {
				t.Errorf("%v(%v, %v) = %v, want %v", tt.mode, tt.s, tt.d, got, tt.want)
			}
		})
	}
}

func TestSeparable(t *testing.T) {
	white := px{255, 255, 255, 255}
	black := px{0, 0, 0, 255}
	gray := px{128, 128, 128, 255}

	tests := []struct {
		name string
		mode Mode
		s, d px
		want px
	}{
		{"multiply by white", Multiply, white, gray, gray},
		{"multiply by black", Multiply, black, gray, black},
		{"screen with black", Screen, black, gray, gray},
		{"screen with white", Screen, white, gray, white},
		{"darken", Darken, black, gray, black},
		{"lighten", Lighten, black, gray, gray},
		{"difference", Difference, white, white, black},
		{"exclusion with black", Exclusion, black, gray, gray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(tt.mode, tt.s, tt.d); got != tt.want {
				t.Errorf("%v(%v, %v) = %v, want %v", tt.mode, tt.s, tt.d, got, tt.want)
			}
		})
	}
}

func TestBlend_TransparentOperands(t *testing.T) {
	c := px{10, 20, 30, 40}
	for m := Screen; m <= Luminosity; m++ {
		if got := apply(m, px{}, c); got != c {
			t.Errorf("%v with transparent source = %v, want %v", m, got, c)
		}
		if got := apply(m, c, px{}); got != c {
			t.Errorf("%v onto transparent destination = %v, want %v", m, got, c)
		}
	}
}

func TestNonSeparable_Gray(t *testing.T) {
	// Blending gray onto gray keeps the backdrop luminosity.
	gray := px{100, 100, 100, 255}
	for _, m := range []Mode{Hue, Saturation, Color, Luminosity} {
		got := apply(m, gray, gray)
		if diffByte(got.r, 100) > 1 || got.r != got.g || got.g != got.b || got.a != 255 {
			t.Errorf("%v(gray, gray) = %v, want ~gray", m, got)
		}
	}
}

func TestLumClip(t *testing.T) {
	r, g, b := clipColor(1.2, 0.5, -0.1)
	for _, v := range []float32{r, g, b} {
		if v < -1e-6 || v > 1+1e-6 {
			t.Errorf("clipColor component %f out of range", v)
		}
	}
	if l := lum(1, 1, 1); l < 0.999 || l > 1.001 {
		t.Errorf("lum(white) = %f, want 1", l)
	}
}

func diffByte(a, b byte) byte {
	if a > b {
		return a - b
	}
	return b - a
}
