package descriptor

import (
	"golang.org/x/text/encoding/charmap"
)

// ANSICharID returns the Windows-1252 code of r, the char id written when
// the font is not in unicode mode. The second result is false when r has no
// single-byte encoding.
func ANSICharID(r rune) (uint32, bool) {
	b, ok := charmap.Windows1252.EncodeRune(r)
	if !ok {
		return 0, false
	}
	return uint32(b), true
}
