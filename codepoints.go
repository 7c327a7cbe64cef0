package bmfont

import (
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/bmfont/config"
)

// CollectCodepoints returns the characters requested by page: explicit chars
// first, then the runes of its text. Duplicates are removed and the first
// occurrence keeps its position. With normalize set the text is converted to
// NFC first, so decomposed sequences yield their precomposed characters.
func CollectCodepoints(page config.Page, normalize bool) []rune {
	seen := make(map[rune]struct{}, len(page.Chars)+len(page.Text))
	out := make([]rune, 0, len(page.Chars)+len(page.Text))
	add := func(r rune) {
		if _, ok := seen[r]; ok {
			return
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}

	for _, c := range page.Chars {
		add(rune(c)) //nolint:gosec // codepoints fit in a rune
	}
	s := page.Text
	if normalize {
		s = norm.NFC.String(s)
	}
	for _, r := range s {
		add(r)
	}
	return out
}
