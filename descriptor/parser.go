package descriptor

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError reports a malformed descriptor line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return "descriptor: line " + strconv.Itoa(e.Line) + ": " + e.Msg
}

// Parse reads a text descriptor. Runs of spaces between fields, LF or CRLF
// line endings and unknown keys are accepted.
func Parse(r io.Reader) (*Font, error) {
	f := &Font{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var page *Page
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		tag, fields, err := splitLine(text)
		if err != nil {
			return nil, &ParseError{Line: line, Msg: err.Error()}
		}

		p := fieldParser{fields: fields}
		switch tag {
		case "info":
			f.Face = fields["face"]
			f.Size = p.int("size")
			f.Bold = p.int("bold") != 0
			f.Italic = p.int("italic") != 0
			f.Unicode = p.int("unicode") != 0
			f.StretchH = p.int("stretchH")
			f.Smooth = p.int("smooth") != 0
			f.AA = p.int("aa")
			if v := p.ints("padding", 4); v != nil {
				f.Padding.Up, f.Padding.Right, f.Padding.Down, f.Padding.Left = v[0], v[1], v[2], v[3]
			}
			if v := p.ints("spacing", 2); v != nil {
				f.Spacing.X, f.Spacing.Y = v[0], v[1]
			}
			f.Outline = p.int("outline")
		case "common":
			f.LineHeight = p.int("lineHeight")
			f.Base = p.int("base")
			f.ScaleW = p.int("scaleW")
			f.ScaleH = p.int("scaleH")
		case "page":
			f.Pages = append(f.Pages, Page{ID: p.int("id"), File: fields["file"]})
			page = &f.Pages[len(f.Pages)-1]
		case "chars":
			if page == nil {
				return nil, &ParseError{Line: line, Msg: "chars before page"}
			}
			if n := p.int("count"); n > 0 {
				page.Chars = make([]Char, 0, n)
			}
		case "char":
			if page == nil {
				return nil, &ParseError{Line: line, Msg: "char before page"}
			}
			page.Chars = append(page.Chars, Char{
				ID:       p.u32("id"),
				X:        p.int("x"),
				Y:        p.int("y"),
				Width:    p.int("width"),
				Height:   p.int("height"),
				XOffset:  p.int("xoffset"),
				YOffset:  p.int("yoffset"),
				XAdvance: p.int("xadvance"),
				Page:     p.int("page"),
				Channel:  p.int("chnl"),
			})
		}
		if p.err != nil {
			return nil, &ParseError{Line: line, Msg: p.err.Error()}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("descriptor: read: %w", err)
	}
	return f, nil
}

// splitLine splits "tag key=value key="quoted value" ..." into its tag and
// fields.
func splitLine(s string) (string, map[string]string, error) {
	s = strings.TrimLeft(s, " \t")
	end := strings.IndexAny(s, " \t")
	if end < 0 {
		return s, map[string]string{}, nil
	}
	tag := s[:end]
	fields := make(map[string]string)

	rest := s[end:]
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return tag, fields, nil
		}
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 {
			return "", nil, fmt.Errorf("expected key=value near %q", rest)
		}
		key := rest[:eq]
		if strings.ContainsAny(key, " \t") {
			return "", nil, fmt.Errorf("malformed key %q", key)
		}
		rest = rest[eq+1:]

		if strings.HasPrefix(rest, `"`) {
			closing := strings.IndexByte(rest[1:], '"')
			if closing < 0 {
				return "", nil, fmt.Errorf("unterminated quote for %s", key)
			}
			fields[key] = rest[1 : closing+1]
			rest = rest[closing+2:]
			continue
		}

		stop := strings.IndexAny(rest, " \t")
		if stop < 0 {
			stop = len(rest)
		}
		fields[key] = rest[:stop]
		rest = rest[stop:]
	}
}

// fieldParser converts field values and keeps the first conversion error.
type fieldParser struct {
	fields map[string]string
	err    error
}

func (p *fieldParser) int(key string) int {
	v, ok := p.fields[key]
	if !ok || p.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = fmt.Errorf("field %s: %w", key, err)
		return 0
	}
	return n
}

// u32 parses an unsigned 32-bit value. Negative values and values above
// math.MaxUint32 are errors.
func (p *fieldParser) u32(key string) uint32 {
	v, ok := p.fields[key]
	if !ok || p.err != nil {
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		p.err = fmt.Errorf("field %s: %w", key, err)
		return 0
	}
	return uint32(n)
}

func (p *fieldParser) ints(key string, n int) []int {
	v, ok := p.fields[key]
	if !ok || p.err != nil {
		return nil
	}
	parts := strings.Split(v, ",")
	if len(parts) != n {
		p.err = fmt.Errorf("field %s: want %d values, got %d", key, n, len(parts))
		return nil
	}
	out := make([]int, n)
	for i, s := range parts {
		x, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			p.err = fmt.Errorf("field %s: %w", key, err)
			return nil
		}
		out[i] = x
	}
	return out
}
