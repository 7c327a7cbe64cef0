package descriptor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
)

const eol = "\r\n"

// Channel setup written on the common line: glyphs live in the alpha channel
// of an unpacked texture.
const (
	packed    = 0
	alphaChnl = 1
	redChnl   = 0
	greenChnl = 0
	blueChnl  = 0
)

// Write serializes f to w. It never modifies f.
func Write(w io.Writer, f *Font) error {
	bw := bufio.NewWriter(w)

	face := f.Face
	if face == "" {
		face = DefaultFace
	}
	charset := ""
	if !f.Unicode {
		charset = "ANSI"
	}

	fmt.Fprintf(bw, "info face=\"%s\" size=%d bold=%d italic=%d charset=\"%s\" unicode=%d stretchH=%d smooth=%d aa=%d padding=%d,%d,%d,%d spacing=%d,%d outline=%d"+eol,
		face, f.Size, btoi(f.Bold), btoi(f.Italic), charset, btoi(f.Unicode),
		f.StretchH, btoi(f.Smooth), f.AA,
		f.Padding.Up, f.Padding.Right, f.Padding.Down, f.Padding.Left,
		f.Spacing.X, f.Spacing.Y, f.Outline)

	scaleW, scaleH := f.Scale()
	fmt.Fprintf(bw, "common lineHeight=%d base=%d scaleW=%d scaleH=%d pages=%d packed=%d alphaChnl=%d redChnl=%d greenChnl=%d blueChnl=%d"+eol,
		f.LineHeight, f.Base, scaleW, scaleH, len(f.Pages),
		packed, alphaChnl, redChnl, greenChnl, blueChnl)

	for _, p := range f.Pages {
		fmt.Fprintf(bw, "page id=%d file=\"%s\""+eol, p.ID, p.File)
		fmt.Fprintf(bw, "chars count=%d"+eol, len(p.Chars))
		for _, c := range p.Chars {
			fmt.Fprintf(bw, "char id=%d x=%d y=%d width=%d height=%d xoffset=%d yoffset=%d xadvance=%d page=%d chnl=%d"+eol,
				c.ID, c.X, c.Y, c.Width, c.Height, c.XOffset, c.YOffset, c.XAdvance, c.Page, c.Channel)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("descriptor: write: %w", err)
	}
	return nil
}

// WriteFile writes f to path. The descriptor is written to a temporary file
// in the same directory and renamed over path, so a failed write never leaves
// a partial descriptor behind.
//
// A new descriptor gets the permissions of os.Create (0666 before umask);
// an existing one keeps its mode.
func WriteFile(path string, f *Font) (err error) {
	tmp, err := createTemp(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return fmt.Errorf("descriptor: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if st, statErr := os.Stat(path); statErr == nil {
		if err = tmp.Chmod(st.Mode().Perm()); err != nil {
			return fmt.Errorf("descriptor: chmod %s: %w", tmp.Name(), err)
		}
	}
	if err = Write(tmp, f); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("descriptor: close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("descriptor: rename to %s: %w", path, err)
	}
	return nil
}

// createTemp is os.CreateTemp with the file mode of os.Create.
func createTemp(dir, base string) (*os.File, error) {
	for range 100 {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(uint64(rand.Uint32()), 10)+".tmp")
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666) //nolint:gosec // descriptors are shared build artifacts
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, &fs.PathError{Op: "createtemp", Path: filepath.Join(dir, "."+base+".*.tmp"), Err: fs.ErrExist}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
