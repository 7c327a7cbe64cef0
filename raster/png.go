package raster

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// EncodePNG writes img to w as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	if err := png.Encode(bw, img); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return bw.Flush()
}

// SavePNG writes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	if err := EncodePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("raster: close %s: %w", path, err)
	}
	return nil
}
