package raster

import "errors"

// ErrInvalidPageSize is returned when a page has no pixels.
var ErrInvalidPageSize = errors.New("raster: page width and height must be positive")
