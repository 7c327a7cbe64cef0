package bmfont

import (
	"errors"
	"strconv"
)

// ErrNoPages is returned when a configuration requests no pages.
var ErrNoPages = errors.New("bmfont: no pages to generate")

// PageError reports the page whose rasterization failed a run.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return "bmfont: page " + strconv.Itoa(e.Page) + ": " + e.Err.Error()
}

func (e *PageError) Unwrap() error {
	return e.Err
}
