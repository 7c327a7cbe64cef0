package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned when a face is requested at a size <= 0.
	ErrInvalidSize = errors.New("text: font size must be positive")

	// ErrFontNotFound is returned when a font name matches neither a file
	// nor an installed family.
	ErrFontNotFound = errors.New("text: font not found")

	// ErrUnknownBackend is returned for an unregistered metrics backend.
	ErrUnknownBackend = errors.New("text: unknown metrics backend")
)

// CollectionIndexError is returned when a font collection has no font at
// the requested index.
type CollectionIndexError struct {
	Index int
	Count int
}

func (e *CollectionIndexError) Error() string {
	return "text: collection index out of range"
}
