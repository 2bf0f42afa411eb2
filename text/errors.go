package text

import "errors"

var (
	// ErrEmptyFontData is returned when a font is registered with no bytes.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFont is returned when a layout is requested before any font has
	// been registered with the provider.
	ErrNoFont = errors.New("text: no font registered")
)
