package zello

import "errors"

// Package-level sentinel errors.
var (
	// ErrNoProvider is returned by geometry queries when the engine was
	// built without a shaping provider.
	ErrNoProvider = errors.New("zello: no shaping provider configured")

	// ErrNoGlyphSource is returned by RenderText when the provider's
	// layouts cannot emit positioned glyphs.
	ErrNoGlyphSource = errors.New("zello: provider layout does not expose glyph runs")
)
