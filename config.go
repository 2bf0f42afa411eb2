package zello

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TextStyle holds the host-configurable text defaults an engine applies
// to every geometry query. Font size is per query (widgets differ);
// stack, spacing, and caret width are engine-wide.
type TextStyle struct {
	// FontStack is the comma-separated family request passed to the
	// provider, most preferred first.
	FontStack string `toml:"font_stack"`

	// FontSize is the default font size in logical pixels, used by hosts
	// that do not size per widget.
	FontSize float64 `toml:"font_size"`

	// LineSpacing is a multiplier for line height. Zero means 1.0.
	LineSpacing float64 `toml:"line_spacing"`

	// CaretWidth is the caret thickness in logical pixels.
	CaretWidth float64 `toml:"caret_width"`
}

// DefaultTextStyle returns the built-in defaults.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontStack:   "system-ui",
		FontSize:    16,
		LineSpacing: 1.0,
		CaretWidth:  1.0,
	}
}

// LoadStyles parses a TOML document into a TextStyle. Fields absent from
// the document keep their defaults; malformed TOML returns a wrapped
// error and the untouched defaults.
//
// Example document:
//
//	font_stack = "Inter, system-ui"
//	font_size = 14
//	line_spacing = 1.2
func LoadStyles(data []byte) (TextStyle, error) {
	style := DefaultTextStyle()
	if err := toml.Unmarshal(data, &style); err != nil {
		return DefaultTextStyle(), fmt.Errorf("zello: parse style config: %w", err)
	}
	return style, nil
}

// LoadStylesFromFile reads and parses a TOML style file.
func LoadStylesFromFile(path string) (TextStyle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultTextStyle(), fmt.Errorf("zello: read style config: %w", err)
	}
	return LoadStyles(data)
}
