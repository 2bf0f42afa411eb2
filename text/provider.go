package text

import "iter"

// Style describes a layout request. Sizes are logical pixels; providers
// receive the device scale separately and shape at FontSize*scale.
type Style struct {
	// FontSize is the font size in logical pixels.
	FontSize float64

	// FontStack is a comma-separated family request, most preferred first
	// (e.g. "Inter, system-ui"). Providers resolve it against their
	// registered fonts; an unmatched stack falls back to the first
	// registered font. Full font-fallback policy is the host's concern.
	FontStack string

	// LineSpacing is a multiplier for line height. Zero means 1.0.
	LineSpacing float64
}

// lineSpacing returns the effective line spacing multiplier.
func (s Style) lineSpacing() float64 {
	if s.LineSpacing <= 0 {
		return 1.0
	}
	return s.LineSpacing
}

// LineMetrics describes one produced line of a broken layout.
// All values are physical pixels.
type LineMetrics struct {
	// Width is the advance width of the line.
	Width float64

	// LineHeight is the full vertical extent the line occupies, including
	// the font's recommended inter-line gap. Summing LineHeight over all
	// lines gives the layout height; it is not a glyph bounding box.
	LineHeight float64

	// Ascent and Descent are the line's extent above and below the
	// baseline (both positive).
	Ascent  float64
	Descent float64
}

// Layout is a line-broken text layout produced by a Provider.
// All coordinates are physical pixels. A Layout is only used by the
// goroutine that built it.
type Layout interface {
	// BreakLines re-breaks the layout at the given maximum line width in
	// physical pixels. Non-positive widths disable wrapping.
	BreakLines(maxWidthPhysical float64)

	// Width returns the widest line's advance width.
	Width() float64

	// LineCount returns the number of produced lines.
	LineCount() int

	// Lines iterates over the produced lines in order.
	Lines() iter.Seq[LineMetrics]

	// HitTest maps a physical-pixel point to the byte offset of the
	// nearest glyph cluster boundary in the source text. Points past the
	// end of a line resolve to the line's end offset; empty layouts
	// resolve to 0.
	HitTest(xPhysical, yPhysical float64) int
}

// Provider is the shaping/layout capability the engine consumes. It is
// borrowed per call and never stored inside widget state.
//
// Implementations must be safe for concurrent use; the returned Layout
// need not be.
type Provider interface {
	// BuildLayout shapes content at style.FontSize*scale physical pixels.
	// The layout starts unwrapped; call Layout.BreakLines to wrap.
	// Empty content yields a layout with zero lines, not an error.
	BuildLayout(content string, style Style, scale float64) (Layout, error)
}

// PositionedGlyph is a single glyph positioned for rendering,
// in physical pixels relative to the run origin.
type PositionedGlyph struct {
	// ID is the glyph index within the font.
	ID uint32

	// X, Y position the glyph relative to the line origin; Y is relative
	// to the baseline.
	X, Y float64

	// Advance is the horizontal advance of the glyph.
	Advance float64
}

// GlyphRun is a line's worth of positioned glyphs sharing one font,
// handed to the rendering collaborator.
type GlyphRun struct {
	// FontID identifies the provider-registered font.
	FontID int

	// Size is the shaped font size in physical pixels.
	Size float64

	// Baseline is the run's baseline Y position within the layout.
	Baseline float64

	// Glyphs are the positioned glyphs of the run.
	Glyphs []PositionedGlyph
}

// GlyphSource is implemented by layouts that can emit their positioned
// glyphs for rendering. Measurement-only providers (and test fakes) are
// not required to implement it.
type GlyphSource interface {
	// GlyphRuns returns one run per line, in line order.
	GlyphRuns() []GlyphRun
}
