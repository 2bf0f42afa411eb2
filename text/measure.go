package text

import "fmt"

// markerGlyph is the reference character appended for caret measurement.
// It must be identical between the marked and lone measurement so its
// advance cancels exactly.
const markerGlyph = "|"

// Measure shapes content wrapped at maxWidthLogical and returns its
// logical width and height. Wrapping happens at maxWidthLogical*scale
// physical pixels for hinting fidelity; results are converted back.
// Height is the sum of every produced line's line height, including
// inter-line spacing, not a glyph bounding box. Empty content measures
// (0, 0) without consulting the provider.
func Measure(p Provider, content string, style Style, maxWidthLogical, scale float64) (width, height float64, err error) {
	if content == "" {
		return 0, 0, nil
	}
	if scale <= 0 {
		scale = 1
	}

	layout, err := p.BuildLayout(content, style, scale)
	if err != nil {
		return 0, 0, fmt.Errorf("text: measure: %w", err)
	}

	maxWidth := maxWidthLogical
	if maxWidth <= 0 {
		maxWidth = noWrapWidth
	}
	layout.BreakLines(maxWidth * scale)

	for m := range layout.Lines() {
		height += m.LineHeight
	}
	return layout.Width() / scale, height / scale, nil
}

// ByteOffsetToX returns the logical x position of the caret before the
// code point at the given byte offset of content. Offsets are expected to
// be pre-clamped to boundaries by the caller; out-of-range offsets are
// clamped here as a safety net, never reported as errors.
//
// Measuring content[:offset] alone collapses trailing whitespace in most
// shapers, so the caret position is derived with a marker: lay out
// content[:offset]+marker and the lone marker, both unwrapped, and
// subtract the widths. What remains is the true advance of the prefix.
func ByteOffsetToX(p Provider, content string, style Style, offset int, scale float64) (float64, error) {
	if offset <= 0 {
		return 0, nil
	}
	if offset > len(content) {
		offset = len(content)
	}
	if scale <= 0 {
		scale = 1
	}

	marked, err := unwrappedWidth(p, content[:offset]+markerGlyph, style, scale)
	if err != nil {
		return 0, fmt.Errorf("text: caret position at offset %d: %w", offset, err)
	}
	marker, err := unwrappedWidth(p, markerGlyph, style, scale)
	if err != nil {
		return 0, fmt.Errorf("text: caret position at offset %d: %w", offset, err)
	}

	x := (marked - marker) / scale
	if x < 0 {
		x = 0
	}
	return x, nil
}

// XToByteOffset hit-tests an unwrapped single-line layout of content at
// the logical x position and returns the resulting byte offset.
func XToByteOffset(p Provider, content string, style Style, xLogical, scale float64) (int, error) {
	if content == "" {
		return 0, nil
	}
	if scale <= 0 {
		scale = 1
	}

	layout, err := p.BuildLayout(content, style, scale)
	if err != nil {
		return 0, fmt.Errorf("text: hit test at x=%g: %w", xLogical, err)
	}
	layout.BreakLines(noWrapWidth * scale)
	return layout.HitTest(xLogical*scale, 0), nil
}

// unwrappedWidth lays out content on a single unwrapped line and returns
// its physical width.
func unwrappedWidth(p Provider, content string, style Style, scale float64) (float64, error) {
	layout, err := p.BuildLayout(content, style, scale)
	if err != nil {
		return 0, err
	}
	layout.BreakLines(noWrapWidth * scale)
	return layout.Width(), nil
}
