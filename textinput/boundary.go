package textinput

import "unicode/utf8"

// PreviousBoundary returns the largest code point boundary strictly before
// offset, or 0 if offset is at or before the start of s.
// Offsets beyond len(s) are treated as len(s).
func PreviousBoundary(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset > len(s) {
		offset = len(s)
	}
	offset--
	for offset > 0 && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return offset
}

// NextBoundary returns the smallest code point boundary strictly after
// offset, or len(s) if offset is at or past the end of s.
func NextBoundary(s string, offset int) int {
	if offset >= len(s) {
		return len(s)
	}
	if offset < 0 {
		offset = 0
	}
	offset++
	for offset < len(s) && !utf8.RuneStart(s[offset]) {
		offset++
	}
	return offset
}

// ClampToBoundary clamps offset into [0, len(s)] and then decreases it until
// it lands on a code point boundary. Offsets already on a boundary are
// returned unchanged, so the function is idempotent.
func ClampToBoundary(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(s) {
		return len(s)
	}
	for offset > 0 && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return offset
}
