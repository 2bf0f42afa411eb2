// Package textinput implements the editable text state behind interactive
// text widgets: a per-widget buffer with cursor, selection and IME
// composition, plus the UTF-8 boundary utilities the edit operations rely on.
//
// All offsets are byte offsets into the UTF-8 content and are kept on
// code point boundaries at all times. Boundaries are code point boundaries,
// not grapheme cluster boundaries: a composed emoji or combining-mark
// sequence is removed one code point per Backspace.
//
// States are plain data with no internal locking. The owning engine
// serializes access (one exclusive lock around every public engine
// operation), so no per-widget synchronization is needed here.
package textinput
