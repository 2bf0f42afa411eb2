package textinput

import (
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into a state's content.
// A Span held by a State always satisfies Start < End with both ends on
// code point boundaries.
type Span struct {
	Start int
	End   int
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Composition is an in-progress IME preedit overlay. The preedit text is
// displayed spliced at the cursor but is never part of the committed
// content until CommitPreedit.
type Composition struct {
	// Text is the provisional preedit text.
	Text string

	// CursorOffset is the caret position within Text, in bytes.
	CursorOffset int
}

// State holds the editable text of a single widget: committed content,
// cursor, selection with its drag anchor, and the IME composition overlay.
//
// The zero value is an empty, ready-to-use state. States are created
// lazily by a Manager on first reference and never explicitly destroyed.
type State struct {
	content string
	cursor  int

	selection    Span
	hasSelection bool

	// anchor is the fixed end of an in-progress selection drag. It is
	// sticky: it survives repeated ExtendSelectionTo calls and resets only
	// via StartSelectionAt or a non-extending SetCursorExtend.
	anchor    int
	hasAnchor bool

	preedit    Composition
	hasPreedit bool
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// Text returns the committed content.
func (s *State) Text() string {
	return s.content
}

// Cursor returns the cursor byte offset. The offset is always a code point
// boundary of the content, in [0, len].
func (s *State) Cursor() int {
	return s.cursor
}

// Selection returns the current selection span, if any.
func (s *State) Selection() (Span, bool) {
	return s.selection, s.hasSelection
}

// SelectionText returns the selected slice of the content, if any.
func (s *State) SelectionText() (string, bool) {
	if !s.hasSelection {
		return "", false
	}
	return s.content[s.selection.Start:s.selection.End], true
}

// deleteSelection removes the selected range, moves the cursor to the
// selection start and clears the selection. Reports whether a selection
// was present.
func (s *State) deleteSelection() bool {
	if !s.hasSelection {
		return false
	}
	sel := s.selection
	s.content = s.content[:sel.Start] + s.content[sel.End:]
	s.cursor = sel.Start
	s.hasSelection = false
	return true
}

// InsertRune inserts a single code point at the cursor, replacing the
// selection if one is present. Reports whether the content changed
// (always true).
func (s *State) InsertRune(r rune) bool {
	s.deleteSelection()
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	s.content = s.content[:s.cursor] + string(buf[:n]) + s.content[s.cursor:]
	s.cursor += n
	return true
}

// InsertText inserts a string at the cursor, replacing the selection if one
// is present. Reports whether the content changed.
func (s *State) InsertText(text string) bool {
	changed := s.deleteSelection()
	if text == "" {
		return changed
	}
	s.content = s.content[:s.cursor] + text + s.content[s.cursor:]
	s.cursor += len(text)
	return true
}

// Backspace deletes the selection if present, otherwise the code point
// before the cursor. Reports whether the content changed; a backspace at
// the start of the content with no selection is a no-op.
func (s *State) Backspace() bool {
	if s.deleteSelection() {
		return true
	}
	if s.cursor == 0 {
		return false
	}
	prev := PreviousBoundary(s.content, s.cursor)
	s.content = s.content[:prev] + s.content[s.cursor:]
	s.cursor = prev
	return true
}

// Delete deletes the selection if present, otherwise the code point after
// the cursor. Reports whether the content changed; a delete at the end of
// the content with no selection is a no-op.
func (s *State) Delete() bool {
	if s.deleteSelection() {
		return true
	}
	if s.cursor >= len(s.content) {
		return false
	}
	next := NextBoundary(s.content, s.cursor)
	s.content = s.content[:s.cursor] + s.content[next:]
	return true
}

// MoveCursorLeft moves the cursor to the previous code point boundary.
// The selection is left untouched.
func (s *State) MoveCursorLeft() {
	if s.cursor > 0 {
		s.cursor = PreviousBoundary(s.content, s.cursor)
	}
}

// MoveCursorRight moves the cursor to the next code point boundary.
// The selection is left untouched.
func (s *State) MoveCursorRight() {
	if s.cursor < len(s.content) {
		s.cursor = NextBoundary(s.content, s.cursor)
	}
}

// MoveCursorHome moves the cursor to the start of the content.
func (s *State) MoveCursorHome() {
	s.cursor = 0
}

// MoveCursorEnd moves the cursor to the end of the content.
func (s *State) MoveCursorEnd() {
	s.cursor = len(s.content)
}

// SetCursor places the cursor at pos, clamped into the content and onto a
// code point boundary. It does not touch the selection or the anchor.
func (s *State) SetCursor(pos int) {
	s.cursor = ClampToBoundary(s.content, pos)
}

// SetCursorExtend places the cursor at pos. With extend it behaves like
// ExtendSelectionTo; without it the cursor moves and both the selection and
// the anchor are cleared.
func (s *State) SetCursorExtend(pos int, extend bool) {
	if extend {
		s.ExtendSelectionTo(pos)
		return
	}
	s.cursor = ClampToBoundary(s.content, pos)
	s.hasSelection = false
	s.hasAnchor = false
}

// SetText replaces the whole content, moves the cursor to the end and
// clears the selection and preedit-independent anchor state. Reports that
// the content changed.
func (s *State) SetText(text string) bool {
	s.content = text
	s.cursor = len(text)
	s.hasSelection = false
	s.hasAnchor = false
	return true
}

// StartSelectionAt marks the fixed end of a selection drag: cursor and
// anchor move to pos and any existing selection is cleared.
func (s *State) StartSelectionAt(pos int) {
	pos = ClampToBoundary(s.content, pos)
	s.cursor = pos
	s.anchor = pos
	s.hasAnchor = true
	s.hasSelection = false
}

// ExtendSelectionTo extends the selection from the anchor to pos. If no
// drag is in progress the current cursor becomes the anchor. A selection
// collapsed to a single point never exists: anchor == pos clears it.
func (s *State) ExtendSelectionTo(pos int) {
	pos = ClampToBoundary(s.content, pos)

	anchor := s.cursor
	if s.hasAnchor {
		anchor = s.anchor
	}

	start, end := anchor, pos
	if start > end {
		start, end = end, start
	}
	if start < end {
		s.selection = Span{Start: start, End: end}
		s.hasSelection = true
	} else {
		s.hasSelection = false
	}

	s.cursor = pos
	s.anchor = anchor
	s.hasAnchor = true
}

// ClearSelection drops the selection without moving the cursor.
func (s *State) ClearSelection() {
	s.hasSelection = false
}

// SetPreedit replaces the IME composition overlay. An empty preedit clears
// the overlay instead of storing an empty-but-present composition.
// cursorOffset is clamped into the preedit text.
func (s *State) SetPreedit(text string, cursorOffset int) {
	if text == "" {
		s.hasPreedit = false
		s.preedit = Composition{}
		return
	}
	s.preedit = Composition{
		Text:         text,
		CursorOffset: ClampToBoundary(text, cursorOffset),
	}
	s.hasPreedit = true
}

// Preedit returns the active IME composition, if any.
func (s *State) Preedit() (Composition, bool) {
	return s.preedit, s.hasPreedit
}

// CommitPreedit clears the composition overlay and inserts text into the
// committed content at the cursor. The overlay text itself never reaches
// the content; IMEs pass the final text explicitly. Reports whether the
// content changed.
func (s *State) CommitPreedit(text string) bool {
	s.hasPreedit = false
	s.preedit = Composition{}
	return s.InsertText(text)
}

// ClearPreedit drops the composition overlay without touching the content.
func (s *State) ClearPreedit() {
	s.hasPreedit = false
	s.preedit = Composition{}
}

// DisplayText returns the string a renderer should shape: the committed
// content with the preedit overlay spliced in at the cursor. Without an
// active composition it is the content itself.
func (s *State) DisplayText() string {
	if !s.hasPreedit {
		return s.content
	}
	return s.content[:s.cursor] + s.preedit.Text + s.content[s.cursor:]
}

// DisplayCursor returns the caret byte offset within DisplayText: the
// cursor plus the preedit-internal caret when a composition is active.
func (s *State) DisplayCursor() int {
	if !s.hasPreedit {
		return s.cursor
	}
	return s.cursor + s.preedit.CursorOffset
}
