package zello

// EventKind identifies a text input event.
type EventKind uint8

// Event kinds understood by Engine.ApplyEvent.
const (
	// EventInsertChar inserts a single code point at the cursor.
	EventInsertChar EventKind = iota

	// EventInsertText inserts a string at the cursor.
	EventInsertText

	// EventBackspace deletes the selection or the code point before the
	// cursor.
	EventBackspace

	// EventDelete deletes the selection or the code point after the
	// cursor.
	EventDelete

	// EventMoveCursor moves the cursor one step in a direction,
	// optionally extending the selection.
	EventMoveCursor

	// EventSetCursor places the cursor at a byte offset, optionally
	// extending the selection.
	EventSetCursor

	// EventSetText replaces the whole content.
	EventSetText

	// EventSetPreedit replaces the IME composition overlay.
	EventSetPreedit

	// EventCommitPreedit clears the overlay and inserts its final text.
	EventCommitPreedit

	// EventClearPreedit drops the overlay without touching content.
	EventClearPreedit
)

// Direction is a cursor movement direction.
type Direction uint8

// Cursor movement directions.
const (
	DirLeft Direction = iota
	DirRight
	DirHome
	DirEnd
)

// Event is one discrete text input event. Only the fields relevant to
// Kind are read; construct events with the helper functions below rather
// than filling the struct by hand.
type Event struct {
	Kind EventKind

	// Rune is the inserted code point (EventInsertChar).
	Rune rune

	// Text is the string payload (EventInsertText, EventSetText,
	// EventSetPreedit, EventCommitPreedit).
	Text string

	// Offset is the target byte offset (EventSetCursor).
	Offset int

	// Direction is the movement direction (EventMoveCursor).
	Direction Direction

	// Extend grows the selection from its anchor instead of collapsing
	// it (EventMoveCursor, EventSetCursor).
	Extend bool

	// CursorOffset is the caret position within the preedit text
	// (EventSetPreedit).
	CursorOffset int
}

// InsertCharEvent inserts one code point at the cursor.
func InsertCharEvent(r rune) Event {
	return Event{Kind: EventInsertChar, Rune: r}
}

// InsertTextEvent inserts a string at the cursor.
func InsertTextEvent(s string) Event {
	return Event{Kind: EventInsertText, Text: s}
}

// BackspaceEvent deletes backward.
func BackspaceEvent() Event {
	return Event{Kind: EventBackspace}
}

// DeleteEvent deletes forward.
func DeleteEvent() Event {
	return Event{Kind: EventDelete}
}

// MoveCursorEvent moves the cursor one step; with extend it grows the
// selection toward the new position.
func MoveCursorEvent(dir Direction, extend bool) Event {
	return Event{Kind: EventMoveCursor, Direction: dir, Extend: extend}
}

// SetCursorEvent places the cursor at a byte offset; with extend it grows
// the selection toward the new position, otherwise selection and anchor
// are cleared.
func SetCursorEvent(offset int, extend bool) Event {
	return Event{Kind: EventSetCursor, Offset: offset, Extend: extend}
}

// SetTextEvent replaces the whole content and moves the cursor to the
// end.
func SetTextEvent(s string) Event {
	return Event{Kind: EventSetText, Text: s}
}

// SetPreeditEvent replaces the IME composition overlay. An empty text
// clears the overlay.
func SetPreeditEvent(text string, cursorOffset int) Event {
	return Event{Kind: EventSetPreedit, Text: text, CursorOffset: cursorOffset}
}

// CommitPreeditEvent clears the overlay and inserts the final text into
// the content.
func CommitPreeditEvent(text string) Event {
	return Event{Kind: EventCommitPreedit, Text: text}
}

// ClearPreeditEvent drops the overlay without touching content.
func ClearPreeditEvent() Event {
	return Event{Kind: EventClearPreedit}
}
