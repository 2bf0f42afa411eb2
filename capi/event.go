package capi

import (
	"encoding/binary"
	"math"

	"github.com/futurepaul/zello"
)

// Status is the C-visible result code of a boundary call.
type Status int32

// Status codes. These must match the C header exactly.
const (
	StatusOk  Status = 0
	StatusErr Status = 1
)

// EventCode identifies a text input event across the ABI.
// These must match the C header exactly.
type EventCode int32

const (
	CodeInsertChar    EventCode = 0
	CodeInsertText    EventCode = 1
	CodeBackspace     EventCode = 2
	CodeDelete        EventCode = 3
	CodeMoveCursor    EventCode = 4
	CodeSetCursor     EventCode = 5
	CodeSetText       EventCode = 6
	CodeSetPreedit    EventCode = 7
	CodeCommitPreedit EventCode = 8
	CodeClearPreedit  EventCode = 9
)

// Cursor movement directions for CodeMoveCursor's arg1.
const (
	MoveLeft  int64 = 0
	MoveRight int64 = 1
	MoveHome  int64 = 2
	MoveEnd   int64 = 3
)

// ApplyEvent decodes one boundary event and applies it to the engine.
// The payload convention per code:
//
//	CodeInsertChar:    arg1 = code point
//	CodeInsertText:    textBuf = NUL-terminated string
//	CodeMoveCursor:    arg1 = direction, arg2 != 0 extends the selection
//	CodeSetCursor:     arg1 = byte offset, arg2 != 0 extends
//	CodeSetText:       textBuf = NUL-terminated string
//	CodeSetPreedit:    textBuf = preedit text, arg1 = caret offset within it
//	CodeCommitPreedit: textBuf = final text
//
// changed reports whether the widget's content changed; unknown codes
// and directions return StatusErr without touching state.
func ApplyEvent(eng *zello.Engine, widgetID uint64, code EventCode, textBuf []byte, arg1, arg2 int64) (changed bool, status Status) {
	var ev zello.Event
	switch code {
	case CodeInsertChar:
		ev = zello.InsertCharEvent(rune(arg1))
	case CodeInsertText:
		ev = zello.InsertTextEvent(DecodeCString(textBuf))
	case CodeBackspace:
		ev = zello.BackspaceEvent()
	case CodeDelete:
		ev = zello.DeleteEvent()
	case CodeMoveCursor:
		dir, ok := direction(arg1)
		if !ok {
			return false, StatusErr
		}
		ev = zello.MoveCursorEvent(dir, arg2 != 0)
	case CodeSetCursor:
		ev = zello.SetCursorEvent(int(arg1), arg2 != 0)
	case CodeSetText:
		ev = zello.SetTextEvent(DecodeCString(textBuf))
	case CodeSetPreedit:
		ev = zello.SetPreeditEvent(DecodeCString(textBuf), int(arg1))
	case CodeCommitPreedit:
		ev = zello.CommitPreeditEvent(DecodeCString(textBuf))
	case CodeClearPreedit:
		ev = zello.ClearPreeditEvent()
	default:
		return false, StatusErr
	}
	return eng.ApplyEvent(widgetID, ev), StatusOk
}

func direction(arg int64) (zello.Direction, bool) {
	switch arg {
	case MoveLeft:
		return zello.DirLeft, true
	case MoveRight:
		return zello.DirRight, true
	case MoveHome:
		return zello.DirHome, true
	case MoveEnd:
		return zello.DirEnd, true
	}
	return 0, false
}

// ReadText copies the widget's content into out and returns the number
// of content bytes written.
func ReadText(eng *zello.Engine, widgetID uint64, out []byte) int {
	return EncodeCString(out, eng.Text(widgetID))
}

// ReadDisplayText copies the widget's display text (composition spliced
// in) into out.
func ReadDisplayText(eng *zello.Engine, widgetID uint64, out []byte) int {
	return EncodeCString(out, eng.DisplayText(widgetID))
}

// ReadCursor returns the widget's cursor byte offset.
func ReadCursor(eng *zello.Engine, widgetID uint64) int64 {
	return int64(eng.Cursor(widgetID))
}

// ReadSelection returns the widget's selection range. has is 0 when
// nothing is selected.
func ReadSelection(eng *zello.Engine, widgetID uint64) (start, end int64, has int32) {
	s, e, ok := eng.Selection(widgetID)
	if !ok {
		return 0, 0, 0
	}
	return int64(s), int64(e), 1
}

// ReadLastError copies the engine's most recent geometry failure into
// out, "" when none occurred.
func ReadLastError(eng *zello.Engine, out []byte) int {
	return EncodeCString(out, eng.LastError())
}

// Snapshot wire layout, little-endian:
//
//	u32 cursor | u32 selStart | u32 selEnd | u8 hasSelection | content C string
const snapshotHeaderSize = 4 + 4 + 4 + 1

// EncodeSnapshot serializes the widget's accessibility snapshot into out
// and returns the number of bytes written (header plus content,
// excluding the NUL). A buffer too small for the header returns
// (0, StatusErr); content longer than the remainder is truncated like
// any other outbound string.
func EncodeSnapshot(eng *zello.Engine, widgetID uint64, out []byte) (int, Status) {
	if len(out) < snapshotHeaderSize+1 {
		return 0, StatusErr
	}

	snap := eng.TextSnapshot(widgetID)
	binary.LittleEndian.PutUint32(out[0:], clampU32(snap.Cursor))
	binary.LittleEndian.PutUint32(out[4:], clampU32(snap.SelStart))
	binary.LittleEndian.PutUint32(out[8:], clampU32(snap.SelEnd))
	if snap.HasSelection {
		out[12] = 1
	} else {
		out[12] = 0
	}

	n := EncodeCString(out[snapshotHeaderSize:], snap.Content)
	return snapshotHeaderSize + n, StatusOk
}

func clampU32(v int) uint32 {
	if v < 0 {
		return 0
	}
	if uint64(v) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
