package capi

import (
	"encoding/binary"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/futurepaul/zello"
	"github.com/futurepaul/zello/text"
)

// editEngine has no provider; editing never needs one.
func editEngine() *zello.Engine {
	return zello.NewEngine(nil)
}

// shapingEngine carries a real provider for geometry calls.
func shapingEngine(t *testing.T) *zello.Engine {
	t.Helper()
	p := text.NewGoTextProvider()
	if _, err := p.RegisterFont(goregular.TTF); err != nil {
		t.Fatalf("failed to register font: %v", err)
	}
	return zello.NewEngine(p)
}

func cstr(s string) []byte {
	return append([]byte(s), 0)
}

func TestApplyEvent_Typing(t *testing.T) {
	eng := editEngine()

	changed, status := ApplyEvent(eng, 1, CodeInsertChar, nil, 'H', 0)
	if status != StatusOk || !changed {
		t.Fatalf("insert = (%v, %v)", changed, status)
	}
	ApplyEvent(eng, 1, CodeInsertText, cstr("i!"), 0, 0)
	if got := eng.Text(1); got != "Hi!" {
		t.Errorf("Text = %q, want %q", got, "Hi!")
	}

	changed, status = ApplyEvent(eng, 1, CodeBackspace, nil, 0, 0)
	if status != StatusOk || !changed {
		t.Fatalf("backspace = (%v, %v)", changed, status)
	}
	if got := eng.Text(1); got != "Hi" {
		t.Errorf("Text = %q, want %q", got, "Hi")
	}
}

func TestApplyEvent_SelectionPath(t *testing.T) {
	eng := editEngine()
	ApplyEvent(eng, 1, CodeSetText, cstr("Hello"), 0, 0)
	ApplyEvent(eng, 1, CodeSetCursor, nil, 1, 0)
	ApplyEvent(eng, 1, CodeMoveCursor, nil, MoveRight, 1)
	ApplyEvent(eng, 1, CodeMoveCursor, nil, MoveRight, 1)

	start, end, has := ReadSelection(eng, 1)
	if has != 1 || start != 1 || end != 3 {
		t.Errorf("selection = (%d, %d, %d), want (1, 3, 1)", start, end, has)
	}

	// Deleting the selection replaces it.
	changed, _ := ApplyEvent(eng, 1, CodeDelete, nil, 0, 0)
	if !changed || eng.Text(1) != "Hlo" {
		t.Errorf("delete over selection gave %q", eng.Text(1))
	}
}

func TestApplyEvent_Preedit(t *testing.T) {
	eng := editEngine()
	ApplyEvent(eng, 1, CodeSetText, cstr("X"), 0, 0)
	ApplyEvent(eng, 1, CodeSetPreedit, cstr("ab"), 1, 0)

	out := make([]byte, 16)
	n := ReadDisplayText(eng, 1, out)
	if string(out[:n]) != "Xab" {
		t.Errorf("display = %q, want %q", out[:n], "Xab")
	}

	changed, _ := ApplyEvent(eng, 1, CodeCommitPreedit, cstr("ab"), 0, 0)
	if !changed || eng.Text(1) != "Xab" {
		t.Errorf("commit gave %q", eng.Text(1))
	}
	if ReadCursor(eng, 1) != 3 {
		t.Errorf("cursor = %d, want 3", ReadCursor(eng, 1))
	}
}

func TestApplyEvent_MalformedPayload(t *testing.T) {
	eng := editEngine()
	ApplyEvent(eng, 1, CodeSetText, cstr("keep"), 0, 0)

	// Malformed UTF-8 decodes as empty: insert becomes a selection-free
	// no-op payload, content is untouched.
	ApplyEvent(eng, 1, CodeInsertText, []byte{0xff, 0xfe, 0}, 0, 0)
	if got := eng.Text(1); got != "keep" {
		t.Errorf("Text = %q, want %q", got, "keep")
	}
}

func TestApplyEvent_BadCodes(t *testing.T) {
	eng := editEngine()

	if _, status := ApplyEvent(eng, 1, EventCode(99), nil, 0, 0); status != StatusErr {
		t.Error("unknown event code should fail")
	}
	if _, status := ApplyEvent(eng, 1, CodeMoveCursor, nil, 42, 0); status != StatusErr {
		t.Error("unknown direction should fail")
	}
}

func TestReadText_Truncation(t *testing.T) {
	eng := editEngine()
	ApplyEvent(eng, 1, CodeSetText, cstr("日本語"), 0, 0)

	out := make([]byte, 5) // room for one three-byte character + NUL
	n := ReadText(eng, 1, out)
	if string(out[:n]) != "日" || out[n] != 0 {
		t.Errorf("truncated read = %v", out)
	}
}

func TestEncodeSnapshot(t *testing.T) {
	eng := editEngine()
	ApplyEvent(eng, 1, CodeSetText, cstr("Hello"), 0, 0)
	ApplyEvent(eng, 1, CodeSetCursor, nil, 1, 0)
	ApplyEvent(eng, 1, CodeSetCursor, nil, 4, 1)

	out := make([]byte, 64)
	n, status := EncodeSnapshot(eng, 1, out)
	if status != StatusOk {
		t.Fatalf("status = %v", status)
	}

	cursor := binary.LittleEndian.Uint32(out[0:])
	selStart := binary.LittleEndian.Uint32(out[4:])
	selEnd := binary.LittleEndian.Uint32(out[8:])
	if cursor != 4 || selStart != 1 || selEnd != 4 || out[12] != 1 {
		t.Errorf("header = cursor %d sel %d..%d has %d", cursor, selStart, selEnd, out[12])
	}
	if got := string(out[13:n]); got != "Hello" {
		t.Errorf("content = %q", got)
	}

	if _, status := EncodeSnapshot(eng, 1, make([]byte, 8)); status != StatusErr {
		t.Error("undersized buffer should fail")
	}
}

func TestGeometry_Boundary(t *testing.T) {
	eng := shapingEngine(t)
	ApplyEvent(eng, 1, CodeSetText, cstr("Hello"), 0, 0)

	var w, h float64
	if status := MeasureText(eng, cstr("Hello"), 16, 0, 1, &w, &h); status != StatusOk {
		t.Fatalf("MeasureText status = %v", status)
	}
	if w <= 0 || h <= 0 {
		t.Errorf("measure = (%g, %g), want positive", w, h)
	}

	var x float64
	if status := CaretX(eng, 1, 16, 1, &x); status != StatusOk {
		t.Fatalf("CaretX status = %v", status)
	}
	if x <= 0 {
		t.Errorf("caret at end of %q should be positive, got %g", "Hello", x)
	}

	var off int64
	if status := HitTest(eng, cstr("Hello"), 16, x, 1, &off); status != StatusOk {
		t.Fatalf("HitTest status = %v", status)
	}
	if off != 5 {
		t.Errorf("hit test at caret x = %d, want 5", off)
	}

	ApplyEvent(eng, 1, CodeSetCursor, nil, 1, 0)
	ApplyEvent(eng, 1, CodeSetCursor, nil, 3, 1)
	var x0, x1 float64
	var has int32
	if status := SelectionBounds(eng, 1, 16, 1, &x0, &x1, &has); status != StatusOk {
		t.Fatalf("SelectionBounds status = %v", status)
	}
	if has != 1 || x1 <= x0 {
		t.Errorf("bounds = (%g, %g, %d)", x0, x1, has)
	}
}

func TestGeometry_NoProvider(t *testing.T) {
	eng := editEngine()

	var w, h float64
	if status := MeasureText(eng, cstr("x"), 16, 0, 1, &w, &h); status != StatusErr {
		t.Fatal("no provider should fail")
	}

	out := make([]byte, 128)
	if n := ReadLastError(eng, out); n == 0 {
		t.Error("ReadLastError should carry the failure message")
	}
}
