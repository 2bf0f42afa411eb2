package zello

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/futurepaul/zello/text"
)

// recordingSink captures everything the engine emits.
type recordingSink struct {
	runs       []GlyphRun
	carets     []CaretGeometry
	selections []SelectionRect
}

func (s *recordingSink) DrawGlyphRun(run GlyphRun)                     { s.runs = append(s.runs, run) }
func (s *recordingSink) DrawCaret(c CaretGeometry, _ gputypes.Color)   { s.carets = append(s.carets, c) }
func (s *recordingSink) DrawSelection(r SelectionRect, _ gputypes.Color) {
	s.selections = append(s.selections, r)
}

var textColor = gputypes.Color{R: 0, G: 0, B: 0, A: 1}

func TestEngine_RenderText(t *testing.T) {
	eng, _ := newTestEngine()
	eng.ApplyEvent(1, SetTextEvent("Hi"))

	sink := &recordingSink{}
	if err := eng.RenderText(1, 16, 1, sink, textColor); err != nil {
		t.Fatalf("RenderText: %v", err)
	}

	if len(sink.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(sink.runs))
	}
	run := sink.runs[0]
	if len(run.Glyphs) != 2 {
		t.Errorf("glyphs = %d, want 2", len(run.Glyphs))
	}
	if run.Color != textColor {
		t.Errorf("run color = %+v, want %+v", run.Color, textColor)
	}

	if len(sink.carets) != 1 {
		t.Fatalf("carets = %d, want 1", len(sink.carets))
	}
	caret := sink.carets[0]
	if caret.X != 2*gridAdvance {
		t.Errorf("caret x = %g, want %g", caret.X, 2*gridAdvance)
	}
	if caret.Height != gridLineHeight {
		t.Errorf("caret height = %g, want %g", caret.Height, gridLineHeight)
	}

	if len(sink.selections) != 0 {
		t.Error("no selection should be emitted without one")
	}
}

func TestEngine_RenderTextSelection(t *testing.T) {
	eng, _ := newTestEngine()
	eng.ApplyEvent(1, SetTextEvent("Hello"))
	eng.StartSelection(1, 1)
	eng.ApplyEvent(1, SetCursorEvent(3, true))

	sink := &recordingSink{}
	if err := eng.RenderText(1, 16, 1, sink, textColor); err != nil {
		t.Fatalf("RenderText: %v", err)
	}

	if len(sink.selections) != 1 {
		t.Fatalf("selections = %d, want 1", len(sink.selections))
	}
	sel := sink.selections[0]
	if sel.X0 != 1*gridAdvance || sel.X1 != 3*gridAdvance {
		t.Errorf("selection = (%g, %g), want (%g, %g)", sel.X0, sel.X1, 1*gridAdvance, 3*gridAdvance)
	}
}

func TestEngine_RenderTextUntouched(t *testing.T) {
	eng, _ := newTestEngine()
	sink := &recordingSink{}
	if err := eng.RenderText(9, 16, 1, sink, textColor); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if len(sink.runs)+len(sink.carets)+len(sink.selections) != 0 {
		t.Error("untouched widget should emit nothing")
	}
}

// flatProvider builds layouts without a glyph source.
type flatProvider struct{ inner gridProvider }

type flatLayout struct{ text.Layout }

func (p *flatProvider) BuildLayout(content string, style text.Style, scale float64) (text.Layout, error) {
	l, err := p.inner.BuildLayout(content, style, scale)
	if err != nil {
		return nil, err
	}
	return flatLayout{l}, nil
}

func TestEngine_RenderTextNoGlyphSource(t *testing.T) {
	eng := NewEngine(&flatProvider{})
	eng.ApplyEvent(1, SetTextEvent("Hi"))

	err := eng.RenderText(1, 16, 1, &recordingSink{}, textColor)
	if !errors.Is(err, ErrNoGlyphSource) {
		t.Errorf("error = %v, want ErrNoGlyphSource", err)
	}
}
