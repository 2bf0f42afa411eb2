package zello

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/futurepaul/zello/text"
)

// Glyph is one positioned glyph handed to the renderer, in physical
// pixels relative to the run origin. Y is relative to the baseline.
type Glyph struct {
	ID      uint32
	X, Y    float64
	Advance float64
}

// GlyphRun is a line's worth of positioned glyphs sharing one font and
// color.
type GlyphRun struct {
	// FontID identifies the provider-registered font.
	FontID int

	// Size is the shaped font size in physical pixels.
	Size float64

	// Baseline is the run's baseline Y position within the layout,
	// physical pixels.
	Baseline float64

	// Color is the fill color for every glyph in the run.
	Color gputypes.Color

	Glyphs []Glyph
}

// CaretGeometry is the caret rectangle in logical pixels.
type CaretGeometry struct {
	X      float64
	Top    float64
	Height float64
	Width  float64
}

// SelectionRect is one selection highlight rectangle in logical pixels.
type SelectionRect struct {
	X0, X1 float64
	Top    float64
	Height float64
}

// SceneSink is the rendering collaborator. The engine produces glyph and
// caret/selection geometry; the sink draws it. Engines never draw.
type SceneSink interface {
	DrawGlyphRun(run GlyphRun)
	DrawCaret(caret CaretGeometry, color gputypes.Color)
	DrawSelection(rect SelectionRect, color gputypes.Color)
}

// RenderText shapes the widget's display text (composition included) and
// emits glyph runs, the selection highlight, and the caret to the sink,
// in paint order. The provider's layouts must expose positioned glyphs.
func (e *Engine) RenderText(widgetID uint64, fontSize, scale float64, sink SceneSink, color gputypes.Color) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.provider == nil {
		return e.fail(ErrNoProvider)
	}

	st, ok := e.inputs.Get(widgetID)
	if !ok {
		return nil
	}
	content := st.DisplayText()
	style := e.textStyle(fontSize)

	layout, err := e.provider.BuildLayout(content, style, scale)
	if err != nil {
		return e.fail(fmt.Errorf("zello: render widget %d: %w", widgetID, err))
	}
	source, ok := layout.(text.GlyphSource)
	if !ok {
		return e.fail(ErrNoGlyphSource)
	}

	lineHeight := 0.0
	for m := range layout.Lines() {
		lineHeight = m.LineHeight / scale
		break
	}

	// Selection under the glyphs, caret on top.
	if span, has := st.Selection(); has {
		x0, err := e.caretX(content, span.Start, fontSize, scale)
		if err != nil {
			return err
		}
		x1, err := e.caretX(content, span.End, fontSize, scale)
		if err != nil {
			return err
		}
		sink.DrawSelection(SelectionRect{X0: x0, X1: x1, Height: lineHeight}, selectionColor)
	}

	for _, run := range source.GlyphRuns() {
		out := GlyphRun{
			FontID:   run.FontID,
			Size:     run.Size,
			Baseline: run.Baseline,
			Color:    color,
			Glyphs:   make([]Glyph, len(run.Glyphs)),
		}
		for i, g := range run.Glyphs {
			out.Glyphs[i] = Glyph{ID: g.ID, X: g.X, Y: g.Y, Advance: g.Advance}
		}
		sink.DrawGlyphRun(out)
	}

	caretX, err := e.caretX(content, st.DisplayCursor(), fontSize, scale)
	if err != nil {
		return err
	}
	sink.DrawCaret(CaretGeometry{X: caretX, Height: lineHeight, Width: e.style.CaretWidth}, color)
	return nil
}

// selectionColor is the default selection highlight.
var selectionColor = gputypes.Color{R: 0.3, G: 0.5, B: 0.9, A: 0.35}
