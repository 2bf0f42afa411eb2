package zello

import (
	"math"
	"sync"

	"github.com/futurepaul/zello/text"
	"github.com/futurepaul/zello/text/cache"
	"github.com/futurepaul/zello/textinput"
)

// Engine is the shared text backend instance a host drives through the
// C-ABI surface. It owns every widget's input state and the measurement
// cache; the shaping provider and device scale are injected per engine
// and per call, so multiple engines coexist (and are trivially testable).
//
// One exclusive mutex guards the whole engine: every public operation
// holds it for its full duration and performs no I/O or blocking while
// holding it. Per-widget states are plain data under that lock.
type Engine struct {
	mu       sync.Mutex
	inputs   *textinput.Manager
	provider text.Provider
	cache    *cache.MeasureCache
	style    TextStyle
	images   ImageCache
	lastErr  string
}

// EngineOption configures an Engine during creation.
type EngineOption func(*Engine)

// WithTextStyle overrides the default text style (font stack, line
// spacing, caret width) used by geometry queries.
func WithTextStyle(style TextStyle) EngineOption {
	return func(e *Engine) {
		e.style = style
	}
}

// WithMeasureCache sets a custom measurement cache, e.g. a smaller one
// for memory-constrained hosts.
func WithMeasureCache(c *cache.MeasureCache) EngineOption {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithImageCache attaches the host's image cache collaborator so image
// handles can be routed through the engine surface.
func WithImageCache(images ImageCache) EngineOption {
	return func(e *Engine) {
		e.images = images
	}
}

// NewEngine creates an engine around the given shaping provider. A nil
// provider is allowed; editing works fully, and geometry queries return
// ErrNoProvider.
func NewEngine(provider text.Provider, opts ...EngineOption) *Engine {
	e := &Engine{
		inputs:   textinput.NewManager(),
		provider: provider,
		style:    DefaultTextStyle(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = cache.DefaultMeasureCache()
	}
	return e
}

// ApplyEvent applies one input event to the widget's state, creating the
// state on first use. It reports whether the widget's content changed;
// pure cursor and selection movement reports false.
func (e *Engine) ApplyEvent(widgetID uint64, ev Event) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.inputs.GetOrCreate(widgetID)
	switch ev.Kind {
	case EventInsertChar:
		return st.InsertRune(ev.Rune)
	case EventInsertText:
		return st.InsertText(ev.Text)
	case EventBackspace:
		return st.Backspace()
	case EventDelete:
		return st.Delete()
	case EventMoveCursor:
		e.moveCursor(st, ev.Direction, ev.Extend)
		return false
	case EventSetCursor:
		st.SetCursorExtend(ev.Offset, ev.Extend)
		return false
	case EventSetText:
		return st.SetText(ev.Text)
	case EventSetPreedit:
		st.SetPreedit(ev.Text, ev.CursorOffset)
		return false
	case EventCommitPreedit:
		return st.CommitPreedit(ev.Text)
	case EventClearPreedit:
		st.ClearPreedit()
		return false
	}
	return false
}

// moveCursor resolves a directional step to a target offset. Extended
// moves route through the anchor-relative selection path so shift+arrow
// and mouse drags share one model.
func (e *Engine) moveCursor(st *textinput.State, dir Direction, extend bool) {
	if !extend {
		switch dir {
		case DirLeft:
			st.MoveCursorLeft()
		case DirRight:
			st.MoveCursorRight()
		case DirHome:
			st.MoveCursorHome()
		case DirEnd:
			st.MoveCursorEnd()
		}
		return
	}

	content := st.Text()
	target := st.Cursor()
	switch dir {
	case DirLeft:
		target = textinput.PreviousBoundary(content, target)
	case DirRight:
		target = textinput.NextBoundary(content, target)
	case DirHome:
		target = 0
	case DirEnd:
		target = len(content)
	}
	st.ExtendSelectionTo(target)
}

// StartSelection begins a mouse-drag selection at the given byte offset:
// cursor and anchor move there and any existing selection is cleared.
func (e *Engine) StartSelection(widgetID uint64, offset int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inputs.GetOrCreate(widgetID).StartSelectionAt(offset)
}

// Text returns the widget's committed content. Untouched ids read as
// empty; reads never create state.
func (e *Engine) Text(widgetID uint64) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.inputs.Get(widgetID); ok {
		return st.Text()
	}
	return ""
}

// Cursor returns the widget's cursor byte offset, 0 for untouched ids.
func (e *Engine) Cursor(widgetID uint64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.inputs.Get(widgetID); ok {
		return st.Cursor()
	}
	return 0
}

// Selection returns the widget's selection range, if any.
func (e *Engine) Selection(widgetID uint64) (start, end int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, found := e.inputs.Get(widgetID); found {
		if span, has := st.Selection(); has {
			return span.Start, span.End, true
		}
	}
	return 0, 0, false
}

// SelectionText returns the selected slice of content, or "" when
// nothing is selected.
func (e *Engine) SelectionText(widgetID uint64) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.inputs.Get(widgetID); ok {
		if s, has := st.SelectionText(); has {
			return s
		}
	}
	return ""
}

// Preedit returns the widget's IME composition overlay, if any.
func (e *Engine) Preedit(widgetID uint64) (text string, cursorOffset int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, found := e.inputs.Get(widgetID); found {
		if c, has := st.Preedit(); has {
			return c.Text, c.CursorOffset, true
		}
	}
	return "", 0, false
}

// DisplayText returns the content with any in-progress composition
// spliced at the cursor, which is the string a renderer should shape.
func (e *Engine) DisplayText(widgetID uint64) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.inputs.Get(widgetID); ok {
		return st.DisplayText()
	}
	return ""
}

// MeasureText measures content wrapped at maxWidth logical pixels and
// returns its logical width and height at the given scale. Results are
// cached; identical queries after the first do no shaping.
func (e *Engine) MeasureText(content string, fontSize, maxWidth, scale float64) (width, height float64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.provider == nil {
		return 0, 0, e.fail(ErrNoProvider)
	}

	style := e.textStyle(fontSize)
	key := cache.NewKey(content, style.FontStack, fontSize, maxWidth, scale, cache.KindMeasure, 0)
	var qerr error
	r := e.cache.GetOrCreate(key, func() *cache.Result {
		w, h, err := text.Measure(e.provider, content, style, maxWidth, scale)
		if err != nil {
			qerr = err
			return nil
		}
		return &cache.Result{Width: w, Height: h}
	})
	if qerr != nil {
		return 0, 0, e.fail(qerr)
	}
	return r.Width, r.Height, nil
}

// CaretX returns the logical x position of the widget's caret, including
// any in-progress composition. Untouched ids sit at 0.
func (e *Engine) CaretX(widgetID uint64, fontSize, scale float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.provider == nil {
		return 0, e.fail(ErrNoProvider)
	}

	st, ok := e.inputs.Get(widgetID)
	if !ok {
		return 0, nil
	}
	return e.caretX(st.DisplayText(), st.DisplayCursor(), fontSize, scale)
}

// caretX answers a cached byte-offset-to-x query. Callers hold e.mu.
func (e *Engine) caretX(content string, offset int, fontSize, scale float64) (float64, error) {
	style := e.textStyle(fontSize)
	key := cache.NewKey(content, style.FontStack, fontSize, 0, scale, cache.KindCaretX, uint64(offset)) //nolint:gosec // offsets are non-negative
	var qerr error
	r := e.cache.GetOrCreate(key, func() *cache.Result {
		x, err := text.ByteOffsetToX(e.provider, content, style, offset, scale)
		if err != nil {
			qerr = err
			return nil
		}
		return &cache.Result{X: x}
	})
	if qerr != nil {
		return 0, e.fail(qerr)
	}
	return r.X, nil
}

// HitTest maps a logical x position within content to the byte offset of
// the nearest glyph cluster boundary.
func (e *Engine) HitTest(content string, fontSize, x, scale float64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.provider == nil {
		return 0, e.fail(ErrNoProvider)
	}

	style := e.textStyle(fontSize)
	key := cache.NewKey(content, style.FontStack, fontSize, 0, scale, cache.KindHitTest, math.Float64bits(x))
	var qerr error
	r := e.cache.GetOrCreate(key, func() *cache.Result {
		off, err := text.XToByteOffset(e.provider, content, style, x, scale)
		if err != nil {
			qerr = err
			return nil
		}
		return &cache.Result{Offset: off}
	})
	if qerr != nil {
		return 0, e.fail(qerr)
	}
	return r.Offset, nil
}

// SelectionBounds returns the logical x positions of the widget's
// selection edges. ok is false when nothing is selected.
func (e *Engine) SelectionBounds(widgetID uint64, fontSize, scale float64) (x0, x1 float64, ok bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.provider == nil {
		return 0, 0, false, e.fail(ErrNoProvider)
	}

	st, found := e.inputs.Get(widgetID)
	if !found {
		return 0, 0, false, nil
	}
	span, has := st.Selection()
	if !has {
		return 0, 0, false, nil
	}

	content := st.Text()
	x0, err = e.caretX(content, span.Start, fontSize, scale)
	if err != nil {
		return 0, 0, false, err
	}
	x1, err = e.caretX(content, span.End, fontSize, scale)
	if err != nil {
		return 0, 0, false, err
	}
	return x0, x1, true, nil
}

// LastError returns the message of the most recent failed geometry
// query, or "" if none failed yet. It exists for boundary-layer
// debugging where the host cannot carry Go errors across the ABI.
func (e *Engine) LastError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// fail records err for LastError and returns it. Callers hold e.mu.
func (e *Engine) fail(err error) error {
	e.lastErr = err.Error()
	return err
}

// textStyle builds the provider style for one query from the engine's
// configured defaults.
func (e *Engine) textStyle(fontSize float64) text.Style {
	return text.Style{
		FontSize:    fontSize,
		FontStack:   e.style.FontStack,
		LineSpacing: e.style.LineSpacing,
	}
}
