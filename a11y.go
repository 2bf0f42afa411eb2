package zello

// TextSnapshot is a read-only view of one widget's text state for the
// accessibility collaborator, which exposes text-range attributes and
// never mutates state.
type TextSnapshot struct {
	Content string
	Cursor  int

	// SelStart and SelEnd bound the selection when HasSelection is set.
	SelStart, SelEnd int
	HasSelection     bool
}

// TextSnapshot returns the widget's current snapshot. Untouched ids
// snapshot as empty.
func (e *Engine) TextSnapshot(widgetID uint64) TextSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.inputs.Get(widgetID)
	if !ok {
		return TextSnapshot{}
	}
	snap := TextSnapshot{
		Content: st.Text(),
		Cursor:  st.Cursor(),
	}
	if span, has := st.Selection(); has {
		snap.SelStart = span.Start
		snap.SelEnd = span.End
		snap.HasSelection = true
	}
	return snap
}
