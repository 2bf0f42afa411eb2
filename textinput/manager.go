package textinput

// Manager owns the text input state of every widget, keyed by the opaque
// 64-bit widget id the host assigns. States are created lazily on first
// mutation and never destroyed; iteration order is irrelevant.
//
// Manager is plain data: the owning engine's lock serializes access.
type Manager struct {
	states map[uint64]*State
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{states: make(map[uint64]*State)}
}

// GetOrCreate returns the state for id, creating an empty one if the
// widget has never been touched. Mutation paths use this so the host does
// not have to pre-register widgets.
func (m *Manager) GetOrCreate(id uint64) *State {
	if s, ok := m.states[id]; ok {
		return s
	}
	s := NewState()
	m.states[id] = s
	return s
}

// Get returns the state for id without creating one. Read paths use this
// and fall back to benign zero defaults when ok is false.
func (m *Manager) Get(id uint64) (*State, bool) {
	s, ok := m.states[id]
	return s, ok
}

// Len returns the number of tracked widgets.
func (m *Manager) Len() int {
	return len(m.states)
}
