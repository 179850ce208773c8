package fsm

// State represents a node of the machine
type State interface {
	ID() string
	IsFinal() bool
	Enter(ctx Context) error
	Exit(ctx Context) error
}

// ActionFunc is executed on state entry, state exit or along a transition
type ActionFunc func(ctx Context) error

// GuardFunc decides whether a transition may fire
type GuardFunc func(ctx Context) bool

// AtomicState is a leaf state with optional entry and exit actions
type AtomicState struct {
	id           string
	final        bool
	entryActions []ActionFunc
	exitActions  []ActionFunc
}

// NewAtomicState creates a new atomic state
func NewAtomicState(id string) *AtomicState {
	return &AtomicState{id: id}
}

// NewFinalState creates a new terminal state
func NewFinalState(id string) *AtomicState {
	return &AtomicState{id: id, final: true}
}

// ID returns the state identifier
func (s *AtomicState) ID() string {
	return s.id
}

// IsFinal reports whether the machine finishes in this state
func (s *AtomicState) IsFinal() bool {
	return s.final
}

// Enter runs the entry actions in registration order, stopping at the first error
func (s *AtomicState) Enter(ctx Context) error {
	for _, action := range s.entryActions {
		if err := safeExecuteAction(action, ctx); err != nil {
			return NewActionError("entry", s.id, err)
		}
	}
	return nil
}

// Exit runs the exit actions in registration order, stopping at the first error
func (s *AtomicState) Exit(ctx Context) error {
	for _, action := range s.exitActions {
		if err := safeExecuteAction(action, ctx); err != nil {
			return NewActionError("exit", s.id, err)
		}
	}
	return nil
}

// WithEntryAction adds an entry action
func (s *AtomicState) WithEntryAction(action ActionFunc) *AtomicState {
	s.entryActions = append(s.entryActions, action)
	return s
}

// WithExitAction adds an exit action
func (s *AtomicState) WithExitAction(action ActionFunc) *AtomicState {
	s.exitActions = append(s.exitActions, action)
	return s
}

// HasEntryActions reports whether the state does anything when entered
func (s *AtomicState) HasEntryActions() bool {
	return len(s.entryActions) > 0
}
