package fsm

import (
	"fmt"
	"sort"
)

// MachineBuilder provides the main entry point for building state machines
type MachineBuilder interface {
	State(id string) StateBuilder
	Build() MachineDefinition
}

// StateBuilder handles state configuration
type StateBuilder interface {
	To(target string) TransitionBuilder
	ToSelf() TransitionBuilder

	OnEntry(action ActionFunc) StateBuilder
	OnExit(action ActionFunc) StateBuilder
	Final() StateBuilder
	Initial() StateBuilder

	State(id string) StateBuilder
	Build() MachineDefinition
}

// TransitionBuilder handles transition configuration with inline actions
type TransitionBuilder interface {
	// Event binding
	On(event string) TransitionBuilder

	// Conditions
	When(guard GuardFunc) TransitionBuilder
	Unless(guard GuardFunc) TransitionBuilder

	// Actions
	Do(action ActionFunc) TransitionBuilder

	// Multiple transitions from same state
	To(target string) TransitionBuilder
	ToSelf() TransitionBuilder

	// Navigation back
	State(id string) StateBuilder
	Build() MachineDefinition
}

// MachineDefinition is a validated, immutable machine layout
type MachineDefinition interface {
	// CreateInstance returns a new stopped machine sharing this layout
	CreateInstance() *StateMachine

	InitialState() string
	// GetStates returns states in declaration order
	GetStates() []State
	GetState(id string) (State, bool)
	// GetTransitions returns transitions in declaration order
	GetTransitions() []Transition
	// GetEvents returns every event name, sorted
	GetEvents() []string
}

type machineBuilder struct {
	initialState string
	states       map[string]*AtomicState
	order        []string
	transitions  []Transition
}

// NewMachine creates a new machine builder
func NewMachine() MachineBuilder {
	return &machineBuilder{
		states: make(map[string]*AtomicState),
	}
}

// State creates or reopens a state
func (mb *machineBuilder) State(id string) StateBuilder {
	state, exists := mb.states[id]
	if !exists {
		state = NewAtomicState(id)
		mb.states[id] = state
		mb.order = append(mb.order, id)
	}
	return &stateBuilder{machineBuilder: mb, state: state}
}

// Build validates the layout and returns the definition.
// It panics on an invalid layout, which is a programming error.
func (mb *machineBuilder) Build() MachineDefinition {
	if err := mb.validate(); err != nil {
		panic(fmt.Sprintf("Failed to build machine: %v", err))
	}

	def := &definition{
		initialState: mb.initialState,
		states:       make(map[string]*AtomicState, len(mb.states)),
		order:        append([]string(nil), mb.order...),
		transitions:  append([]Transition(nil), mb.transitions...),
	}
	for id, state := range mb.states {
		def.states[id] = state
	}
	return def
}

func (mb *machineBuilder) validate() error {
	if mb.initialState == "" {
		return NewConfigurationError("MachineBuilder", "no initial state defined")
	}

	for _, transition := range mb.transitions {
		if transition.EventName == "" {
			return NewConfigurationError("MachineBuilder",
				fmt.Sprintf("transition '%s' -> '%s' has no event", transition.SourceState, transition.TargetState))
		}
		if _, exists := mb.states[transition.TargetState]; !exists {
			return NewConfigurationError("MachineBuilder",
				fmt.Sprintf("target state '%s' does not exist for transition", transition.TargetState))
		}
		if mb.states[transition.SourceState].IsFinal() {
			return NewConfigurationError("MachineBuilder",
				fmt.Sprintf("final state '%s' cannot have outgoing transitions", transition.SourceState))
		}
	}

	return nil
}

type stateBuilder struct {
	machineBuilder *machineBuilder
	state          *AtomicState
}

// To starts a transition to another state
func (sb *stateBuilder) To(target string) TransitionBuilder {
	mb := sb.machineBuilder
	mb.transitions = append(mb.transitions, *NewTransition(sb.state.ID(), target, ""))
	return &transitionBuilder{
		stateBuilder: sb,
		index:        len(mb.transitions) - 1,
	}
}

// ToSelf starts a transition that exits and re-enters the state
func (sb *stateBuilder) ToSelf() TransitionBuilder {
	return sb.To(sb.state.ID())
}

// OnEntry adds an entry action
func (sb *stateBuilder) OnEntry(action ActionFunc) StateBuilder {
	sb.state.WithEntryAction(action)
	return sb
}

// OnExit adds an exit action
func (sb *stateBuilder) OnExit(action ActionFunc) StateBuilder {
	sb.state.WithExitAction(action)
	return sb
}

// Final marks the state as terminal
func (sb *stateBuilder) Final() StateBuilder {
	sb.state.final = true
	return sb
}

// Initial marks the state the machine starts in
func (sb *stateBuilder) Initial() StateBuilder {
	sb.machineBuilder.initialState = sb.state.ID()
	return sb
}

// State moves on to another state
func (sb *stateBuilder) State(id string) StateBuilder {
	return sb.machineBuilder.State(id)
}

// Build builds the machine
func (sb *stateBuilder) Build() MachineDefinition {
	return sb.machineBuilder.Build()
}

type transitionBuilder struct {
	stateBuilder *stateBuilder
	index        int
}

func (tb *transitionBuilder) transition() *Transition {
	return &tb.stateBuilder.machineBuilder.transitions[tb.index]
}

// On binds the triggering event
func (tb *transitionBuilder) On(event string) TransitionBuilder {
	tb.transition().EventName = event
	return tb
}

// When adds a guard; several guards must all pass
func (tb *transitionBuilder) When(guard GuardFunc) TransitionBuilder {
	t := tb.transition()
	if t.Guard == nil {
		t.Guard = guard
		return tb
	}
	previous := t.Guard
	t.Guard = func(ctx Context) bool {
		return previous(ctx) && guard(ctx)
	}
	return tb
}

// Unless adds a negated guard
func (tb *transitionBuilder) Unless(guard GuardFunc) TransitionBuilder {
	return tb.When(func(ctx Context) bool {
		return !guard(ctx)
	})
}

// Do adds a transition action; several actions run in order
func (tb *transitionBuilder) Do(action ActionFunc) TransitionBuilder {
	t := tb.transition()
	if t.Action == nil {
		t.Action = action
		return tb
	}
	previous := t.Action
	t.Action = func(ctx Context) error {
		if err := previous(ctx); err != nil {
			return err
		}
		return action(ctx)
	}
	return tb
}

// To starts another transition from the same state
func (tb *transitionBuilder) To(target string) TransitionBuilder {
	return tb.stateBuilder.To(target)
}

// ToSelf starts a self transition from the same state
func (tb *transitionBuilder) ToSelf() TransitionBuilder {
	return tb.stateBuilder.ToSelf()
}

// State moves on to another state
func (tb *transitionBuilder) State(id string) StateBuilder {
	return tb.stateBuilder.State(id)
}

// Build builds the machine
func (tb *transitionBuilder) Build() MachineDefinition {
	return tb.stateBuilder.Build()
}

type definition struct {
	initialState string
	states       map[string]*AtomicState
	order        []string
	transitions  []Transition
}

func (d *definition) CreateInstance() *StateMachine {
	return newStateMachine(d)
}

func (d *definition) InitialState() string {
	return d.initialState
}

func (d *definition) GetStates() []State {
	states := make([]State, 0, len(d.order))
	for _, id := range d.order {
		states = append(states, d.states[id])
	}
	return states
}

func (d *definition) GetState(id string) (State, bool) {
	state, ok := d.states[id]
	return state, ok
}

func (d *definition) GetTransitions() []Transition {
	return append([]Transition(nil), d.transitions...)
}

func (d *definition) GetEvents() []string {
	seen := make(map[string]bool)
	events := make([]string, 0)
	for _, t := range d.transitions {
		if !seen[t.EventName] {
			seen[t.EventName] = true
			events = append(events, t.EventName)
		}
	}
	sort.Strings(events)
	return events
}
