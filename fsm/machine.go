package fsm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MachineState represents the lifecycle of a machine instance
type MachineState int

const (
	// Machine is stopped and not processing events
	MachineStateStopped MachineState = iota
	// Machine is running and processing events
	MachineStateStarted
	// Machine reached a final state
	MachineStateFinished
)

func (s MachineState) String() string {
	switch s {
	case MachineStateStopped:
		return "stopped"
	case MachineStateStarted:
		return "started"
	case MachineStateFinished:
		return "finished"
	}
	return fmt.Sprintf("MachineState(%d)", int(s))
}

// StateMachine is a running instance of a MachineDefinition.
//
// Events are handled synchronously; entry, exit and transition actions run on
// the caller's goroutine while the machine lock is held, so an action must not
// send events to its own machine.
type StateMachine struct {
	definition   *definition
	transitions  map[string][]Transition
	currentState string
	context      *StateMachineContext
	observers    *ObserverManager
	machineState MachineState
	mutex        sync.RWMutex
}

func newStateMachine(def *definition) *StateMachine {
	sm := &StateMachine{
		definition:   def,
		transitions:  make(map[string][]Transition),
		currentState: def.initialState,
		context:      NewContext(context.Background()),
		observers:    NewObserverManager(),
		machineState: MachineStateStopped,
	}
	for _, t := range def.transitions {
		sm.transitions[t.SourceState] = append(sm.transitions[t.SourceState], t)
	}
	sm.context.updateCurrentState(sm.currentState)
	return sm
}

// safeEvaluateGuard safely evaluates a guard function with panic recovery
func safeEvaluateGuard(guard GuardFunc, ctx Context) (result bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = false
			err = fmt.Errorf("guard panic: %v", r)
		}
	}()

	result = guard(ctx)
	return result, nil
}

// safeExecuteAction safely executes an action function with panic recovery
func safeExecuteAction(action ActionFunc, ctx Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panic: %v", r)
		}
	}()

	err = action(ctx)
	return err
}

// Start enters the initial state and runs its entry actions
func (sm *StateMachine) Start() error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if sm.machineState != MachineStateStopped {
		return NewAlreadyStartedError()
	}

	sm.machineState = MachineStateStarted
	sm.currentState = sm.definition.initialState
	sm.context.updateTransitionInfo(sm.currentState, "", sm.currentState, nil)

	err := sm.enter(sm.currentState)
	sm.observers.NotifyStateEnter(sm.currentState, sm.context)
	sm.observers.NotifyMachineStarted(sm.context)
	if err != nil {
		sm.observers.NotifyError(err, sm.context)
	}
	return err
}

// Stop stops the machine; it can be started again afterwards
func (sm *StateMachine) Stop() error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if sm.machineState == MachineStateStopped {
		return NewMachineNotStartedError("Stop")
	}

	sm.observers.NotifyStateExit(sm.currentState, sm.context)
	sm.observers.NotifyMachineStopped(sm.context)
	sm.machineState = MachineStateStopped
	return nil
}

// Reset stops the machine and moves it back to the initial state without
// running any actions
func (sm *StateMachine) Reset() error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.machineState = MachineStateStopped
	sm.currentState = sm.definition.initialState
	sm.context.updateTransitionInfo(sm.currentState, "", "", nil)
	return nil
}

// CurrentState returns the current state
func (sm *StateMachine) CurrentState() string {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.currentState
}

// IsInState reports whether the machine is in stateID
func (sm *StateMachine) IsInState(stateID string) bool {
	return sm.CurrentState() == stateID
}

// Status returns the lifecycle state of the instance
func (sm *StateMachine) Status() MachineState {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.machineState
}

// IsFinished reports whether the machine reached a final state
func (sm *StateMachine) IsFinished() bool {
	return sm.Status() == MachineStateFinished
}

// SetState forces the current state without running actions
func (sm *StateMachine) SetState(state string) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if _, exists := sm.definition.states[state]; !exists {
		return NewStateNotFoundError(state)
	}

	previousState := sm.currentState
	sm.currentState = state
	sm.context.updateCurrentState(state)

	if previousState != state {
		sm.observers.NotifyStateExit(previousState, sm.context)
		sm.observers.NotifyStateEnter(state, sm.context)
		sm.observers.NotifyTransition(previousState, state, nil, sm.context)
	}
	return nil
}

// AvailableEvents returns the events with a transition out of the current state
func (sm *StateMachine) AvailableEvents() []string {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	events := make([]string, 0)
	for _, t := range sm.transitions[sm.currentState] {
		events = append(events, t.EventName)
	}
	return events
}

// AddObserver adds an observer
func (sm *StateMachine) AddObserver(observer Observer) {
	sm.observers.AddObserver(observer)
}

// RemoveObserver removes an observer
func (sm *StateMachine) RemoveObserver(observer Observer) {
	sm.observers.RemoveObserver(observer)
}

// Context returns the machine context
func (sm *StateMachine) Context() Context {
	return sm.context
}

// Definition returns the layout the machine was created from
func (sm *StateMachine) Definition() MachineDefinition {
	return sm.definition
}

// HandleEvent handles an event synchronously
func (sm *StateMachine) HandleEvent(eventName string, eventData any) *EventResult {
	return sm.HandleEventWithContext(context.Background(), eventName, eventData)
}

// HandleEventWithContext handles an event synchronously. ctx becomes the
// parent of the machine context while the event is processed.
func (sm *StateMachine) HandleEventWithContext(ctx context.Context, eventName string, eventData any) *EventResult {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	event := NewEvent(eventName, eventData)

	if sm.machineState != MachineStateStarted {
		reason := "machine is not started"
		if sm.machineState == MachineStateFinished {
			reason = fmt.Sprintf("machine finished in state '%s'", sm.currentState)
		}
		return NewEventResult(false, false, sm.currentState, sm.currentState).
			WithEvent(event).
			WithRejection(reason).
			WithError(NewMachineNotStartedError("HandleEvent"))
	}

	if strings.TrimSpace(eventName) == "" {
		reason := "event name cannot be empty"
		sm.observers.NotifyEventRejected(event, reason, sm.context)
		return NewEventResult(false, false, sm.currentState, sm.currentState).
			WithEvent(event).
			WithRejection(reason)
	}

	if ctx != nil {
		sm.context.withParent(ctx)
	}
	sm.context.updateTransitionInfo(sm.currentState, sm.currentState, "", event)

	transition := sm.findMatchingTransition(eventName)
	if transition == nil {
		reason := NewNoTransitionError(sm.currentState, eventName).Reason
		sm.observers.NotifyEventRejected(event, reason, sm.context)
		return NewEventResult(false, false, sm.currentState, sm.currentState).
			WithEvent(event).
			WithRejection(reason)
	}

	previousState := sm.currentState
	targetState := transition.TargetState
	sm.context.updateTransitionInfo(previousState, previousState, targetState, event)

	// A failing transition action aborts the transition
	if transition.Action != nil {
		if err := safeExecuteAction(transition.Action, sm.context); err != nil {
			actionErr := NewActionError("transition", previousState, err)
			sm.observers.NotifyError(actionErr, sm.context)
			return NewEventResult(false, false, previousState, previousState).
				WithEvent(event).
				WithError(actionErr)
		}
	}

	var resultErr error
	if source, ok := sm.definition.states[previousState]; ok {
		if err := source.Exit(sm.context); err != nil {
			sm.observers.NotifyError(err, sm.context)
			resultErr = err
		}
	}
	sm.observers.NotifyStateExit(previousState, sm.context)

	sm.currentState = targetState
	sm.context.updateTransitionInfo(targetState, previousState, targetState, event)

	if target, ok := sm.definition.states[targetState]; ok && target.IsFinal() {
		sm.machineState = MachineStateFinished
	}

	// The transition is committed; an entry failure is reported, not undone
	if err := sm.enter(targetState); err != nil {
		sm.observers.NotifyError(err, sm.context)
		resultErr = err
	}

	sm.observers.NotifyTransition(previousState, targetState, event, sm.context)
	sm.observers.NotifyStateEnter(targetState, sm.context)

	return NewEventResult(true, true, previousState, targetState).
		WithEvent(event).
		WithError(resultErr)
}

func (sm *StateMachine) enter(stateID string) error {
	state, ok := sm.definition.states[stateID]
	if !ok {
		return NewStateNotFoundError(stateID)
	}
	return state.Enter(sm.context)
}

// findMatchingTransition returns the first transition for eventName out of the
// current state whose guard passes. A panicking guard counts as failed.
func (sm *StateMachine) findMatchingTransition(eventName string) *Transition {
	for _, transition := range sm.transitions[sm.currentState] {
		if transition.EventName != eventName {
			continue
		}
		if transition.Guard != nil {
			passed, err := safeEvaluateGuard(transition.Guard, sm.context)
			if err != nil {
				sm.observers.NotifyError(
					NewGuardError(transition.SourceState, transition.TargetState, eventName, err.Error()),
					sm.context)
				continue
			}
			if !passed {
				continue
			}
		}
		t := transition
		return &t
	}
	return nil
}
