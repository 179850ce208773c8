package fsm

import (
	"sync"
	"testing"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex        sync.RWMutex
	Transitions  []TransitionEvent
	StateEnters  []string
	StateExits   []string
	EventRejects []EventRejectEvent
	Errors       []error
	Started      int
	Stopped      int
}

// TransitionEvent is a captured OnTransition call
type TransitionEvent struct {
	From  string
	To    string
	Event Event
}

// EventRejectEvent is a captured OnEventRejected call
type EventRejectEvent struct {
	Event  Event
	Reason string
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

func (o *TestObserver) OnTransition(from string, to string, event Event, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Transitions = append(o.Transitions, TransitionEvent{From: from, To: to, Event: event})
}

func (o *TestObserver) OnStateEnter(state string, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StateEnters = append(o.StateEnters, state)
}

func (o *TestObserver) OnStateExit(state string, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StateExits = append(o.StateExits, state)
}

func (o *TestObserver) OnEventRejected(event Event, reason string, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.EventRejects = append(o.EventRejects, EventRejectEvent{Event: event, Reason: reason})
}

func (o *TestObserver) OnError(err error, ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

func (o *TestObserver) OnMachineStarted(ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Started++
}

func (o *TestObserver) OnMachineStopped(ctx Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Stopped++
}

// Reset clears all captured events
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Transitions = nil
	o.StateEnters = nil
	o.StateExits = nil
	o.EventRejects = nil
	o.Errors = nil
	o.Started = 0
	o.Stopped = 0
}

// LastTransition returns the most recent transition, or nil
func (o *TestObserver) LastTransition() *TransitionEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.Transitions) == 0 {
		return nil
	}
	t := o.Transitions[len(o.Transitions)-1]
	return &t
}

// CreateSimpleMachine creates idle -> running -> stopped with a reset back to idle
func CreateSimpleMachine() *StateMachine {
	return NewMachine().
		State("idle").Initial().
		To("running").On("start").
		State("running").
		To("stopped").On("stop").
		State("stopped").
		To("idle").On("reset").
		Build().
		CreateInstance()
}

// AssertState fails the test if machine is not in expectedState
func AssertState(t *testing.T, machine *StateMachine, expectedState string) {
	t.Helper()
	if current := machine.CurrentState(); current != expectedState {
		t.Errorf("Expected state %s, got %s", expectedState, current)
	}
}

// AssertStateChanged checks the before and after states of a result
func AssertStateChanged(t *testing.T, result *EventResult, expectedPrevious, expectedCurrent string) {
	t.Helper()
	if !result.StateChanged {
		t.Error("Expected state to change")
	}
	if result.PreviousState != expectedPrevious {
		t.Errorf("Expected previous state %s, got %s", expectedPrevious, result.PreviousState)
	}
	if result.CurrentState != expectedCurrent {
		t.Errorf("Expected current state %s, got %s", expectedCurrent, result.CurrentState)
	}
}

// AssertEventProcessed checks whether a result was processed
func AssertEventProcessed(t *testing.T, result *EventResult, shouldProcess bool) {
	t.Helper()
	if result.Processed != shouldProcess {
		t.Errorf("Expected event processed=%v, got %v (reason: %s)", shouldProcess, result.Processed, result.RejectionReason)
	}
}
