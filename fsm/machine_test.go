package fsm

import (
	"context"
	"errors"
	"testing"
)

func TestStateMachine_Start(t *testing.T) {
	machine := CreateSimpleMachine()

	err := machine.Start()
	if err != nil {
		t.Fatalf("Expected no error starting machine, got: %v", err)
	}

	AssertState(t, machine, "idle")
}

func TestStateMachine_StartAlreadyStarted(t *testing.T) {
	machine := CreateSimpleMachine()

	_ = machine.Start()
	err := machine.Start()

	if err == nil {
		t.Error("Expected error when starting already started machine")
	}
	if !IsMachineError(err) {
		t.Errorf("Expected MachineError, got %T", err)
	}
}

func TestStateMachine_Stop(t *testing.T) {
	machine := CreateSimpleMachine()
	observer := NewTestObserver()
	machine.AddObserver(observer)

	_ = machine.Start()
	err := machine.Stop()

	if err != nil {
		t.Fatalf("Expected no error stopping machine, got: %v", err)
	}

	if observer.Stopped != 1 {
		t.Error("Expected machine stopped notification")
	}
}

func TestStateMachine_StopNotStarted(t *testing.T) {
	machine := CreateSimpleMachine()

	err := machine.Stop()
	if err == nil {
		t.Error("Expected error when stopping non-started machine")
	}
}

func TestStateMachine_Reset(t *testing.T) {
	machine := CreateSimpleMachine()

	_ = machine.Start()
	_ = machine.HandleEvent("start", nil)
	AssertState(t, machine, "running")

	if err := machine.Reset(); err != nil {
		t.Fatalf("Expected no error resetting machine, got: %v", err)
	}

	AssertState(t, machine, "idle")
	if machine.Status() != MachineStateStopped {
		t.Errorf("Expected stopped after reset, got %s", machine.Status())
	}
}

func TestStateMachine_BasicTransition(t *testing.T) {
	machine := CreateSimpleMachine()
	observer := NewTestObserver()
	machine.AddObserver(observer)

	_ = machine.Start()

	result := machine.HandleEvent("start", nil)

	AssertEventProcessed(t, result, true)
	AssertStateChanged(t, result, "idle", "running")
	AssertState(t, machine, "running")

	if len(observer.Transitions) != 1 {
		t.Errorf("Expected 1 transition, got %d", len(observer.Transitions))
	}
	if len(observer.StateEnters) != 2 {
		t.Errorf("Expected 2 state enters, got %d", len(observer.StateEnters))
	}
	if result.EventID == "" {
		t.Error("Expected result to carry the event ID")
	}
}

func TestStateMachine_InvalidTransition(t *testing.T) {
	machine := CreateSimpleMachine()
	observer := NewTestObserver()
	machine.AddObserver(observer)

	_ = machine.Start()

	result := machine.HandleEvent("invalid", nil)

	AssertEventProcessed(t, result, false)
	AssertState(t, machine, "idle")

	if !result.Rejected() {
		t.Error("Expected rejection reason")
	}
	if len(observer.EventRejects) != 1 {
		t.Error("Expected event rejection notification")
	}
}

func TestStateMachine_EmptyEventName(t *testing.T) {
	machine := CreateSimpleMachine()
	_ = machine.Start()

	result := machine.HandleEvent("  ", nil)

	AssertEventProcessed(t, result, false)
	if result.RejectionReason != "event name cannot be empty" {
		t.Errorf("Unexpected rejection reason: %s", result.RejectionReason)
	}
}

func TestStateMachine_NotStarted(t *testing.T) {
	machine := CreateSimpleMachine()

	result := machine.HandleEvent("start", nil)

	AssertEventProcessed(t, result, false)
	if !IsMachineError(result.Error) {
		t.Errorf("Expected MachineError, got %v", result.Error)
	}
}

func TestStateMachine_SelfTransition(t *testing.T) {
	entries := 0
	machine := NewMachine().
		State("state1").Initial().
		OnEntry(func(ctx Context) error {
			entries++
			return nil
		}).
		ToSelf().On("self_event").
		Build().
		CreateInstance()

	_ = machine.Start()
	result := machine.HandleEvent("self_event", nil)

	AssertEventProcessed(t, result, true)
	AssertStateChanged(t, result, "state1", "state1")
	if entries != 2 {
		t.Errorf("Expected entry action to run on start and on re-entry, got %d", entries)
	}
}

func TestStateMachine_GuardSelectsTransition(t *testing.T) {
	machine := NewMachine().
		State("menu").Initial().
		To("small").On("pick").When(func(ctx Context) bool {
			n, _ := ctx.GetEventData().(int)
			return n < 10
		}).
		To("large").On("pick").
		State("small").
		State("large").
		Build().
		CreateInstance()

	_ = machine.Start()
	machine.HandleEvent("pick", 3)
	AssertState(t, machine, "small")

	_ = machine.Reset()
	_ = machine.Start()
	machine.HandleEvent("pick", 30)
	AssertState(t, machine, "large")
}

func TestStateMachine_UnlessGuard(t *testing.T) {
	blocked := true
	machine := NewMachine().
		State("a").Initial().
		To("b").On("go").Unless(func(ctx Context) bool { return blocked }).
		State("b").
		Build().
		CreateInstance()

	_ = machine.Start()
	AssertEventProcessed(t, machine.HandleEvent("go", nil), false)

	blocked = false
	AssertEventProcessed(t, machine.HandleEvent("go", nil), true)
	AssertState(t, machine, "b")
}

func TestStateMachine_GuardPanicIsReported(t *testing.T) {
	machine := NewMachine().
		State("a").Initial().
		To("b").On("go").When(func(ctx Context) bool { panic("boom") }).
		State("b").
		Build().
		CreateInstance()
	observer := NewTestObserver()
	machine.AddObserver(observer)

	_ = machine.Start()
	result := machine.HandleEvent("go", nil)

	AssertEventProcessed(t, result, false)
	if len(observer.Errors) != 1 || !IsGuardError(observer.Errors[0]) {
		t.Errorf("Expected one GuardError, got %v", observer.Errors)
	}
}

func TestStateMachine_TransitionActionFailureAborts(t *testing.T) {
	failure := errors.New("nope")
	machine := NewMachine().
		State("a").Initial().
		To("b").On("go").Do(func(ctx Context) error { return failure }).
		State("b").
		Build().
		CreateInstance()

	_ = machine.Start()
	result := machine.HandleEvent("go", nil)

	AssertEventProcessed(t, result, false)
	AssertState(t, machine, "a")
	if !errors.Is(result.Error, failure) {
		t.Errorf("Expected wrapped action error, got %v", result.Error)
	}
}

func TestStateMachine_EntryActionFailureCommitsTransition(t *testing.T) {
	failure := errors.New("input closed")
	machine := NewMachine().
		State("a").Initial().
		To("b").On("go").
		State("b").OnEntry(func(ctx Context) error { return failure }).
		Build().
		CreateInstance()

	_ = machine.Start()
	result := machine.HandleEvent("go", nil)

	if !result.Processed {
		t.Fatal("Expected transition to be processed")
	}
	AssertState(t, machine, "b")
	if !errors.Is(result.Error, failure) {
		t.Errorf("Expected entry error in result, got %v", result.Error)
	}
	if !IsActionError(result.Error) {
		t.Errorf("Expected ActionError, got %T", result.Error)
	}
}

func TestStateMachine_ActionPanicIsRecovered(t *testing.T) {
	machine := NewMachine().
		State("a").Initial().
		To("b").On("go").Do(func(ctx Context) error { panic("boom") }).
		State("b").
		Build().
		CreateInstance()

	_ = machine.Start()
	result := machine.HandleEvent("go", nil)

	AssertEventProcessed(t, result, false)
	if result.Error == nil {
		t.Error("Expected panic to surface as error")
	}
}

func TestStateMachine_FinalState(t *testing.T) {
	machine := NewMachine().
		State("running").Initial().
		To("done").On("quit").
		State("done").Final().
		Build().
		CreateInstance()

	_ = machine.Start()
	machine.HandleEvent("quit", nil)

	if !machine.IsFinished() {
		t.Fatal("Expected machine to be finished")
	}

	result := machine.HandleEvent("quit", nil)
	AssertEventProcessed(t, result, false)
	if result.RejectionReason != "machine finished in state 'done'" {
		t.Errorf("Unexpected rejection: %s", result.RejectionReason)
	}
}

func TestStateMachine_ExitAndEntryOrder(t *testing.T) {
	var calls []string
	record := func(name string) ActionFunc {
		return func(ctx Context) error {
			calls = append(calls, name)
			return nil
		}
	}

	machine := NewMachine().
		State("a").Initial().OnExit(record("exit a")).
		To("b").On("go").Do(record("transition")).
		State("b").OnEntry(record("enter b")).
		Build().
		CreateInstance()

	_ = machine.Start()
	machine.HandleEvent("go", nil)

	expected := []string{"transition", "exit a", "enter b"}
	if len(calls) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, calls)
	}
	for i := range expected {
		if calls[i] != expected[i] {
			t.Errorf("Call %d: expected %s, got %s", i, expected[i], calls[i])
		}
	}
}

func TestStateMachine_ContextCarriesEventData(t *testing.T) {
	var seen any
	var source, target string
	capture := func(ctx Context) error {
		seen = ctx.GetEventData()
		source = ctx.GetSourceState()
		target = ctx.GetTargetState()
		return nil
	}
	machine := NewMachine().
		State("a").Initial().
		To("b").On("go").
		State("b").OnEntry(capture).
		Build().
		CreateInstance()

	_ = machine.Start()
	machine.HandleEventWithContext(context.Background(), "go", 42)

	if seen != 42 {
		t.Errorf("Expected event data 42, got %v", seen)
	}
	if source != "a" || target != "b" {
		t.Errorf("Expected a -> b, got %s -> %s", source, target)
	}
}

func TestStateMachine_SetState(t *testing.T) {
	machine := CreateSimpleMachine()
	_ = machine.Start()

	if err := machine.SetState("stopped"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	AssertState(t, machine, "stopped")

	err := machine.SetState("missing")
	if !IsStateError(err) {
		t.Errorf("Expected StateError, got %v", err)
	}
}

func TestStateMachine_AvailableEvents(t *testing.T) {
	machine := CreateSimpleMachine()
	_ = machine.Start()

	events := machine.AvailableEvents()
	if len(events) != 1 || events[0] != "start" {
		t.Errorf("Expected [start], got %v", events)
	}
}
