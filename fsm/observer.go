package fsm

import "fmt"

// Observer represents an entity that observes state machine lifecycle
type Observer interface {
	// OnTransition is called when a state transition occurs
	OnTransition(from string, to string, event Event, ctx Context)

	// OnStateEnter is called when entering a new state
	OnStateEnter(state string, ctx Context)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnStateExit is called when exiting a state
	OnStateExit(state string, ctx Context)

	// OnEventRejected is called when an event is rejected (no valid transition)
	OnEventRejected(event Event, reason string, ctx Context)

	// OnError is called when an error occurs during processing
	OnError(err error, ctx Context)

	// OnMachineStarted is called when the state machine starts
	OnMachineStarted(ctx Context)

	// OnMachineStopped is called when the state machine stops
	OnMachineStopped(ctx Context)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnTransition implements the required Observer method
func (o *BaseObserver) OnTransition(from string, to string, event Event, ctx Context) {}

// OnStateEnter implements the required Observer method
func (o *BaseObserver) OnStateEnter(state string, ctx Context) {}

// OnStateExit implements the optional ExtendedObserver method
func (o *BaseObserver) OnStateExit(state string, ctx Context) {}

// OnEventRejected implements the optional ExtendedObserver method
func (o *BaseObserver) OnEventRejected(event Event, reason string, ctx Context) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error, ctx Context) {}

// OnMachineStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnMachineStarted(ctx Context) {}

// OnMachineStopped implements the optional ExtendedObserver method
func (o *BaseObserver) OnMachineStopped(ctx Context) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

func (om *ObserverManager) snapshot() []Observer {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// guard runs fn and turns a panic into an OnError notification
func guard(observer Observer, hook string, ctx Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if extObs, ok := observer.(ExtendedObserver); ok {
				func() {
					defer func() { recover() }()
					extObs.OnError(fmt.Errorf("observer panic in %s: %v", hook, r), ctx)
				}()
			}
		}
	}()
	fn()
}

// NotifyTransition notifies all observers of a state transition
func (om *ObserverManager) NotifyTransition(from string, to string, event Event, ctx Context) {
	for _, observer := range om.snapshot() {
		observer := observer
		guard(observer, "OnTransition", ctx, func() { observer.OnTransition(from, to, event, ctx) })
	}
}

// NotifyStateEnter notifies all observers of state entry
func (om *ObserverManager) NotifyStateEnter(state string, ctx Context) {
	for _, observer := range om.snapshot() {
		observer := observer
		guard(observer, "OnStateEnter", ctx, func() { observer.OnStateEnter(state, ctx) })
	}
}

// NotifyStateExit notifies all observers of state exit
func (om *ObserverManager) NotifyStateExit(state string, ctx Context) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			guard(observer, "OnStateExit", ctx, func() { extObs.OnStateExit(state, ctx) })
		}
	}
}

// NotifyEventRejected notifies all observers of event rejection
func (om *ObserverManager) NotifyEventRejected(event Event, reason string, ctx Context) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnEventRejected(event, reason, ctx)
		}
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error, ctx Context) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnError(err, ctx)
		}
	}
}

// NotifyMachineStarted notifies all observers that the machine has started
func (om *ObserverManager) NotifyMachineStarted(ctx Context) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnMachineStarted(ctx)
		}
	}
}

// NotifyMachineStopped notifies all observers that the machine has stopped
func (om *ObserverManager) NotifyMachineStopped(ctx Context) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnMachineStopped(ctx)
		}
	}
}
