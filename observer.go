package signalctl

import (
	"fmt"
	"io"
)

// Observer watches signal changes made through a Store
type Observer interface {
	// OnSignalChange is called after a signal took a new color.
	// message is the human readable event line, without timestamp.
	OnSignalChange(signal *Signal, previous Color, message string)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnChangeRejected is called when a requested change was refused
	OnChangeRejected(location string, err error)

	// OnError is called when an observer or collaborator fails
	OnError(err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnSignalChange implements the required Observer method
func (o *BaseObserver) OnSignalChange(signal *Signal, previous Color, message string) {}

// OnChangeRejected implements the optional ExtendedObserver method
func (o *BaseObserver) OnChangeRejected(location string, err error) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {}

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

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	return len(om.observers)
}

// NotifySignalChange notifies all observers of a change.
// A panicking observer is reported through OnError of the others and never
// interrupts the change.
func (om *ObserverManager) NotifySignalChange(signal *Signal, previous Color, message string) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					om.NotifyError(fmt.Errorf("observer panic in OnSignalChange: %v", r))
				}
			}()
			observer.OnSignalChange(signal, previous, message)
		}()
	}
}

// NotifyChangeRejected notifies all observers of a refused change
func (om *ObserverManager) NotifyChangeRejected(location string, err error) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnChangeRejected(location, err)
		}
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { recover() }()
				extObs.OnError(err)
			}()
		}
	}
}

// ConsoleObserver echoes every change message to the interactive output
type ConsoleObserver struct {
	BaseObserver
	out io.Writer
}

// NewConsoleObserver creates an observer printing change messages to out
func NewConsoleObserver(out io.Writer) *ConsoleObserver {
	return &ConsoleObserver{out: out}
}

// OnSignalChange prints the change message
func (o *ConsoleObserver) OnSignalChange(signal *Signal, previous Color, message string) {
	fmt.Fprintln(o.out, message)
}
