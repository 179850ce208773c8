package fsm

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a trigger for transitions in the state machine
type Event interface {
	GetID() string
	GetName() string
	GetData() any
	GetTimestamp() time.Time
}

// BaseEvent provides a basic implementation of the Event interface
type BaseEvent struct {
	id        string
	name      string
	data      any
	timestamp time.Time
}

// NewEvent creates a new event with a fresh identifier
func NewEvent(name string, data any) Event {
	return &BaseEvent{
		id:        uuid.New().String(),
		name:      name,
		data:      data,
		timestamp: time.Now(),
	}
}

// GetID returns the unique event identifier
func (e *BaseEvent) GetID() string {
	return e.id
}

// GetName returns the event name
func (e *BaseEvent) GetName() string {
	return e.name
}

// GetData returns the event data
func (e *BaseEvent) GetData() any {
	return e.data
}

// GetTimestamp returns the event timestamp
func (e *BaseEvent) GetTimestamp() time.Time {
	return e.timestamp
}

// EventResult represents the result of processing an event
type EventResult struct {
	EventID         string
	Processed       bool
	StateChanged    bool
	PreviousState   string
	CurrentState    string
	Error           error
	RejectionReason string
}

// NewEventResult creates a new event result
func NewEventResult(processed, stateChanged bool, prevState, currentState string) *EventResult {
	return &EventResult{
		Processed:     processed,
		StateChanged:  stateChanged,
		PreviousState: prevState,
		CurrentState:  currentState,
	}
}

// WithEvent records which event produced the result
func (r *EventResult) WithEvent(event Event) *EventResult {
	if event != nil {
		r.EventID = event.GetID()
	}
	return r
}

// WithError adds an error to the event result
func (r *EventResult) WithError(err error) *EventResult {
	r.Error = err
	return r
}

// WithRejection adds a rejection reason to the event result
func (r *EventResult) WithRejection(reason string) *EventResult {
	r.RejectionReason = reason
	r.Processed = false
	return r
}

// Success returns true if the event was processed successfully
func (r *EventResult) Success() bool {
	return r.Processed && r.Error == nil
}

// Rejected returns true if no transition accepted the event
func (r *EventResult) Rejected() bool {
	return r.RejectionReason != ""
}
