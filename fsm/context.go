package fsm

import (
	"context"
	"sync"
)

// Context provides access to data and information during state machine execution
type Context interface {
	context.Context

	Get(key string) (any, bool)
	Set(key string, value any)
	GetAll() map[string]any

	GetCurrentState() string
	GetSourceState() string
	GetTargetState() string

	GetCurrentEvent() Event
	GetEventName() string
	GetEventData() any
}

// StateMachineContext implements the Context interface
type StateMachineContext struct {
	context.Context
	data         map[string]any
	currentState string
	sourceState  string
	targetState  string
	currentEvent Event

	mutex sync.RWMutex
}

// NewContext creates a new state machine context
func NewContext(parent context.Context) *StateMachineContext {
	if parent == nil {
		parent = context.Background()
	}
	return &StateMachineContext{
		Context: parent,
		data:    make(map[string]any),
	}
}

// Get retrieves a value from the context
func (ctx *StateMachineContext) Get(key string) (any, bool) {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	value, exists := ctx.data[key]
	return value, exists
}

// Set stores a value in the context
func (ctx *StateMachineContext) Set(key string, value any) {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.data[key] = value
}

// GetAll returns a copy of all context data
func (ctx *StateMachineContext) GetAll() map[string]any {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	result := make(map[string]any, len(ctx.data))
	for k, v := range ctx.data {
		result[k] = v
	}
	return result
}

// GetCurrentState returns the current state ID
func (ctx *StateMachineContext) GetCurrentState() string {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	return ctx.currentState
}

// GetSourceState returns the source state of the current transition
func (ctx *StateMachineContext) GetSourceState() string {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	return ctx.sourceState
}

// GetTargetState returns the target state of the current transition
func (ctx *StateMachineContext) GetTargetState() string {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	return ctx.targetState
}

// GetCurrentEvent returns the event being processed
func (ctx *StateMachineContext) GetCurrentEvent() Event {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	return ctx.currentEvent
}

// GetEventName returns the name of the current event
func (ctx *StateMachineContext) GetEventName() string {
	if event := ctx.GetCurrentEvent(); event != nil {
		return event.GetName()
	}
	return ""
}

// GetEventData returns the data of the current event
func (ctx *StateMachineContext) GetEventData() any {
	if event := ctx.GetCurrentEvent(); event != nil {
		return event.GetData()
	}
	return nil
}

// withParent returns a shallow view of ctx bound to another parent context.
// Data is shared with the original.
func (ctx *StateMachineContext) withParent(parent context.Context) *StateMachineContext {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.Context = parent
	return ctx
}

func (ctx *StateMachineContext) updateTransitionInfo(currentState, sourceState, targetState string, event Event) {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.currentState = currentState
	ctx.sourceState = sourceState
	ctx.targetState = targetState
	ctx.currentEvent = event
}

func (ctx *StateMachineContext) updateCurrentState(state string) {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.currentState = state
}
