package fsm

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the errors raised by the engine
type ErrorCode int

const (
	ErrCodeNone ErrorCode = iota
	// a state ID was not declared
	ErrCodeStateNotFound
	// no transition leaves the current state for the event
	ErrCodeTransitionNotAllowed
	// a guard could not be evaluated
	ErrCodeGuardRejected
	// the machine is stopped or finished
	ErrCodeMachineNotStarted
	// Start was called on a running machine
	ErrCodeAlreadyStarted
	// an entry, exit or transition action returned an error or panicked
	ErrCodeActionFailed
	// the builder was given an invalid layout
	ErrCodeInvalidConfiguration
)

// codedError is implemented by every engine error
type codedError interface {
	error
	errorCode() ErrorCode
}

// StateError reports an unknown state
type StateError struct {
	Code    ErrorCode
	StateID string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error [%s]: %s", e.StateID, e.Message)
}

func (e *StateError) errorCode() ErrorCode { return e.Code }

// NewStateNotFoundError reports that stateID was never declared
func NewStateNotFoundError(stateID string) *StateError {
	return &StateError{
		Code:    ErrCodeStateNotFound,
		StateID: stateID,
		Message: fmt.Sprintf("state '%s' not found", stateID),
	}
}

// TransitionError reports an event the current state has no transition for
type TransitionError struct {
	Code   ErrorCode
	From   string
	To     string
	Event  string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition error [%s->%s on %s]: %s", e.From, e.To, e.Event, e.Reason)
}

func (e *TransitionError) errorCode() ErrorCode { return e.Code }

// NewNoTransitionError reports that nothing leaves from on event
func NewNoTransitionError(from, event string) *TransitionError {
	return &TransitionError{
		Code:   ErrCodeTransitionNotAllowed,
		From:   from,
		Event:  event,
		Reason: fmt.Sprintf("no transition found from state '%s' for event '%s'", from, event),
	}
}

// GuardError reports a guard that panicked while being evaluated
type GuardError struct {
	From  string
	To    string
	Event string
	Cause string
}

func (e *GuardError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("guard failed [%s->%s on %s]: %s", e.From, e.To, e.Event, e.Cause)
	}
	return fmt.Sprintf("guard failed [%s->%s on %s]", e.From, e.To, e.Event)
}

func (e *GuardError) errorCode() ErrorCode { return ErrCodeGuardRejected }

// NewGuardError creates a new guard error
func NewGuardError(from, to, event, cause string) *GuardError {
	return &GuardError{
		From:  from,
		To:    to,
		Event: event,
		Cause: cause,
	}
}

// ConfigurationError reports an invalid machine layout found by Build
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

func (e *ConfigurationError) errorCode() ErrorCode { return ErrCodeInvalidConfiguration }

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// MachineError reports a lifecycle call made in the wrong machine state
type MachineError struct {
	Code      ErrorCode
	Operation string
	Message   string
}

func (e *MachineError) Error() string {
	return fmt.Sprintf("machine error during %s: %s", e.Operation, e.Message)
}

func (e *MachineError) errorCode() ErrorCode { return e.Code }

// NewMachineNotStartedError reports operation on a stopped or finished machine
func NewMachineNotStartedError(operation string) *MachineError {
	return &MachineError{
		Code:      ErrCodeMachineNotStarted,
		Operation: operation,
		Message:   "state machine is not started",
	}
}

// NewAlreadyStartedError reports a second Start
func NewAlreadyStartedError() *MachineError {
	return &MachineError{
		Code:      ErrCodeAlreadyStarted,
		Operation: "Start",
		Message:   "machine is already started",
	}
}

// ActionError wraps the failure of an entry, exit or transition action
type ActionError struct {
	Action      string
	State       string
	OriginalErr error
}

func (e *ActionError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("action '%s' failed in state '%s': %v", e.Action, e.State, e.OriginalErr)
	}
	return fmt.Sprintf("action '%s' failed in state '%s'", e.Action, e.State)
}

func (e *ActionError) Unwrap() error {
	return e.OriginalErr
}

func (e *ActionError) errorCode() ErrorCode { return ErrCodeActionFailed }

// NewActionError creates a new action error; kind is "entry", "exit" or "transition"
func NewActionError(kind, state string, err error) *ActionError {
	return &ActionError{
		Action:      kind,
		State:       state,
		OriginalErr: err,
	}
}

// Error type checks look through wrapping.

func IsStateError(err error) bool         { return as[*StateError](err) }
func IsTransitionError(err error) bool    { return as[*TransitionError](err) }
func IsGuardError(err error) bool         { return as[*GuardError](err) }
func IsConfigurationError(err error) bool { return as[*ConfigurationError](err) }
func IsMachineError(err error) bool       { return as[*MachineError](err) }
func IsActionError(err error) bool        { return as[*ActionError](err) }

func as[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// GetErrorCode returns the code of the outermost engine error in err's chain
func GetErrorCode(err error) ErrorCode {
	var coded codedError
	if errors.As(err, &coded) {
		return coded.errorCode()
	}
	return ErrCodeNone
}
