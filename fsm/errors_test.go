package fsm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"state not found", NewStateNotFoundError("x"), "state error [x]: state 'x' not found"},
		{"no transition", NewNoTransitionError("a", "go"), "transition error [a-> on go]: no transition found from state 'a' for event 'go'"},
		{"guard", NewGuardError("a", "b", "go", "guard panic: boom"), "guard failed [a->b on go]: guard panic: boom"},
		{"guard without cause", NewGuardError("a", "b", "go", ""), "guard failed [a->b on go]"},
		{"configuration", NewConfigurationError("MachineBuilder", "no initial state defined"), "configuration error in MachineBuilder: no initial state defined"},
		{"not started", NewMachineNotStartedError("Stop"), "machine error during Stop: state machine is not started"},
		{"action", NewActionError("entry", "b", errors.New("boom")), "action 'entry' failed in state 'b': boom"},
		{"action without cause", NewActionError("entry", "b", nil), "action 'entry' failed in state 'b'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, ErrCodeStateNotFound, GetErrorCode(NewStateNotFoundError("x")))
	assert.Equal(t, ErrCodeTransitionNotAllowed, GetErrorCode(NewNoTransitionError("a", "b")))
	assert.Equal(t, ErrCodeGuardRejected, GetErrorCode(NewGuardError("a", "b", "c", "")))
	assert.Equal(t, ErrCodeInvalidConfiguration, GetErrorCode(NewConfigurationError("x", "y")))
	assert.Equal(t, ErrCodeMachineNotStarted, GetErrorCode(NewMachineNotStartedError("x")))
	assert.Equal(t, ErrCodeActionFailed, GetErrorCode(NewActionError("a", "b", nil)))
	assert.Equal(t, ErrCodeAlreadyStarted, GetErrorCode(NewAlreadyStartedError()))
	assert.Equal(t, ErrCodeNone, GetErrorCode(errors.New("plain")))
}

func TestErrorChecksSeeThroughWrapping(t *testing.T) {
	guardErr := NewGuardError("a", "b", "go", "boom")
	wrapped := fmt.Errorf("handling go: %w", guardErr)

	assert.True(t, IsGuardError(wrapped))
	assert.False(t, IsMachineError(wrapped))
	assert.Equal(t, ErrCodeGuardRejected, GetErrorCode(wrapped))

	nested := NewActionError("entry", "b", NewStateNotFoundError("c"))
	assert.True(t, IsStateError(nested))
	assert.Equal(t, ErrCodeActionFailed, GetErrorCode(nested))
}

func TestStartTwice(t *testing.T) {
	machine := CreateSimpleMachine()
	assert.NoError(t, machine.Start())

	err := machine.Start()
	assert.True(t, IsMachineError(err))
	assert.Equal(t, ErrCodeAlreadyStarted, GetErrorCode(err))
}

func TestActionErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewActionError("entry", "b", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsActionError(err))
	assert.False(t, IsStateError(err))
	assert.False(t, IsTransitionError(err))
	assert.False(t, IsConfigurationError(err))
}
