package signalctl

import "fmt"

// ErrorCode represents specific error conditions of the signal system
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Location is not part of the store
	ErrCodeUnknownLocation
	// Signal changed too recently for a volume-driven change
	ErrCodeNotReady
	// Configuration is invalid
	ErrCodeInvalidConfiguration
	// Event log could not be written
	ErrCodeLogWrite
)

// LocationError is returned when a location does not name a signal
type LocationError struct {
	Location string
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("unknown location '%s'", e.Location)
}

// NewLocationError creates a new unknown location error
func NewLocationError(location string) *LocationError {
	return &LocationError{Location: location}
}

// NotReadyError is returned when a signal is still inside its gate interval
type NotReadyError struct {
	Location  string
	Remaining string
}

func (e *NotReadyError) Error() string {
	if e.Remaining != "" {
		return fmt.Sprintf("signal at %s not ready to change for another %s", e.Location, e.Remaining)
	}
	return fmt.Sprintf("signal at %s not ready to change", e.Location)
}

// NewNotReadyError creates a new gate error
func NewNotReadyError(location, remaining string) *NotReadyError {
	return &NotReadyError{
		Location:  location,
		Remaining: remaining,
	}
}

// ConfigurationError represents invalid configuration
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// LogWriteError represents a failed event log append
type LogWriteError struct {
	Path        string
	OriginalErr error
}

func (e *LogWriteError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("event log '%s': %v", e.Path, e.OriginalErr)
	}
	return fmt.Sprintf("event log '%s': write failed", e.Path)
}

func (e *LogWriteError) Unwrap() error {
	return e.OriginalErr
}

// NewLogWriteError creates a new log write error
func NewLogWriteError(path string, err error) *LogWriteError {
	return &LogWriteError{
		Path:        path,
		OriginalErr: err,
	}
}

// IsLocationError checks if an error is a LocationError
func IsLocationError(err error) bool {
	_, ok := err.(*LocationError)
	return ok
}

// IsNotReadyError checks if an error is a NotReadyError
func IsNotReadyError(err error) bool {
	_, ok := err.(*NotReadyError)
	return ok
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

// IsLogWriteError checks if an error is a LogWriteError
func IsLogWriteError(err error) bool {
	_, ok := err.(*LogWriteError)
	return ok
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	switch err.(type) {
	case *LocationError:
		return ErrCodeUnknownLocation
	case *NotReadyError:
		return ErrCodeNotReady
	case *ConfigurationError:
		return ErrCodeInvalidConfiguration
	case *LogWriteError:
		return ErrCodeLogWrite
	default:
		return ErrCodeNone
	}
}
