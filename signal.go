package signalctl

import (
	"fmt"
	"time"
)

// Signal is the mutable state of a single traffic light
type Signal struct {
	// Location is the display name, e.g. "Mirpur 10"
	Location string
	// Color is the current aspect
	Color Color
	// LastChanged is refreshed on every change, including a change to the same color
	LastChanged time.Time
}

// NewSignal creates a red signal last changed at the given time
func NewSignal(location string, now time.Time) *Signal {
	return &Signal{
		Location:    location,
		Color:       Red,
		LastChanged: now,
	}
}

// Key returns the normalized lookup key of the signal
func (s *Signal) Key() string {
	return NormalizeKey(s.Location)
}

// String renders the signal the way the state listing shows it
func (s *Signal) String() string {
	return fmt.Sprintf("%s: %s", s.Location, s.Color)
}
