package signalctl

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Store owns every signal, keyed by normalized location.
//
// Signals are created once in NewStore and never added or removed. A Store is
// not safe for concurrent use.
type Store struct {
	signals   []*Signal
	index     map[string]*Signal
	clock     Clock
	observers *ObserverManager
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock sets the time source used for timestamps and the gate check
func WithClock(clock Clock) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithObservers registers observers notified on every change
func WithObservers(observers ...Observer) StoreOption {
	return func(s *Store) {
		for _, o := range observers {
			s.observers.AddObserver(o)
		}
	}
}

// NewStore creates a red signal for every location, in the given order
func NewStore(locations []string, opts ...StoreOption) (*Store, error) {
	if len(locations) == 0 {
		return nil, NewConfigurationError("Store", "no locations defined")
	}

	s := &Store{
		clock:     SystemClock{},
		observers: NewObserverManager(),
	}
	for _, opt := range opts {
		opt(s)
	}

	now := s.clock.Now()
	for _, loc := range locations {
		name := strings.TrimSpace(loc)
		if name == "" {
			return nil, NewConfigurationError("Store", "empty location name")
		}
		s.signals = append(s.signals, NewSignal(name, now))
	}

	s.index = lo.SliceToMap(s.signals, func(sig *Signal) (string, *Signal) {
		return sig.Key(), sig
	})
	if len(s.index) != len(s.signals) {
		dups := lo.FindDuplicatesBy(s.signals, func(sig *Signal) string { return sig.Key() })
		return nil, NewConfigurationError("Store", fmt.Sprintf("duplicate location '%s'", dups[0].Location))
	}

	return s, nil
}

// AddObserver registers an observer after construction
func (s *Store) AddObserver(observer Observer) {
	s.observers.AddObserver(observer)
}

// Observers exposes the manager so callers can report rejections
func (s *Store) Observers() *ObserverManager {
	return s.observers
}

// Clock returns the store's time source
func (s *Store) Clock() Clock {
	return s.clock
}

// Get looks a signal up by location, ignoring case and surrounding whitespace
func (s *Store) Get(location string) (*Signal, bool) {
	sig, ok := s.index[NormalizeKey(location)]
	return sig, ok
}

// Lookup is Get returning a LocationError for unknown locations
func (s *Store) Lookup(location string) (*Signal, error) {
	sig, ok := s.Get(location)
	if !ok {
		return nil, NewLocationError(strings.TrimSpace(location))
	}
	return sig, nil
}

// Signals returns all signals in insertion order
func (s *Store) Signals() []*Signal {
	out := make([]*Signal, len(s.signals))
	copy(out, s.signals)
	return out
}

// Locations returns the display names in insertion order
func (s *Store) Locations() []string {
	return lo.Map(s.signals, func(sig *Signal, _ int) string {
		return sig.Location
	})
}

// Len returns the number of signals
func (s *Store) Len() int {
	return len(s.signals)
}

// Change sets the signal color and stamps it with the current time.
// The same color is accepted and still recorded. The returned message has
// already been passed to every observer.
func (s *Store) Change(sig *Signal, color Color) string {
	previous := sig.Color
	sig.Color = color
	sig.LastChanged = s.clock.Now()

	message := fmt.Sprintf("Signal at %s changed to %s", sig.Location, color)
	s.observers.NotifySignalChange(sig, previous, message)
	return message
}

// ReadyForChange reports whether at least min has elapsed since the last change
func (s *Store) ReadyForChange(sig *Signal, min time.Duration) bool {
	return s.clock.Now().Sub(sig.LastChanged) >= min
}

// CheckReady is ReadyForChange returning a NotReadyError inside the gate
func (s *Store) CheckReady(sig *Signal, min time.Duration) error {
	elapsed := s.clock.Now().Sub(sig.LastChanged)
	if elapsed >= min {
		return nil
	}
	err := NewNotReadyError(sig.Location, (min - elapsed).Round(time.Millisecond).String())
	s.observers.NotifyChangeRejected(sig.Location, err)
	return err
}

// Apply asks the policy for a color and changes the signal to it
func (s *Store) Apply(sig *Signal, policy Policy, vehicleType string, count int, emergency bool) Color {
	color := policy.Decide(vehicleType, count, emergency)
	s.Change(sig, color)
	return color
}
