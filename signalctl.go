// Package signalctl models a small set of city traffic signals whose color is
// decided from vehicle counts against per-vehicle-type thresholds.
//
// The package provides the signal store, the decision policy, the append-only
// event log, configuration loading and leveled diagnostic logging. The
// interactive menu lives in the shell package.
package signalctl

import (
	"strings"
	"time"
)

// DefaultGateInterval is the minimum time a signal must hold its color before
// a traffic-volume driven change is accepted.
const DefaultGateInterval = 5000 * time.Millisecond

// NormalizeKey converts a location name into its lookup key.
func NormalizeKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}
