package signalctl

import "strings"

// Policy decides the color of a signal from observed traffic
type Policy interface {
	Decide(vehicleType string, count int, emergency bool) Color
}

// Vehicle types with a dedicated threshold
const (
	VehicleBus   = "bus"
	VehicleTruck = "truck"
	VehicleCar   = "car"
	VehicleBike  = "bike"

	// VehicleEmergency is reported for emergency overrides; it has no threshold
	VehicleEmergency = "emergency"
)

// DefaultFallbackThreshold applies to vehicle types without their own entry
const DefaultFallbackThreshold = 150

// DefaultThresholds returns the per-type counts above which a signal turns green
func DefaultThresholds() map[string]int {
	return map[string]int{
		VehicleBus:   60,
		VehicleTruck: 80,
		VehicleCar:   150,
		VehicleBike:  300,
	}
}

// ThresholdPolicy turns a signal green when the count exceeds the threshold of
// its vehicle type, and red otherwise. Emergencies are always green.
type ThresholdPolicy struct {
	thresholds map[string]int
	fallback   int
}

// NewThresholdPolicy creates a policy. Keys of thresholds are matched
// case-insensitively.
func NewThresholdPolicy(thresholds map[string]int, fallback int) *ThresholdPolicy {
	normalized := make(map[string]int, len(thresholds))
	for k, v := range thresholds {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &ThresholdPolicy{
		thresholds: normalized,
		fallback:   fallback,
	}
}

// NewDefaultPolicy creates the policy with the built-in thresholds
func NewDefaultPolicy() *ThresholdPolicy {
	return NewThresholdPolicy(DefaultThresholds(), DefaultFallbackThreshold)
}

// Threshold returns the count a vehicle type has to exceed
func (p *ThresholdPolicy) Threshold(vehicleType string) int {
	if t, ok := p.thresholds[strings.ToLower(strings.TrimSpace(vehicleType))]; ok {
		return t
	}
	return p.fallback
}

// Decide implements Policy
func (p *ThresholdPolicy) Decide(vehicleType string, count int, emergency bool) Color {
	if emergency {
		return Green
	}
	if count > p.Threshold(vehicleType) {
		return Green
	}
	return Red
}
