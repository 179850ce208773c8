package shell

import (
	"fmt"
	"math"
	"strings"

	"github.com/anggasct/signalctl"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// DisplayAll prints every signal in insertion order
func (s *Session) DisplayAll() error {
	s.status = "Current Signal States:"
	fmt.Fprint(s.out, clearScreen)
	fmt.Fprintln(s.out, s.status)
	fmt.Fprintln(s.out)
	for _, sig := range s.Store.Signals() {
		fmt.Fprintln(s.out, sig)
	}
	return nil
}

// ManualInput decides a signal from a vehicle count and type entered by the
// operator. The readiness gate is checked before the count is asked for.
func (s *Session) ManualInput() error {
	sig, err := s.selectSignal("Enter signal location: ")
	if err != nil || sig == nil {
		return err
	}
	if err := s.Store.CheckReady(sig, s.Config.GateInterval); err != nil {
		return s.reject(err)
	}

	count, err := s.prompt.ReadInt("Enter number of vehicles: ")
	if err != nil {
		return err
	}
	vehicle, err := s.prompt.ReadString("Enter vehicle type (car/bike/bus/truck): ")
	if err != nil {
		return err
	}

	color := s.Store.Apply(sig, s.Policy, vehicle, count, false)
	s.status = fmt.Sprintf("Manual input at %s: count=%d, type=%s. Now %s", sig.Location, count, vehicle, color)
	return nil
}

// ManualChange sets a signal to a color typed by the operator. The color is
// stored as typed; the readiness gate does not apply.
func (s *Session) ManualChange() error {
	sig, err := s.selectSignal("Enter signal location: ")
	if err != nil || sig == nil {
		return err
	}

	color, err := s.prompt.ReadString("Enter new signal color (Red/Yellow/Green): ")
	if err != nil {
		return err
	}

	s.Store.Change(sig, signalctl.Color(color))
	s.status = fmt.Sprintf("Manually changed %s to %s", sig.Location, color)
	return nil
}

// Emergency turns a signal green immediately, bypassing the gate
func (s *Session) Emergency() error {
	sig, err := s.selectSignal("Enter location of emergency vehicle: ")
	if err != nil || sig == nil {
		return err
	}

	s.Store.Apply(sig, s.Policy, signalctl.VehicleEmergency, 0, true)
	s.status = fmt.Sprintf("Emergency at %s. Signal turned Green.", sig.Location)
	return nil
}

// SensorReading is one simulated count and the color it produced
type SensorReading struct {
	Location string
	Count    int
	Color    signalctl.Color
}

// SensorReport summarizes one sensor simulation round
type SensorReport struct {
	Readings []SensorReading
	Mean     float64
	StdDev   float64
}

// Summary renders the status line for the round
func (r SensorReport) Summary() string {
	parts := lo.Map(r.Readings, func(reading SensorReading, _ int) string {
		return fmt.Sprintf("%s=%d", reading.Location, reading.Count)
	})
	return "Sensor Simulation: " + strings.Join(parts, " ")
}

// SensorSim runs one simulation round and shows its summary
func (s *Session) SensorSim() error {
	report := s.SimulateSensors()
	s.status = report.Summary()
	s.Logger.WithFields(log.Fields{
		"signals": len(report.Readings),
		"mean":    report.Mean,
		"stddev":  report.StdDev,
	}).Info("sensor round")
	return nil
}

// SimulateSensors draws a count for every signal in insertion order and
// decides each one with the configured sensor vehicle type. The readiness
// gate does not apply.
func (s *Session) SimulateSensors() SensorReport {
	vehicle := s.Config.Sensor.VehicleType
	report := SensorReport{}
	for _, sig := range s.Store.Signals() {
		count := s.rng.Intn(s.Config.Sensor.MaxCount)
		color := s.Store.Apply(sig, s.Policy, vehicle, count, false)
		report.Readings = append(report.Readings, SensorReading{Location: sig.Location, Count: count, Color: color})
	}

	counts := lo.Map(report.Readings, func(reading SensorReading, _ int) float64 {
		return float64(reading.Count)
	})
	if len(counts) > 0 {
		report.Mean = stat.Mean(counts, nil)
	}
	if len(counts) > 1 {
		report.StdDev = stat.StdDev(counts, nil)
	}
	if math.IsNaN(report.StdDev) {
		report.StdDev = 0
	}
	return report
}

// Exit says goodbye
func (s *Session) Exit() error {
	fmt.Fprintln(s.out, "Exiting system.")
	return nil
}

func (s *Session) selectSignal(prompt string) (*signalctl.Signal, error) {
	fmt.Fprintf(s.out, "Available signals: %s\n", strings.Join(s.Store.Locations(), ", "))
	location, err := s.prompt.ReadString(prompt)
	if err != nil {
		return nil, err
	}
	sig, err := s.Store.Lookup(location)
	if err != nil {
		return nil, s.reject(err)
	}
	return sig, nil
}

// reject turns a refused operation into the status line. Only input errors
// are returned.
func (s *Session) reject(err error) error {
	var notReady *signalctl.NotReadyError
	var unknown *signalctl.LocationError
	switch {
	case errors.As(err, &notReady):
		s.status = fmt.Sprintf("Signal at %s not ready to change yet.", notReady.Location)
	case errors.As(err, &unknown):
		s.Store.Observers().NotifyChangeRejected(unknown.Location, err)
		s.status = "Invalid location. Please try again."
	default:
		return err
	}
	return nil
}
