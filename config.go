package signalctl

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultLocations are the signals created when no configuration says otherwise
func DefaultLocations() []string {
	return []string{"Mirpur 10", "Dhanmondi 27", "Green road", "Gulshan 1", "Aftabnagar"}
}

// Config holds every tunable of the program
type Config struct {
	LogFile          string         `yaml:"log_file"`
	LogLevel         string         `yaml:"log_level"`
	GateInterval     time.Duration  `yaml:"gate_interval"`
	Locations        []string       `yaml:"locations"`
	Thresholds       map[string]int `yaml:"thresholds"`
	DefaultThreshold int            `yaml:"default_threshold"`
	Sensor           SensorConfig   `yaml:"sensor"`
}

// SensorConfig controls the random sensor simulation
type SensorConfig struct {
	// MaxCount is the exclusive upper bound of a draw
	MaxCount int `yaml:"max_count"`
	// VehicleType is the type the draws are decided as
	VehicleType string `yaml:"vehicle_type"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		LogFile:          DefaultLogFile,
		LogLevel:         "warn",
		GateInterval:     DefaultGateInterval,
		Locations:        DefaultLocations(),
		Thresholds:       DefaultThresholds(),
		DefaultThreshold: DefaultFallbackThreshold,
		Sensor: SensorConfig{
			MaxCount:    400,
			VehicleType: VehicleCar,
		},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys absent from the file
// keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read config %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over the defaults and validates the result
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	// thresholds from the file replace the table rather than merging into it
	cfg.Thresholds = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "can't parse config")
	}
	if cfg.Thresholds == nil {
		cfg.Thresholds = DefaultThresholds()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the program cannot run with
func (c *Config) Validate() error {
	if len(c.Locations) == 0 {
		return NewConfigurationError("locations", "at least one location is required")
	}
	seen := make(map[string]bool, len(c.Locations))
	for _, loc := range c.Locations {
		key := NormalizeKey(loc)
		if key == "" {
			return NewConfigurationError("locations", "empty location name")
		}
		if seen[key] {
			return NewConfigurationError("locations", fmt.Sprintf("duplicate location '%s'", strings.TrimSpace(loc)))
		}
		seen[key] = true
	}
	if c.GateInterval <= 0 {
		return NewConfigurationError("gate_interval", "must be positive")
	}
	vehicles := make(map[string]string, len(c.Thresholds))
	for vehicle, t := range c.Thresholds {
		if t < 0 {
			return NewConfigurationError("thresholds", fmt.Sprintf("negative threshold for '%s'", vehicle))
		}
		key := NormalizeKey(vehicle)
		if key == "" {
			return NewConfigurationError("thresholds", "empty vehicle type")
		}
		if other, dup := vehicles[key]; dup {
			return NewConfigurationError("thresholds", fmt.Sprintf("vehicle type '%s' given twice ('%s', '%s')", key, other, vehicle))
		}
		vehicles[key] = vehicle
	}
	if c.DefaultThreshold < 0 {
		return NewConfigurationError("default_threshold", "must not be negative")
	}
	if c.Sensor.MaxCount <= 0 {
		return NewConfigurationError("sensor.max_count", "must be positive")
	}
	if strings.TrimSpace(c.Sensor.VehicleType) == "" {
		return NewConfigurationError("sensor.vehicle_type", "must not be empty")
	}
	if strings.TrimSpace(c.LogFile) == "" {
		return NewConfigurationError("log_file", "must not be empty")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed diagnostic log level
func (c *Config) Level() LogLevel {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return LogWarning
	}
	return level
}

// Policy builds the decision policy described by the configuration
func (c *Config) Policy() *ThresholdPolicy {
	return NewThresholdPolicy(c.Thresholds, c.DefaultThreshold)
}
