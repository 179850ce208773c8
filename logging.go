package signalctl

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// LogLevel is the diagnostic log level
type LogLevel = log.Level

const (
	// LogError logs only errors
	LogError = log.ErrorLevel
	// LogWarning logs errors and warnings
	LogWarning = log.WarnLevel
	// LogInfo logs errors, warnings, and info
	LogInfo = log.InfoLevel
	// LogDebug logs errors, warnings, info, and debug
	LogDebug = log.DebugLevel
)

// ParseLogLevel converts a configuration value such as "warn" into a LogLevel.
// An empty value means info.
func ParseLogLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LogInfo, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return LogInfo, NewConfigurationError("log_level", fmt.Sprintf("unknown level '%s'", s))
	}
	return level, nil
}

// LoggingObserver writes leveled diagnostics about signal activity.
// It is separate from the EventLog, which is the persisted record.
type LoggingObserver struct {
	logger *log.Logger
	entry  *log.Entry
}

// NewLoggingObserver creates a logging observer writing text lines to out.
// A non-empty session is attached to every line as the "session" field.
func NewLoggingObserver(level LogLevel, session string, out io.Writer) *LoggingObserver {
	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	entry := log.NewEntry(logger)
	if session != "" {
		entry = entry.WithField("session", session)
	}
	return &LoggingObserver{logger: logger, entry: entry}
}

// SetFormatter replaces the line formatter
func (o *LoggingObserver) SetFormatter(formatter log.Formatter) {
	o.logger.SetFormatter(formatter)
}

// SetLevel changes the most verbose level written
func (o *LoggingObserver) SetLevel(level LogLevel) {
	o.logger.SetLevel(level)
}

// Enabled reports whether messages at level are written
func (o *LoggingObserver) Enabled(level LogLevel) bool {
	return o.logger.IsLevelEnabled(level)
}

// WithFields starts a structured line carrying the session field
func (o *LoggingObserver) WithFields(fields log.Fields) *log.Entry {
	return o.entry.WithFields(fields)
}

func (o *LoggingObserver) Errorf(format string, args ...interface{}) {
	o.entry.Errorf(format, args...)
}

func (o *LoggingObserver) Warnf(format string, args ...interface{}) {
	o.entry.Warnf(format, args...)
}

func (o *LoggingObserver) Infof(format string, args ...interface{}) {
	o.entry.Infof(format, args...)
}

func (o *LoggingObserver) Debugf(format string, args ...interface{}) {
	o.entry.Debugf(format, args...)
}

// OnSignalChange logs changes, warning on colors outside Red/Yellow/Green
func (o *LoggingObserver) OnSignalChange(signal *Signal, previous Color, message string) {
	fields := log.Fields{"location": signal.Location, "color": string(signal.Color)}
	if !signal.Color.Valid() {
		o.entry.WithFields(fields).Warn("unrecognized signal color")
	}
	fields["previous"] = string(previous)
	o.entry.WithFields(fields).Debug("signal changed")
}

// OnChangeRejected logs refused changes
func (o *LoggingObserver) OnChangeRejected(location string, err error) {
	o.entry.WithField("location", location).WithError(err).Info("change rejected")
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error) {
	o.entry.WithError(err).Error("signal observer failed")
}
