package signalctl

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// DefaultLogFile is the event log path, relative to the working directory
const DefaultLogFile = "traffic_log.txt"

// TimestampLayout renders event times like "Sat Oct 17 18:36:00 UTC 2026"
const TimestampLayout = "Mon Jan 02 15:04:05 MST 2006"

// EventLog appends human readable event lines to a text file.
//
// The file is opened and closed on every write; no handle is held between
// events.
type EventLog struct {
	BaseObserver

	path  string
	clock Clock
	warn  io.Writer
}

// NewEventLog creates an event log writing to path. Failed writes are reported
// to warn.
func NewEventLog(path string, clock Clock, warn io.Writer) *EventLog {
	if clock == nil {
		clock = SystemClock{}
	}
	if warn == nil {
		warn = io.Discard
	}
	return &EventLog{
		path:  path,
		clock: clock,
		warn:  warn,
	}
}

// Path returns the log file path
func (l *EventLog) Path() string {
	return l.path
}

// Format renders a log line for message
func (l *EventLog) Format(message string) string {
	return fmt.Sprintf("%s: %s\n", l.clock.Now().Format(TimestampLayout), message)
}

// Append writes one line to the log, creating the file if needed
func (l *EventLog) Append(message string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return NewLogWriteError(l.path, errors.Wrap(err, "can't open log file"))
	}

	if _, err := io.WriteString(f, l.Format(message)); err != nil {
		f.Close()
		return NewLogWriteError(l.path, errors.Wrap(err, "can't write log entry"))
	}

	if err := f.Close(); err != nil {
		return NewLogWriteError(l.path, errors.Wrap(err, "can't close log file"))
	}
	return nil
}

// Record appends message and reports a failure as a warning instead of
// returning it
func (l *EventLog) Record(message string) {
	if err := l.Append(message); err != nil {
		fmt.Fprintf(l.warn, "Logging failed: %v\n", err)
	}
}

// OnSignalChange records every change passing through a Store
func (l *EventLog) OnSignalChange(signal *Signal, previous Color, message string) {
	l.Record(message)
}
