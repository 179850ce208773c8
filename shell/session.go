package shell

import (
	"io"
	"math/rand"
	"time"

	"github.com/anggasct/signalctl"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// WelcomeMessage is the status shown before the first action
const WelcomeMessage = "Welcome to Intelligent Traffic Control System!"

// Source draws uniform integers in [0, n)
type Source interface {
	Intn(n int) int
}

// Options tunes a session; zero values select the defaults
type Options struct {
	// ID identifies the session in diagnostics, a random UUID by default
	ID string
	// Clock drives signal timestamps and the event log, the wall clock by default
	Clock signalctl.Clock
	// Random feeds the sensor simulation, a time-seeded generator by default
	Random Source
	// Logger receives diagnostics, discarded by default
	Logger *signalctl.LoggingObserver
}

// Session is everything one interactive run works on. Actions are methods on
// the session; nothing is kept in package state.
type Session struct {
	ID     string
	Config *signalctl.Config
	Store  *signalctl.Store
	Policy signalctl.Policy
	Logger *signalctl.LoggingObserver

	prompt *Prompter
	out    io.Writer
	rng    Source
	status string
}

// NewSession creates a session over an existing store and policy
func NewSession(cfg *signalctl.Config, store *signalctl.Store, policy signalctl.Policy, in io.Reader, out io.Writer, opts Options) *Session {
	if opts.ID == "" {
		opts.ID = uuid.New().String()
	}
	if opts.Random == nil {
		opts.Random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = signalctl.NewLoggingObserver(signalctl.LogError, "", io.Discard)
	}

	return &Session{
		ID:     opts.ID,
		Config: cfg,
		Store:  store,
		Policy: policy,
		Logger: opts.Logger,
		prompt: NewPrompter(in, out),
		out:    out,
		rng:    opts.Random,
		status: WelcomeMessage,
	}
}

// Setup wires a complete session from configuration: the event log, a store
// echoing changes to out, the threshold policy and a diagnostic logger on
// errOut.
func Setup(cfg *signalctl.Config, in io.Reader, out, errOut io.Writer, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.ID == "" {
		opts.ID = uuid.New().String()
	}
	if opts.Clock == nil {
		opts.Clock = signalctl.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = signalctl.NewLoggingObserver(cfg.Level(), ShortID(opts.ID), errOut)
	}

	eventLog := signalctl.NewEventLog(cfg.LogFile, opts.Clock, errOut)
	store, err := signalctl.NewStore(cfg.Locations,
		signalctl.WithClock(opts.Clock),
		signalctl.WithObservers(eventLog, signalctl.NewConsoleObserver(out), opts.Logger),
	)
	if err != nil {
		return nil, err
	}

	session := NewSession(cfg, store, cfg.Policy(), in, out, opts)
	session.Logger.WithFields(log.Fields{
		"session_id": session.ID,
		"signals":    store.Len(),
		"log_file":   eventLog.Path(),
	}).Debug("session started")
	return session, nil
}

// ShortID returns the first block of a UUID for log prefixes
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Status returns the message shown above the menu
func (s *Session) Status() string {
	return s.status
}

// SetStatus replaces the message shown above the menu
func (s *Session) SetStatus(status string) {
	s.status = status
}
