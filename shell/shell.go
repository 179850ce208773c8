// Package shell drives the interactive traffic signal menu.
//
// A Shell reads menu choices from its input, runs the matching operation on
// the session's signal store and repaints the menu with the resulting status
// line. Navigation between the menu and the operation screens is a small
// state machine built with package fsm.
package shell

import (
	"context"

	"github.com/anggasct/signalctl/fsm"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Shell is the menu loop of one session
type Shell struct {
	session *Session
	machine *fsm.StateMachine
	metrics *fsm.MetricsObserver
}

// New creates a shell for session
func New(session *Session) *Shell {
	machine := BuildMenuMachine(session).CreateInstance()
	metrics := fsm.NewMetricsObserver()
	machine.AddObserver(newMachineLogger(session.Logger))
	machine.AddObserver(metrics)
	return &Shell{
		session: session,
		machine: machine,
		metrics: metrics,
	}
}

// Session returns the session the shell works on
func (sh *Shell) Session() *Session {
	return sh.session
}

// Machine returns the menu machine
func (sh *Shell) Machine() *fsm.StateMachine {
	return sh.machine
}

// Metrics returns the menu usage counters
func (sh *Shell) Metrics() *fsm.MetricsObserver {
	return sh.metrics
}

// Run shows the menu and handles choices until Exit is picked or the input
// ends. Running out of input is a normal exit.
func (sh *Shell) Run(ctx context.Context) error {
	if err := sh.start(); err != nil {
		return err
	}
	defer sh.reportUsage()
	defer sh.stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sh.session.redraw()
		choice, err := sh.session.prompt.ReadInt(choicePrompt)
		if err != nil {
			return sh.finish(err)
		}
		if err := sh.Select(ctx, choice); err != nil {
			return sh.finish(err)
		}
		if sh.machine.IsFinished() {
			return nil
		}
	}
}

// Select handles one menu choice. After an operation the shell waits for
// Enter before returning to the menu; an unknown choice only sets the status.
func (sh *Shell) Select(ctx context.Context, choice int) error {
	if err := sh.start(); err != nil {
		return err
	}

	event, ok := eventFor(choice)
	if !ok {
		sh.session.status = invalidChoice
		return nil
	}

	result := sh.machine.HandleEventWithContext(ctx, event, choice)
	if result.Error != nil {
		return result.Error
	}
	if !result.Processed {
		return errors.Errorf("menu choice %d not accepted: %s", choice, result.RejectionReason)
	}
	if sh.machine.IsFinished() {
		return nil
	}

	if err := sh.session.prompt.Pause(); err != nil {
		return err
	}
	if result := sh.machine.HandleEventWithContext(ctx, EventAck, nil); !result.Success() {
		return errors.Errorf("can't return to menu: %s", result.RejectionReason)
	}
	return nil
}

// start starts the menu machine unless it is already running or finished
func (sh *Shell) start() error {
	if sh.machine.Status() != fsm.MachineStateStopped {
		return nil
	}
	return sh.machine.Start()
}

// stop stops a running menu machine; a finished one stays finished
func (sh *Shell) stop() {
	if sh.machine.Status() == fsm.MachineStateStarted {
		sh.machine.Stop()
	}
}

func (sh *Shell) finish(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return sh.session.Exit()
	}
	return err
}

// reportUsage logs how often each menu event fired, one field per event
func (sh *Shell) reportUsage() {
	fields := lo.MapEntries(sh.metrics.GetEventCounts(), func(event string, n int) (string, interface{}) {
		return event, n
	})
	fields["errors"] = sh.metrics.GetErrorCount()
	sh.session.Logger.WithFields(fields).Debug("menu usage")
}
