package shell

import (
	"github.com/anggasct/signalctl"
	"github.com/anggasct/signalctl/fsm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// machineLogger reports menu machine activity through the session logger
type machineLogger struct {
	fsm.BaseObserver
	log *signalctl.LoggingObserver
}

func newMachineLogger(logger *signalctl.LoggingObserver) *machineLogger {
	return &machineLogger{log: logger}
}

func (l *machineLogger) OnTransition(from string, to string, event fsm.Event, ctx fsm.Context) {
	fields := log.Fields{"from": from, "to": to}
	if event != nil {
		fields["event"] = event.GetName()
		fields["event_id"] = event.GetID()
	}
	l.log.WithFields(fields).Debug("menu transition")
}

func (l *machineLogger) OnEventRejected(event fsm.Event, reason string, ctx fsm.Context) {
	l.log.WithFields(log.Fields{"event": event.GetName(), "reason": reason}).Info("menu event rejected")
}

func (l *machineLogger) OnError(err error, ctx fsm.Context) {
	entry := l.log.WithFields(log.Fields{"state": ctx.GetCurrentState()}).WithError(err)
	if errors.Is(err, ErrInputClosed) {
		entry.Debug("menu input closed")
		return
	}
	entry.Error("menu action failed")
}

func (l *machineLogger) OnMachineStarted(ctx fsm.Context) {
	l.log.WithFields(log.Fields{"state": ctx.GetCurrentState()}).Debug("menu started")
}
