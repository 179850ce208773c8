package signalctl

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObserverManagerAddRemove(t *testing.T) {
	om := NewObserverManager()
	a := &recordingObserver{}
	b := &recordingObserver{}
	om.AddObserver(a)
	om.AddObserver(b)
	assert.Equal(t, 2, om.Len())

	sig := NewSignal("Mirpur 10", time.Time{})
	om.NotifySignalChange(sig, Red, "one")
	om.RemoveObserver(a)
	om.NotifySignalChange(sig, Red, "two")

	assert.Equal(t, 1, om.Len())
	assert.Equal(t, []string{"one"}, a.messages)
	assert.Equal(t, []string{"one", "two"}, b.messages)
}

func TestObserverManagerSkipsPlainObservers(t *testing.T) {
	om := NewObserverManager()
	om.AddObserver(NewConsoleObserver(&bytes.Buffer{}))
	om.AddObserver(panickingObserver{})

	assert.NotPanics(t, func() {
		om.NotifyChangeRejected("Mirpur 10", NewNotReadyError("Mirpur 10", ""))
		om.NotifySignalChange(NewSignal("Mirpur 10", time.Time{}), Red, "x")
	})
}

func TestConsoleObserver(t *testing.T) {
	out := &bytes.Buffer{}
	console := NewConsoleObserver(out)

	console.OnSignalChange(NewSignal("Green road", time.Time{}), Red, "Signal at Green road changed to Red")

	assert.Equal(t, "Signal at Green road changed to Red\n", out.String())
}

func TestSignalAndColor(t *testing.T) {
	sig := NewSignal("Dhanmondi 27", start)

	assert.Equal(t, "Dhanmondi 27: Red", sig.String())
	assert.Equal(t, "dhanmondi 27", sig.Key())
	assert.Equal(t, []Color{Red, Yellow, Green}, Colors())
	assert.True(t, Yellow.Valid())
	assert.False(t, Color("green").Valid())
}
