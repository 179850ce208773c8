package fsm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserver(t *testing.T) {
	machine := CreateSimpleMachine()
	metrics := NewMetricsObserver()
	clock := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	metrics.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	machine.AddObserver(metrics)

	require.NoError(t, machine.Start())
	machine.HandleEvent("start", nil)
	machine.HandleEvent("stop", nil)
	machine.HandleEvent("reset", nil)
	machine.HandleEvent("start", nil)
	machine.HandleEvent("bogus", nil)

	assert.Equal(t, map[string]int{"idle": 2, "running": 2, "stopped": 1}, metrics.GetStateVisitCounts())
	assert.Equal(t, map[string]int{"start": 2, "stop": 1, "reset": 1}, metrics.GetEventCounts())
	assert.Equal(t, 2, metrics.GetTransitionCounts()["idle->running"])
	assert.Equal(t, 1, metrics.GetTransitionCounts()["stopped->idle"])
	assert.Equal(t, 0, metrics.GetErrorCount())

	spent := metrics.GetStateTimeSpent()
	assert.Greater(t, int64(spent["idle"]), int64(0))
	assert.Contains(t, spent, "stopped")

	metrics.OnError(errors.New("boom"), machine.Context())
	assert.Equal(t, 1, metrics.GetErrorCount())

	metrics.Reset()
	assert.Empty(t, metrics.GetStateVisitCounts())
	assert.Zero(t, metrics.GetErrorCount())
}
