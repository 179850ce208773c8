package signalctl

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"error":   LogError,
		"WARN":    LogWarning,
		"warning": LogWarning,
		"":        LogInfo,
		" info ":  LogInfo,
		"debug":   LogDebug,
	}
	for input, want := range tests {
		got, err := ParseLogLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLogLevel("loud")
	assert.True(t, IsConfigurationError(err))
}

func TestLoggingObserverLevels(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewLoggingObserver(LogWarning, "3f2b8c1e", out)

	logger.Debugf("hidden %d", 1)
	logger.Infof("hidden %d", 2)
	logger.Warnf("shown %d", 3)
	logger.Errorf("shown %d", 4)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `level=warning msg="shown 3" session=3f2b8c1e`, lines[0])
	assert.Equal(t, `level=error msg="shown 4" session=3f2b8c1e`, lines[1])
	assert.True(t, logger.Enabled(LogError))
	assert.False(t, logger.Enabled(LogInfo))

	logger.SetLevel(LogDebug)
	assert.True(t, logger.Enabled(LogDebug))
}

func TestLoggingObserverWithoutSession(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewLoggingObserver(LogInfo, "", out)

	logger.Infof("hello")

	assert.Equal(t, "level=info msg=hello\n", out.String())
}

func TestLoggingObserverFormatter(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewLoggingObserver(LogInfo, "3f2b8c1e", out)
	logger.SetFormatter(&log.JSONFormatter{DisableTimestamp: true})

	logger.WithFields(log.Fields{"signals": 5}).Info("sensor round")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "sensor round", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "3f2b8c1e", line["session"])
	assert.Equal(t, float64(5), line["signals"])
}

func TestLoggingObserverWatchesStore(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewLoggingObserver(LogDebug, "", out)
	store, err := NewStore(DefaultLocations(), WithClock(NewManualClock(start)), WithObservers(logger))
	require.NoError(t, err)
	sig, _ := store.Get("Mirpur 10")

	store.Change(sig, Green)
	assert.Contains(t, out.String(), `level=debug msg="signal changed" color=Green location="Mirpur 10" previous=Red`)
	assert.NotContains(t, out.String(), "level=warning")

	store.Change(sig, Color("purple"))
	assert.Contains(t, out.String(), `level=warning msg="unrecognized signal color" color=purple location="Mirpur 10"`)

	require.Error(t, store.CheckReady(sig, DefaultGateInterval))
	assert.Contains(t, out.String(), `level=info msg="change rejected"`)

	store.Observers().NotifyError(errors.New("disk full"))
	assert.Contains(t, out.String(), `level=error msg="signal observer failed" error="disk full"`)
}
