package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anggasct/signalctl"
	"github.com/stretchr/testify/require"
)

// fixedSource replays counts in order and remembers the bounds asked for
type fixedSource struct {
	values []int
	next   int
	bounds []int
}

func (f *fixedSource) Intn(n int) int {
	f.bounds = append(f.bounds, n)
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

type fixture struct {
	session *Session
	shell   *Shell
	clock   *signalctl.ManualClock
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	logPath string
	random  *fixedSource
}

func newFixture(t *testing.T, input string, counts ...int) *fixture {
	t.Helper()

	cfg := signalctl.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "traffic_log.txt")
	cfg.LogLevel = "info"

	f := &fixture{
		clock:   signalctl.NewManualClock(time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)),
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
		logPath: cfg.LogFile,
		random:  &fixedSource{values: counts},
	}
	if len(counts) == 0 {
		f.random.values = []int{0}
	}

	session, err := Setup(cfg, strings.NewReader(input), f.out, f.errOut, Options{
		ID:     "3f2b8c1e-0000-4000-8000-000000000000",
		Clock:  f.clock,
		Random: f.random,
	})
	require.NoError(t, err)

	f.session = session
	f.shell = New(session)
	return f
}

func (f *fixture) logLines(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.logPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func (f *fixture) color(t *testing.T, location string) signalctl.Color {
	t.Helper()
	sig, ok := f.session.Store.Get(location)
	require.True(t, ok, "no signal at %s", location)
	return sig.Color
}
