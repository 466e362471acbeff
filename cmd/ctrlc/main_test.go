package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srozzo/go-ctrlc"
	"github.com/srozzo/go-ctrlc/internal/config"
)

// fakeSource delivers raised signals to whatever channel the bridge handed it.
type fakeSource struct {
	mu   sync.Mutex
	c    chan<- os.Signal
	sigs map[os.Signal]bool
}

func (f *fakeSource) Notify(c chan<- os.Signal, sigs ...os.Signal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c = c
	if f.sigs == nil {
		f.sigs = make(map[os.Signal]bool)
	}
	for _, s := range sigs {
		f.sigs[s] = true
	}
}

func (f *fakeSource) raise(sig os.Signal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.c == nil || !f.sigs[sig] {
		return
	}
	select {
	case f.c <- sig:
	default:
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// execute runs the root command and keeps raising sig until it returns.
func execute(t *testing.T, sig os.Signal, args ...string) (string, error) {
	t.Helper()
	return executeWith(t, &fakeSource{}, sig, args...)
}

func executeWith(t *testing.T, src *fakeSource, sig os.Signal, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(log *slog.Logger) *ctrlc.Bridge {
		return ctrlc.New(ctrlc.WithSource(src), ctrlc.WithLogger(log))
	})
	var out lockedBuffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	errc := make(chan error, 1)
	go func() { errc <- cmd.Execute() }()

	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(5 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case err := <-errc:
			return out.String(), err
		case <-tick.C:
			src.raise(sig)
		case <-deadline:
			t.Fatalf("command did not exit; output:\n%s", out.String())
		}
	}
}

func TestRun_HandlerMode(t *testing.T) {
	out, err := execute(t, os.Interrupt, "--log-level", "fail")
	require.NoError(t, err)
	assert.Equal(t, "Waiting for Ctrl-C...\nGot it! Exiting...\n", out)
}

func TestRun_WaiterModeCount(t *testing.T) {
	out, err := execute(t, os.Interrupt, "--mode", "waiter", "--count", "3", "--log-level", "fail")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "Got it! Exiting...\n"), out)
}

func TestRun_ConfigFileAndLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "ctrlc.log")
	cfgPath := filepath.Join(dir, "ctrlc.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
signals = ["interrupt"]
count = 2

[log]
level = "info"
file = "`+filepath.ToSlash(logPath)+`"
`), 0o600))

	_, err := execute(t, os.Interrupt, "--config", cfgPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] notification | n=2")
}

func TestRun_HandlerModeStopsLoggingAfterExit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctrlc.log")
	src := &fakeSource{}
	out, err := executeWith(t, src, os.Interrupt, "--count", "1", "--log-level", "info", "--log-file", logPath)
	require.NoError(t, err)
	assert.Equal(t, "Waiting for Ctrl-C...\nGot it! Exiting...\n", out)

	// The dispatch loop is still installed; later signals must not touch the log.
	for i := 0; i < 5; i++ {
		src.raise(os.Interrupt)
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "notification"), string(data))
	assert.Contains(t, string(data), "[INFO] notification | n=1")
}

func TestNewLogger_StderrCloserIsNoop(t *testing.T) {
	log, closer := newLogger(config.Log{Level: "warn"})
	require.NotNil(t, log)
	assert.NoError(t, closer.Close())
	assert.NoError(t, closer.Close())
}

func TestRun_RejectsBadInput(t *testing.T) {
	cmd := newRootCmd(defaultBridge)
	cmd.SetArgs([]string{"--signal", "NOPE"})
	cmd.SetOut(&bytes.Buffer{})
	require.ErrorIs(t, cmd.Execute(), ctrlc.ErrUnknownSignal)

	cmd = newRootCmd(defaultBridge)
	cmd.SetArgs([]string{"--mode", "poll"})
	cmd.SetOut(&bytes.Buffer{})
	require.ErrorIs(t, cmd.Execute(), config.ErrInvalid)
}

func TestSignalsCommand(t *testing.T) {
	cmd := newRootCmd(defaultBridge)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"signals"})
	require.NoError(t, cmd.Execute())

	lines := strings.Fields(out.String())
	require.NotEmpty(t, lines)
	assert.Equal(t, "SIGINT", lines[0])
}
