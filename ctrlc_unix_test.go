//go:build unix

package ctrlc

import (
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func raiseSelf(t *testing.T, sig syscall.Signal) {
	t.Helper()
	require.NoError(t, unix.Kill(os.Getpid(), sig))
}

func TestRealSignal_SharedFlag_Unix(t *testing.T) {
	b := New(WithLogger(nil))

	var running atomic.Bool
	running.Store(true)
	b.SetHandler(func() { running.Store(false) }, os.Interrupt)

	raiseSelf(t, unix.SIGINT)
	require.Eventually(t, func() bool { return !running.Load() }, 2*time.Second, 5*time.Millisecond)
}

func TestRealSignal_Waiter_Unix(t *testing.T) {
	b := New(WithLogger(nil))
	wait := b.GetWaiter(unix.SIGUSR1)

	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	raiseSelf(t, unix.SIGUSR1)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("waiter did not return after SIGUSR1")
	}
}

// Independent bridges route independently: SIGUSR2 must not wake a loop
// installed only for SIGUSR1.
func TestRealSignal_IndependentSets_Unix(t *testing.T) {
	b1 := New(WithLogger(nil))
	b2 := New(WithLogger(nil))

	var c1, c2 atomic.Int32
	b1.SetHandler(func() { c1.Add(1) }, unix.SIGUSR1)
	b2.SetHandler(func() { c2.Add(1) }, unix.SIGUSR2)

	raiseSelf(t, unix.SIGUSR2)
	require.Eventually(t, func() bool { return c2.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, c1.Load())
}

// Registering the same signal twice: os/signal keeps both relay channels, so
// both callbacks fire.
func TestRealSignal_DoubleRegistration_Unix(t *testing.T) {
	b := New(WithLogger(nil))

	var first, second atomic.Int32
	b.SetHandler(func() { first.Add(1) }, unix.SIGHUP)
	b.SetHandler(func() { second.Add(1) }, unix.SIGHUP)

	raiseSelf(t, unix.SIGHUP)
	require.Eventually(t, func() bool {
		return first.Load() >= 1 && second.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestValidate_Uncatchable_Unix(t *testing.T) {
	require.ErrorIs(t, Validate(unix.SIGKILL), ErrUnsupportedSignal)
	require.ErrorIs(t, Validate(unix.SIGSTOP), ErrUnsupportedSignal)
	require.NoError(t, Validate(unix.SIGUSR1, unix.SIGHUP))
}

func TestParseSignal_Unix(t *testing.T) {
	s, err := ParseSignal("hup")
	require.NoError(t, err)
	assert.Equal(t, unix.SIGHUP, s)

	s, err = ParseSignal("15")
	require.NoError(t, err)
	assert.Equal(t, unix.SIGTERM, s)

	_, err = ParseSignal("0")
	require.ErrorIs(t, err, ErrUnknownSignal)
	_, err = ParseSignal("-3")
	require.ErrorIs(t, err, ErrUnknownSignal)
}

func TestTerminationSignals_Unix(t *testing.T) {
	names := signalNames(TerminationSignals())
	assert.Equal(t, "SIGINT,SIGTERM,SIGHUP,SIGQUIT", names)
}
