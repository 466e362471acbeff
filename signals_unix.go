//go:build unix

package ctrlc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// DefaultSignals is what SetHandler installs when given no signals.
func DefaultSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// TerminationSignals are the signals conventionally used to ask a process to
// stop: Ctrl-C, service managers, a closed terminal, and Ctrl-\.
func TerminationSignals() []os.Signal {
	return []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT}
}

// ParseSignal resolves "INT", "SIGINT", "sigint", "interrupt" or a signal
// number.
func ParseSignal(name string) (os.Signal, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(name)); err == nil {
		s := syscall.Signal(n)
		if n <= 0 || unix.SignalName(s) == "" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, name)
		}
		return s, nil
	}
	s := unix.SignalNum(normalizeName(name))
	if s == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, name)
	}
	return s, nil
}

// SignalName returns the SIGxxx name of sig, or its String form when it has
// none.
func SignalName(sig os.Signal) string {
	if sig == nil {
		return "<nil>"
	}
	if s, ok := sig.(syscall.Signal); ok {
		if name := unix.SignalName(s); name != "" {
			return name
		}
	}
	return sig.String()
}

func isSupported(sig os.Signal) bool {
	s, ok := sig.(syscall.Signal)
	if !ok || s <= 0 {
		return false
	}
	return s != unix.SIGKILL && s != unix.SIGSTOP
}
