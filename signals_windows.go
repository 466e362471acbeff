//go:build windows

package ctrlc

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// DefaultSignals is what SetHandler installs when given no signals.
func DefaultSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// TerminationSignals are the only signals the runtime synthesizes from
// console control events.
func TerminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}

// ConsoleEvents returns the console control events that the runtime turns
// into sig.
func ConsoleEvents(sig os.Signal) []uint32 {
	switch sig {
	case os.Interrupt:
		return []uint32{windows.CTRL_C_EVENT, windows.CTRL_BREAK_EVENT}
	case syscall.SIGTERM:
		return []uint32{windows.CTRL_CLOSE_EVENT, windows.CTRL_LOGOFF_EVENT, windows.CTRL_SHUTDOWN_EVENT}
	default:
		return nil
	}
}

// ParseSignal resolves "INT", "SIGINT", "interrupt", "TERM" or "SIGTERM".
func ParseSignal(name string) (os.Signal, error) {
	switch normalizeName(name) {
	case "SIGINT":
		return os.Interrupt, nil
	case "SIGTERM":
		return syscall.SIGTERM, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, name)
}

// SignalName returns the SIGxxx name of sig, or its String form when it has
// none.
func SignalName(sig os.Signal) string {
	switch sig {
	case nil:
		return "<nil>"
	case os.Interrupt:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return sig.String()
	}
}

func isSupported(sig os.Signal) bool {
	return len(ConsoleEvents(sig)) > 0
}
