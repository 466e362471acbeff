package ctrlc

import (
	"os"
	"os/signal"
)

// SignalSource installs a notifier for a set of signals. Implementations
// must deliver with a non-blocking send, dropping the signal when c is full.
//
// It exists so tests can inject signals without touching the process.
type SignalSource interface {
	// Notify arranges for the given signals to be sent on c. Repeated calls
	// with the same channel extend the set.
	Notify(c chan<- os.Signal, sigs ...os.Signal)
}

// defaultSignalSource delegates to os/signal. Once a signal is registered
// there, the runtime reports it as handled: on Unix the default action is
// suppressed, and on Windows the console control handler returns TRUE.
type defaultSignalSource struct{}

func (d *defaultSignalSource) Notify(c chan<- os.Signal, sigs ...os.Signal) {
	signal.Notify(c, sigs...)
}
