package ctrlc

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Validate reports whether every signal in sigs can be delivered to a
// handler on this platform. SetHandler and GetWaiter skip such signals
// silently apart from a log line; call Validate first to catch them.
func Validate(sigs ...os.Signal) error {
	if len(sigs) == 0 {
		return ErrNoSignals
	}
	for _, s := range sigs {
		if !isSupported(s) {
			return fmt.Errorf("%w: %s on %s", ErrUnsupportedSignal, SignalName(s), runtime.GOOS)
		}
	}
	return nil
}

// ParseSignals parses each name with ParseSignal.
func ParseSignals(names []string) ([]os.Signal, error) {
	sigs := make([]os.Signal, 0, len(names))
	for _, n := range names {
		s, err := ParseSignal(n)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, s)
	}
	return sigs, nil
}

// normalizeName upper-cases name and adds the SIG prefix.
func normalizeName(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "INTERRUPT" {
		return "SIGINT"
	}
	if !strings.HasPrefix(n, "SIG") {
		n = "SIG" + n
	}
	return n
}

func signalNames(sigs []os.Signal) string {
	names := make([]string, len(sigs))
	for i, s := range sigs {
		names[i] = SignalName(s)
	}
	return strings.Join(names, ",")
}
