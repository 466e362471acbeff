package ctrlc

import "errors"

var (
	ErrNoSignals         = errors.New("ctrlc: no signals provided")
	ErrUnsupportedSignal = errors.New("ctrlc: signal cannot be handled on this platform")
	ErrUnknownSignal     = errors.New("ctrlc: unknown signal name")
)
