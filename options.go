package ctrlc

import (
	"log/slog"

	"github.com/srozzo/go-ctrlc/internal/logger"
)

// Option configures a Bridge.
type Option func(*Bridge)

// WithSource replaces the OS signal source.
func WithSource(src SignalSource) Option {
	return func(b *Bridge) {
		if src != nil {
			b.source = src
		}
	}
}

// WithLogger sets the logger. A nil logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l == nil {
			l = logger.Discard()
		}
		b.log = l
	}
}

// WithRecover controls whether a panicking handler is logged and the loop
// kept alive (the default), or the panic is allowed to crash the process.
func WithRecover(enabled bool) Option {
	return func(b *Bridge) { b.recoverPanics = enabled }
}
