package ctrlc

import (
	"log/slog"
	"runtime/debug"

	"github.com/srozzo/go-ctrlc/notify"
)

// loop is a dispatch task started by Handle. It has no cancellation token
// and no join path: once started it runs until the process exits.
type loop struct {
	id            int
	ch            *notify.Channel
	handler       Handler
	log           *slog.Logger
	recoverPanics bool
}

// run starts from zero because ch is fresh, so a signal routed before the
// goroutine is scheduled is still seen.
func (l *loop) run() {
	var seen uint64
	for {
		l.ch.Lock()
		seen = l.ch.WaitAfter(seen)
		l.ch.Unlock()
		l.invoke()
	}
}

// invoke runs the handler once. A panic is logged and swallowed unless
// recovery was disabled, in which case it takes the process down.
func (l *loop) invoke() {
	if l.recoverPanics {
		defer func() {
			if rec := recover(); rec != nil {
				l.log.Error("ctrlc: handler panicked",
					"loop", l.id, "panic", rec, "stack", string(debug.Stack()))
			}
		}()
	}
	l.handler.HandleInterrupt()
}
