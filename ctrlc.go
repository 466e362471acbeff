// Package ctrlc runs a callback whenever the process receives an
// interrupt-style signal such as Ctrl-C.
//
// The Go runtime owns the real OS handler. It forwards each signal into a
// buffered channel with a non-blocking send; a single relay goroutine per
// Bridge turns that into a Notify on every notification channel routed for
// the signal. Callbacks run on their own dispatch goroutine under normal
// execution rules, one invocation at a time.
//
//	ctrlc.SetHandler(func() {
//		running.Store(false)
//	})
//
// Nothing is ever uninstalled. Dispatch loops run until the process exits.
package ctrlc

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/srozzo/go-ctrlc/internal/logger"
	"github.com/srozzo/go-ctrlc/notify"
)

// relayBuffer bounds how many signals the runtime may queue for the relay
// before it starts dropping them. Drops are harmless: a routed channel only
// needs one pending notification.
const relayBuffer = 16

// Handler is the callback run on every wake of a dispatch loop.
type Handler interface {
	HandleInterrupt()
}

// HandlerFunc adapts an ordinary function to Handler.
type HandlerFunc func()

// HandleInterrupt calls f.
func (f HandlerFunc) HandleInterrupt() { f() }

// Waiter blocks until the next notification for the signals it was created
// for, then returns. Each call consumes one notification cycle.
type Waiter func()

// Bridge wires OS signals to notification channels and dispatch loops.
// The zero value is not usable; use New or Default.
type Bridge struct {
	source        SignalSource
	log           *slog.Logger
	recoverPanics bool

	routes routes

	relayOnce sync.Once
	sigch     chan os.Signal

	loops  atomic.Int32
	nextID atomic.Int32
}

// New returns a Bridge that delivers real OS signals unless WithSource says
// otherwise.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		source:        &defaultSignalSource{},
		log:           logger.Stderr(logger.LevelWarn),
		recoverPanics: true,
		sigch:         make(chan os.Signal, relayBuffer),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetHandler installs sigs and starts a dispatch loop that calls fn once per
// wake. With no signals it installs DefaultSignals.
//
// Signals the platform cannot deliver are logged and skipped. Use Validate
// beforehand to detect that. Calling SetHandler again for the same signals
// adds a second loop; both callbacks then fire for each notification.
func (b *Bridge) SetHandler(fn func(), sigs ...os.Signal) {
	b.Handle(HandlerFunc(fn), sigs...)
}

// Handle is SetHandler for a Handler value.
func (b *Bridge) Handle(h Handler, sigs ...os.Signal) {
	ch := b.install(sigs)
	l := &loop{
		id:            int(b.nextID.Add(1)),
		ch:            ch,
		handler:       h,
		log:           b.log,
		recoverPanics: b.recoverPanics,
	}
	b.loops.Add(1)
	go l.run()
}

// GetWaiter installs sigs like SetHandler but leaves the looping to the
// caller. The returned Waiter may be called from any goroutine, and every
// caller blocked in it is released by the same notification. A notification
// that arrives while no one is waiting makes the next call return at once.
func (b *Bridge) GetWaiter(sigs ...os.Signal) Waiter {
	ch := b.install(sigs)
	var last atomic.Uint64
	return func() {
		ch.Lock()
		s := ch.WaitAfter(last.Load())
		ch.Unlock()
		for {
			cur := last.Load()
			if s <= cur || last.CompareAndSwap(cur, s) {
				return
			}
		}
	}
}

// Loops reports how many dispatch loops this Bridge has started.
func (b *Bridge) Loops() int {
	return int(b.loops.Load())
}

// install routes the deliverable subset of sigs to a fresh channel and asks
// the source to feed them to the relay.
func (b *Bridge) install(sigs []os.Signal) *notify.Channel {
	if len(sigs) == 0 {
		sigs = DefaultSignals()
	}

	accepted := make([]os.Signal, 0, len(sigs))
	seen := make(map[os.Signal]bool, len(sigs))
	for _, s := range sigs {
		if err := Validate(s); err != nil {
			b.log.Warn("ctrlc: signal not installed", "signal", SignalName(s), "err", err)
			continue
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		accepted = append(accepted, s)
	}

	ch := notify.New()
	if len(accepted) == 0 {
		b.log.Warn("ctrlc: nothing installed; handler will never fire")
		return ch
	}

	b.routes.add(ch, accepted)
	b.relayOnce.Do(func() { go b.relay() })
	b.source.Notify(b.sigch, accepted...)
	b.log.Debug("ctrlc: installed", "signals", signalNames(accepted))
	return ch
}

// relay is the only reader of sigch.
func (b *Bridge) relay() {
	for sig := range b.sigch {
		b.deliver(sig)
	}
}

// deliver notifies the channels routed for sig. Unless TRACE is enabled it
// takes no lock and does not allocate.
func (b *Bridge) deliver(sig os.Signal) {
	n := b.routes.fire(sig)
	if b.log.Enabled(context.Background(), logger.LevelTrace) {
		logger.Trace(b.log, "ctrlc: relayed", "signal", SignalName(sig), "channels", n)
	}
}
