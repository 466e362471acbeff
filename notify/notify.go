// Package notify provides the rendezvous point between a signal relay and the
// goroutines that run user code in response to it.
//
// A Channel counts notifications. Notify bumps the count and wakes every
// goroutine currently blocked in Wait or WaitAfter; it never blocks, never
// takes a lock and never allocates. A waiter that remembers the count it last
// saw (WaitAfter) never loses a notification that landed while it was busy,
// but a burst between two waits coalesces into a single wake.
package notify

import (
	"sync"
	"sync/atomic"
)

// Channel is a guard paired with a broadcast notification counter. It
// behaves like a condition variable whose wake-ups can be latched by the
// waiter.
//
// The guard protects no user state. Waiters hold it around Wait the way they
// would hold a sync.Cond's lock; it is released while they are blocked, so
// any number of goroutines may be waiting at once.
type Channel struct {
	mu  sync.Mutex
	seq atomic.Uint64

	// wake is closed by the next Notify. Waiters install it lazily so that
	// Notify itself never has to allocate a replacement.
	wake atomic.Pointer[chan struct{}]
}

// New returns a channel that has never been notified. The zero value is
// equally ready to use.
func New() *Channel {
	return &Channel{}
}

// Notify records a notification and wakes all blocked waiters.
func (c *Channel) Notify() {
	c.seq.Add(1)
	if p := c.wake.Swap(nil); p != nil {
		close(*p)
	}
}

// Seq returns the number of notifications so far.
func (c *Channel) Seq() uint64 {
	return c.seq.Load()
}

// Pending reports whether a notification arrived after seen.
func (c *Channel) Pending(seen uint64) bool {
	return c.seq.Load() != seen
}

// Lock acquires the guard.
func (c *Channel) Lock() { c.mu.Lock() }

// Unlock releases the guard.
func (c *Channel) Unlock() { c.mu.Unlock() }

// Wait releases the guard, blocks until a notification arrives after the
// call began, and reacquires the guard before returning.
//
// The caller must hold the guard. Calling Wait without it is a fatal error,
// exactly as with sync.Cond.
func (c *Channel) Wait() {
	c.WaitAfter(c.seq.Load())
}

// WaitAfter is Wait for a caller that tracks its own position: it returns
// immediately if the count already moved past seen, otherwise it blocks until
// it does. It returns the count observed on wake-up, which the caller passes
// back in next time.
func (c *Channel) WaitAfter(seen uint64) uint64 {
	c.mu.Unlock()
	defer c.mu.Lock()

	for {
		if s := c.seq.Load(); s != seen {
			return s
		}
		p := c.wake.Load()
		if p == nil {
			ch := make(chan struct{})
			if !c.wake.CompareAndSwap(nil, &ch) {
				continue
			}
			p = &ch
		}
		// A Notify that bumped seq before this check may have swapped out
		// an older wake channel; re-read before sleeping on p.
		if c.seq.Load() != seen {
			continue
		}
		<-*p
	}
}
