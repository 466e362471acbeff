package ctrlc

import (
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/srozzo/go-ctrlc/notify"
)

// routeTable maps a signal to every channel that wants to hear about it.
// Published tables are never mutated.
type routeTable map[os.Signal][]*notify.Channel

// routes is a copy-on-write routing table. Writers serialize on mu and
// publish a fresh table; fire reads the current one without locking.
type routes struct {
	mu    sync.Mutex
	table atomic.Pointer[routeTable]
}

func (r *routes) add(ch *notify.Channel, sigs []os.Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(routeTable)
	if cur := r.table.Load(); cur != nil {
		for s, chans := range *cur {
			next[s] = chans
		}
	}
	for _, s := range sigs {
		// Clip forces a copy so older snapshots keep their backing array.
		next[s] = append(slices.Clip(next[s]), ch)
	}
	r.table.Store(&next)
}

// fire notifies every channel routed for sig and returns how many there were.
func (r *routes) fire(sig os.Signal) int {
	t := r.table.Load()
	if t == nil {
		return 0
	}
	chans := (*t)[sig]
	for _, ch := range chans {
		ch.Notify()
	}
	return len(chans)
}

func (r *routes) count(sig os.Signal) int {
	t := r.table.Load()
	if t == nil {
		return 0
	}
	return len((*t)[sig])
}
