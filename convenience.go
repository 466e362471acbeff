package ctrlc

import (
	"os"
	"sync"
)

var defaultBridge = sync.OnceValue(func() *Bridge { return New() })

// Default returns the process-wide Bridge, creating it on first use.
func Default() *Bridge { return defaultBridge() }

// SetHandler calls fn on every interrupt, using the Default bridge.
func SetHandler(fn func(), sigs ...os.Signal) { Default().SetHandler(fn, sigs...) }

// Handle is SetHandler for a Handler value, using the Default bridge.
func Handle(h Handler, sigs ...os.Signal) { Default().Handle(h, sigs...) }

// GetWaiter returns a Waiter for sigs on the Default bridge.
func GetWaiter(sigs ...os.Signal) Waiter { return Default().GetWaiter(sigs...) }
