package grid

import "sync/atomic"

var debug atomic.Bool

// SetDebug sets the process-wide debug flag; safe to call from any goroutine.
func SetDebug(on bool) { debug.Store(on) }

// Debug returns the process-wide debug flag.
func Debug() bool { return debug.Load() }

// ToggleDebug flips the debug flag, returning its new value.
func ToggleDebug() bool {
	for {
		old := debug.Load()
		if debug.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
