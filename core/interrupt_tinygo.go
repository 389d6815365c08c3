//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts so the reload/current register pair is
// written without a runtime handler observing a half-programmed counter.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
