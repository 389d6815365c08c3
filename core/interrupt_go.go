//go:build !tinygo

package core

// irqState stands in for the saved PRIMASK on host builds
type irqState uintptr

// Host builds have no interrupt controller; the countdown reprogramming
// in Timer.Wait needs no masking there.
func disableInterrupts() irqState { return 0 }

func restoreInterrupts(irqState) {}
