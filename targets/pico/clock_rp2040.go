//go:build rp2040

package main

// CoreClockHz is the processor clock SysTick counts when CLKSOURCE is set.
// TinyGo brings the RP2040 up at 125 MHz.
const CoreClockHz = 125000000

// RESETS block: IO_BANK0 and PADS_BANK0 must be out of reset before the
// GPIO registers respond.
const (
	resetsBase      = 0x4000C000
	resetsResetDone = resetsBase + 0x08
	resetIOBank0    = 1 << 5
	resetPadsBank0  = 1 << 8
)
