//go:build rp2350

package main

// CoreClockHz is the processor clock SysTick counts when CLKSOURCE is set.
// TinyGo brings the RP2350 up at 150 MHz.
const CoreClockHz = 150000000

// RESETS block: IO_BANK0 and PADS_BANK0 must be out of reset before the
// GPIO registers respond.
// NOTE: bit positions differ from RP2040 (HSTX was inserted below them)
const (
	resetsBase      = 0x40020000
	resetsResetDone = resetsBase + 0x08
	resetIOBank0    = 1 << 6
	resetPadsBank0  = 1 << 9
)
