package core

import (
	"errors"
	"sync/atomic"
)

const (
	// MaxReload is the largest value the 24-bit reload register holds
	MaxReload = 0x00FFFFFF

	// MaxWaitTicks is the longest single Wait the counter can time
	MaxWaitTicks = MaxReload + 1

	// DefaultClockHz is a 16 MHz internal oscillator, the reset clock of many Cortex-M parts
	DefaultClockHz = 16000000
)

// ErrWaitInFlight is the panic value raised when Wait is re-entered
var ErrWaitInFlight = errors.New("timer: overlapping Wait")

// Timer provides busy-wait delays on top of a CountdownDriver.
// Only one Wait may be in progress at a time; the countdown registers
// are shared.
type Timer struct {
	drv     CountdownDriver
	clockHz uint32
	busy    atomic.Bool
}

// NewTimer creates a timer service clocked at clockHz
func NewTimer(drv CountdownDriver, clockHz uint32) *Timer {
	if clockHz == 0 {
		clockHz = DefaultClockHz
	}
	return &Timer{drv: drv, clockHz: clockHz}
}

// Init sets the counter free-running from the maximum reload value
func (t *Timer) Init() {
	t.drv.Configure(MaxReload)
}

// ClockHz returns the clock frequency used for unit conversion
func (t *Timer) ClockHz() uint32 {
	return t.clockHz
}

// TicksFromMS converts milliseconds to timer ticks
func (t *Timer) TicksFromMS(ms uint32) uint32 {
	return uint32(uint64(ms) * uint64(t.clockHz) / 1000)
}

// TicksFromUS converts microseconds to timer ticks
func (t *Timer) TicksFromUS(us uint32) uint32 {
	return uint32(uint64(us) * uint64(t.clockHz) / 1000000)
}

// Wait blocks until the counter has counted down ticks clock cycles.
// ticks must be in [1, MaxWaitTicks]; other values are recorded and
// passed through, giving whatever delay the hardware produces.
func (t *Timer) Wait(ticks uint32) {
	if !t.busy.CompareAndSwap(false, true) {
		panic(ErrWaitInFlight)
	}
	defer t.busy.Store(false)

	if ticks == 0 || ticks > MaxWaitTicks {
		RecordEvent(EvtWaitRange, 0, ticks)
	}

	state := disableInterrupts()
	t.drv.Start(ticks - 1)
	restoreInterrupts(state)

	for !t.drv.Expired() {
	}
}

// WaitMS waits ms milliseconds, split into chunks the 24-bit counter can time
func (t *Timer) WaitMS(ms uint32) {
	perMS := uint64(t.clockHz) / 1000
	if perMS == 0 {
		perMS = 1
	}
	chunk := uint32(MaxWaitTicks / perMS)
	for ms > 0 {
		n := ms
		if n > chunk {
			n = chunk
		}
		t.Wait(t.TicksFromMS(n))
		ms -= n
	}
}
