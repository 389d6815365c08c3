//go:build (rp2040 || rp2350) && shiftreg

package main

import (
	"machine"

	"tinygo.org/x/drivers/shiftregister"

	"digitalio/core"
)

// 74HC595 wiring for boards that free up GPIO by shifting the segment
// pattern out. WriteMask clocks bit 0 first, so segment a sits on QH and
// dp on QA.
const (
	srData  = machine.GPIO2
	srClock = machine.GPIO3
	srLatch = machine.GPIO4
)

// shiftBus is a core.SegmentBus on an 8-bit shift register
type shiftBus struct {
	dev *shiftregister.Device
}

func (b shiftBus) WriteSegments(pattern uint8) error {
	b.dev.WriteMask(uint32(pattern))
	return nil
}

// segmentBus returns the shift-register bus; the pin map carries no
// segment GPIOs since the register owns them.
func segmentBus() (core.SegmentBus, core.PinMap) {
	dev := shiftregister.New(shiftregister.EIGHT_BITS, srLatch, srClock, srData)
	dev.Configure()

	m := boardPins()
	for i := range m.Segments {
		m.Segments[i] = core.NoPin
	}
	return shiftBus{dev: dev}, m
}
