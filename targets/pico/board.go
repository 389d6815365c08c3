//go:build rp2040 || rp2350

package main

import (
	"machine"

	"digitalio/core"
)

// Raspberry Pi Pico / Pico 2 wiring. GP0/GP1 carry the debug UART.
//
//	GP2-GP9   segments a..g, dp (through 220R, common-cathode modules)
//	GP10      ones digit cathode driver (high = on)
//	GP11      tens digit cathode driver (high = on)
//	GP15      push button to GND, internal pull-up
//	GP25      on-board LED, heartbeat
const (
	pinSegA       = core.GPIOPin(machine.GPIO2)
	pinOnesSelect = core.GPIOPin(machine.GPIO10)
	pinTensSelect = core.GPIOPin(machine.GPIO11)
	pinButton     = core.GPIOPin(machine.GPIO15)
	pinHeartbeat  = core.GPIOPin(machine.LED)
)

// boardPins returns the fixed pin map with the segment lines on GP2-GP9
func boardPins() core.PinMap {
	m := core.PinMap{
		Button:     pinButton,
		Heartbeat:  pinHeartbeat,
		OnesSelect: pinOnesSelect,
		TensSelect: pinTensSelect,
	}
	for i := range m.Segments {
		m.Segments[i] = pinSegA + core.GPIOPin(i)
	}
	return m
}
