//go:build rp2040 || rp2350

package main

import (
	"machine"

	"digitalio/core"
)

var (
	// Panics recovered in the main loop
	loopFaults uint32
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitDebugUART()
	core.SetDebugWriter(DebugPrintln)
	core.SetDebugEnabled(debugEnabled)

	bus, pins := segmentBus()
	timer := core.NewTimer(SysTick{}, CoreClockHz)

	ctrl, err := core.NewController(core.Config{
		GPIO:     NewRPGPIODriver(),
		Timer:    timer,
		Segments: bus,
		Pins:     pins,
		SettleMS: core.DefaultSettleMS,
	})
	if err != nil {
		DebugPrintln("config: " + err.Error())
		return
	}
	if err := ctrl.Init(); err != nil {
		DebugPrintln("init: " + err.Error())
		return
	}

	// Main loop - runs until power-off
	for {
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopFaults++
					core.DumpEvents()
				}
			}()

			if _, err := ctrl.Step(); err != nil {
				DebugPrintln("step: " + err.Error())
			}
		}()
	}
}
