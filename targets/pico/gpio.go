//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"
	"runtime/volatile"
	"unsafe"

	"digitalio/core"
)

var (
	errPortReset     = errors.New("gpio: bank still held in reset")
	errNotConfigured = errors.New("gpio: pin read before it was configured")
)

var resetDone = (*volatile.Register32)(unsafe.Pointer(uintptr(resetsResetDone)))

// resetPollLimit bounds the wait for IO_BANK0/PADS_BANK0 to leave reset
const resetPollLimit = 100000

// RPGPIODriver implements the GPIODriver interface for RP2040/RP2350
type RPGPIODriver struct {
	// Track configured pins to prevent conflicts
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewRPGPIODriver creates a new GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// EnablePortClock waits for the GPIO banks to come out of reset. All
// groups share IO_BANK0 on these chips; the runtime releases it at boot,
// so this normally returns on the first poll.
func (d *RPGPIODriver) EnablePortClock(group string) error {
	const mask = resetIOBank0 | resetPadsBank0
	for i := 0; i < resetPollLimit; i++ {
		if resetDone.Get()&mask == mask {
			return nil
		}
	}
	DebugPrintln("gpio: " + group + " bank not out of reset")
	return errPortReset
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configuredPins[pin] = machinePin
	return nil
}

// ConfigureInputPullUp configures a pin as a digital input with pull-up resistor
func (d *RPGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	d.configuredPins[pin] = machinePin
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		// Pin isn't configured - configure it first
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		machinePin = d.configuredPins[pin]
	}

	machinePin.Set(value)
	return nil
}

// GetPin reads the current pin state
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		// An unconfigured button would float low and read as pressed
		return false, errNotConfigured
	}

	return machinePin.Get(), nil
}
