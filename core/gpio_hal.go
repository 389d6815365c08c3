package core

import "errors"

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// NoPin marks an unassigned pin in a PinMap
const NoPin GPIOPin = 0xFFFFFFFF

var (
	// ErrNoDriver is returned when a controller is built without a required driver
	ErrNoDriver = errors.New("driver not configured")

	// ErrPinConflict is returned when one pin is assigned to two roles
	ErrPinConflict = errors.New("pin assigned more than once")

	// ErrPinUnassigned is returned when a required role has no pin
	ErrPinUnassigned = errors.New("required pin not assigned")
)

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullUp configures a pin as a digital input with pull-up resistor
	ConfigureInputPullUp(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the current pin state
	GetPin(pin GPIOPin) (bool, error)
}

// PortClockEnabler is implemented by drivers whose pin groups need a
// peripheral clock before their registers can be written.
type PortClockEnabler interface {
	EnablePortClock(group string) error
}
