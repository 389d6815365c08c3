package core

// ButtonState is the debounced state of the push button
type ButtonState uint8

const (
	Released ButtonState = iota
	Pressed
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Transition is the outcome of one debounce evaluation
type Transition uint8

const (
	None             Transition = iota // State unchanged
	PressConfirmed                     // Released -> Pressed
	PressRejected                      // Low level did not survive the settle interval
	ReleaseConfirmed                   // Pressed -> Released
)

// DefaultSettleMS is the settle interval between the two samples
const DefaultSettleMS = 10

// Debouncer is a two-sample confirmation debounce for an active-low button.
// Every Step waits exactly one settle interval, whichever branch runs, so
// the loop period stays constant.
type Debouncer struct {
	pin    GPIOPin
	settle uint32 // Settle interval in timer ticks

	State ButtonState
}

// NewDebouncer creates a debouncer for pin that waits settle ticks
// between samples. The button starts Released.
func NewDebouncer(pin GPIOPin, settle uint32) *Debouncer {
	return &Debouncer{pin: pin, settle: settle, State: Released}
}

// SettleTicks returns the settle interval in timer ticks
func (d *Debouncer) SettleTicks() uint32 {
	return d.settle
}

// pressed reads the pin; pull-up wiring means low is pressed
func (d *Debouncer) pressed(gpio GPIODriver) (bool, error) {
	level, err := gpio.GetPin(d.pin)
	if err != nil {
		return false, err
	}
	return !level, nil
}

// Step samples the button, waits the settle interval, samples again and
// updates State. Only a confirmed Released -> Pressed edge returns
// PressConfirmed, so a held button is counted once.
func (d *Debouncer) Step(gpio GPIODriver, timer *Timer) (Transition, error) {
	down, err := d.pressed(gpio)
	if err != nil {
		return None, err
	}

	if d.State == Released && down {
		timer.Wait(d.settle)
		down, err = d.pressed(gpio)
		if err != nil {
			return None, err
		}
		if down {
			d.State = Pressed
			return PressConfirmed, nil
		}
		return PressRejected, nil
	}

	timer.Wait(d.settle)
	down, err = d.pressed(gpio)
	if err != nil {
		return None, err
	}
	if !down && d.State == Pressed {
		d.State = Released
		return ReleaseConfirmed, nil
	}
	return None, nil
}
