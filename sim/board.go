package sim

import "digitalio/core"

// DefaultPins is the reference wiring on GPIO numbers:
// PF4 button, PF2 heartbeat, PA7 ones, PA6 tens, PB0-7 segments.
var DefaultPins = core.PinMap{
	Button:     4,
	Heartbeat:  2,
	OnesSelect: 7,
	TensSelect: 6,
	Segments:   [8]core.GPIOPin{8, 9, 10, 11, 12, 13, 14, 15},
}

// Board bundles simulated hardware with a controller driving it
type Board struct {
	GPIO      *GPIO
	Countdown core.CountdownDriver
	Panel     *Panel
	Timer     *core.Timer
	Ctrl      *core.Controller
}

// NewBoard builds an initialized board on the virtual counter
func NewBoard(clockHz, settleMS uint32) (*Board, error) {
	return NewBoardWith(NewCountdown(), clockHz, settleMS)
}

// NewBoardWith builds an initialized board on the given counter
func NewBoardWith(cd core.CountdownDriver, clockHz, settleMS uint32) (*Board, error) {
	gpio := NewGPIO()
	panel := NewPanel(DefaultPins)
	panel.Attach(gpio)

	timer := core.NewTimer(cd, clockHz)
	ctrl, err := core.NewController(core.Config{
		GPIO:     gpio,
		Timer:    timer,
		Pins:     DefaultPins,
		SettleMS: settleMS,
	})
	if err != nil {
		return nil, err
	}
	if err := ctrl.Init(); err != nil {
		return nil, err
	}

	return &Board{
		GPIO:      gpio,
		Countdown: cd,
		Panel:     panel,
		Timer:     timer,
		Ctrl:      ctrl,
	}, nil
}

// Press scripts one clean press: two low samples confirm it, then
// high samples let it release. It runs the two iterations involved.
func (b *Board) Press() error {
	btn := DefaultPins.Button
	b.GPIO.Script(btn, false, false, true, true)
	for b.GPIO.Pending(btn) > 0 {
		if _, err := b.Ctrl.Step(); err != nil {
			return err
		}
	}
	return nil
}

// SetButton holds the button down (true) or lets it go (false)
func (b *Board) SetButton(down bool) {
	b.GPIO.SetInput(DefaultPins.Button, !down)
}

// Shown returns the decimal digits the panel currently shows, tens first.
// A blank or unknown pattern reads as -1.
func (b *Board) Shown() (tens, ones int) {
	return Decode(b.Panel.Digit(core.Tens)), Decode(b.Panel.Digit(core.Ones))
}
