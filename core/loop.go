package core

// LoopState is everything the control loop carries between iterations
type LoopState struct {
	Counter    Counter
	Button     ButtonState
	Digit      DigitSelect // Position the next iteration drives
	Heartbeat  bool        // Current heartbeat LED level
	Iterations uint32
}

// Config wires a Controller to its hardware
type Config struct {
	GPIO     GPIODriver
	Timer    *Timer
	Segments SegmentBus // Nil drives the segments through Pins.Segments
	Pins     PinMap
	SettleMS uint32 // Zero selects DefaultSettleMS
}

// Controller runs the button counter: heartbeat, debounce, display
type Controller struct {
	gpio   GPIODriver
	timer  *Timer
	pins   PinMap
	button *Debouncer
	mux    *Multiplexer

	state LoopState
}

// NewController validates cfg and builds the loop components
func NewController(cfg Config) (*Controller, error) {
	if cfg.GPIO == nil || cfg.Timer == nil {
		return nil, ErrNoDriver
	}
	if err := cfg.Pins.Validate(); err != nil {
		return nil, err
	}

	settle := cfg.SettleMS
	if settle == 0 {
		settle = DefaultSettleMS
	}
	bus := cfg.Segments
	if bus == nil {
		bus = NewPinBus(cfg.GPIO, cfg.Pins.Segments)
	}

	return &Controller{
		gpio:   cfg.GPIO,
		timer:  cfg.Timer,
		pins:   cfg.Pins,
		button: NewDebouncer(cfg.Pins.Button, cfg.Timer.TicksFromMS(settle)),
		mux:    NewMultiplexer(cfg.GPIO, bus, cfg.Pins.OnesSelect, cfg.Pins.TensSelect),
	}, nil
}

// Init configures every port group and starts the timer. It must run
// once before Step.
func (c *Controller) Init() error {
	if err := InitPorts(c.gpio, c.pins.PortGroups()); err != nil {
		return err
	}
	c.timer.Init()
	return nil
}

// Step runs one loop iteration. The button is sampled before the display
// is written in the same pass.
func (c *Controller) Step() (Transition, error) {
	c.state.Iterations++
	setEventIteration(c.state.Iterations)

	c.state.Heartbeat = !c.state.Heartbeat
	if err := c.gpio.SetPin(c.pins.Heartbeat, c.state.Heartbeat); err != nil {
		return None, err
	}

	tr, err := c.button.Step(c.gpio, c.timer)
	if err != nil {
		return None, err
	}
	c.state.Button = c.button.State

	switch tr {
	case PressConfirmed:
		wrapped := c.state.Counter.Increment()
		RecordEvent(EvtPressConfirmed, uint8(c.state.Counter), 0)
		if wrapped {
			RecordEvent(EvtCounterWrap, uint8(c.state.Counter), CounterLimit)
		}
	case PressRejected:
		RecordEvent(EvtPressRejected, uint8(c.state.Counter), 0)
	case ReleaseConfirmed:
		RecordEvent(EvtReleased, uint8(c.state.Counter), 0)
	}

	if err := c.mux.Step(c.state.Counter); err != nil {
		return tr, err
	}
	c.state.Digit = c.mux.Active

	return tr, nil
}

// RunUntil loops until stop returns true, checked before each iteration.
// Step errors are reported through the debug writer and the loop goes on.
func (c *Controller) RunUntil(stop func() bool) {
	for !stop() {
		if _, err := c.Step(); err != nil {
			DebugPrintln("step: " + err.Error())
		}
	}
}

// State returns a copy of the loop state
func (c *Controller) State() LoopState {
	return c.state
}

// SettleTicks returns the debounce settle interval in timer ticks
func (c *Controller) SettleTicks() uint32 {
	return c.button.SettleTicks()
}
