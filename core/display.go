package core

// DigitSelect names the digit position driven on the current loop pass
type DigitSelect uint8

const (
	Ones DigitSelect = iota
	Tens
)

func (d DigitSelect) String() string {
	if d == Tens {
		return "tens"
	}
	return "ones"
}

// SegmentTable maps a decimal digit to its seven-segment pattern.
// Bit 0 is segment a through bit 6 = g; bit 7 (dp) is never lit.
var SegmentTable = [10]uint8{0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07, 0x7F, 0x6F}

// Pattern returns the segment pattern for digit, or 0 (blank) when digit > 9
func Pattern(digit uint8) uint8 {
	if int(digit) >= len(SegmentTable) {
		return 0
	}
	return SegmentTable[digit]
}

// Multiplexer alternates the active digit position once per Step.
// Only one position is enabled at a time since both share the segment bus.
type Multiplexer struct {
	gpio GPIODriver
	bus  SegmentBus
	ones GPIOPin
	tens GPIOPin

	Active DigitSelect // Position driven by the next Step
}

// NewMultiplexer creates a scheduler starting on the ones position
func NewMultiplexer(gpio GPIODriver, bus SegmentBus, ones, tens GPIOPin) *Multiplexer {
	return &Multiplexer{gpio: gpio, bus: bus, ones: ones, tens: tens, Active: Ones}
}

// Step drives the active position with its digit of counter and selects
// the other position for the next call. The enabled select line goes
// low before the other goes high so both are never on together.
func (m *Multiplexer) Step(counter Counter) error {
	on, off := m.ones, m.tens
	digit := counter.Ones()
	next := Tens
	if m.Active == Tens {
		on, off = m.tens, m.ones
		digit = counter.Tens()
		next = Ones
	}

	if err := m.gpio.SetPin(off, false); err != nil {
		return err
	}
	if err := m.gpio.SetPin(on, true); err != nil {
		return err
	}
	if err := m.bus.WriteSegments(Pattern(digit)); err != nil {
		return err
	}

	m.Active = next
	return nil
}
