package core

// CounterLimit is the first value the two-digit counter cannot show
const CounterLimit = 100

// Counter counts confirmed presses, 0..99
type Counter uint8

// Increment adds one press. It reports true when the counter wrapped
// from 99 back to 0.
func (c *Counter) Increment() bool {
	*c++
	if *c >= CounterLimit {
		*c = 0
		return true
	}
	return false
}

// Ones returns the ones digit
func (c Counter) Ones() uint8 { return uint8(c) % 10 }

// Tens returns the tens digit
func (c Counter) Tens() uint8 { return uint8(c) / 10 }

func (c Counter) String() string {
	return twoDigits(uint8(c))
}
