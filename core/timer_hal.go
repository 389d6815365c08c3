package core

// CountdownDriver is the abstract interface for a 24-bit down-counting
// hardware timer such as the Cortex-M SysTick.
type CountdownDriver interface {
	// Configure disables the counter, loads reload, clears the current
	// value and re-enables counting from the core clock.
	Configure(reload uint32)

	// Start programs the reload register and clears the current count.
	// The counter reaches zero reload+1 ticks later.
	Start(reload uint32)

	// Expired reports whether the counter has reached zero since the last
	// Start or the last call to Expired. Reading clears the flag.
	Expired() bool
}
