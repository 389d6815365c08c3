// Package sim provides simulated board hardware implementing the core HAL
// interfaces, for tests and the host simulator.
package sim

import (
	"errors"
	"strconv"
	"sync"

	"digitalio/core"
)

// Mode is the configured direction of a simulated pin
type Mode uint8

const (
	Unconfigured Mode = iota
	Output
	InputPullUp
)

var (
	// ErrNotOutput is returned when writing a pin not configured as output
	ErrNotOutput = errors.New("sim: pin is not an output")

	// ErrNotInput is returned when reading an unconfigured pin
	ErrNotInput = errors.New("sim: pin is not configured")
)

// WriteHook observes every successful SetPin
type WriteHook func(g *GPIO, pin core.GPIOPin, level bool)

// GPIO is an in-memory GPIODriver. Inputs can be given a standing level
// or a script of levels returned by successive reads.
type GPIO struct {
	mu      sync.Mutex
	modes   map[core.GPIOPin]Mode
	levels  map[core.GPIOPin]bool
	scripts map[core.GPIOPin][]bool
	clocks  map[string]bool
	log     []string
	reads   int
	writes  int

	hook WriteHook
}

// NewGPIO creates a simulated GPIO bank with every pin unconfigured
func NewGPIO() *GPIO {
	return &GPIO{
		modes:   make(map[core.GPIOPin]Mode),
		levels:  make(map[core.GPIOPin]bool),
		scripts: make(map[core.GPIOPin][]bool),
		clocks:  make(map[string]bool),
	}
}

// OnWrite installs a hook called after each output write
func (g *GPIO) OnWrite(h WriteHook) {
	g.mu.Lock()
	g.hook = h
	g.mu.Unlock()
}

// EnablePortClock records that a group's clock was enabled
func (g *GPIO) EnablePortClock(group string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clocks[group] = true
	g.log = append(g.log, "clock "+group)
	return nil
}

// ConfigureOutput configures pin as a push-pull output driven low
func (g *GPIO) ConfigureOutput(pin core.GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.modes[pin] != Output {
		g.levels[pin] = false
	}
	g.modes[pin] = Output
	g.log = append(g.log, "output "+pinName(pin))
	return nil
}

// ConfigureInputPullUp configures pin as an input idling high
func (g *GPIO) ConfigureInputPullUp(pin core.GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.modes[pin] != InputPullUp {
		g.levels[pin] = true
	}
	g.modes[pin] = InputPullUp
	g.log = append(g.log, "pullup "+pinName(pin))
	return nil
}

// SetPin drives an output pin
func (g *GPIO) SetPin(pin core.GPIOPin, value bool) error {
	g.mu.Lock()
	if g.modes[pin] != Output {
		g.mu.Unlock()
		return ErrNotOutput
	}
	g.levels[pin] = value
	g.writes++
	hook := g.hook
	g.mu.Unlock()

	if hook != nil {
		hook(g, pin, value)
	}
	return nil
}

// GetPin reads a pin. A scripted input returns its next queued level.
func (g *GPIO) GetPin(pin core.GPIOPin) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.modes[pin] == Unconfigured {
		return false, ErrNotInput
	}
	g.reads++
	if q := g.scripts[pin]; len(q) > 0 {
		g.levels[pin] = q[0]
		g.scripts[pin] = q[1:]
	}
	return g.levels[pin], nil
}

// SetInput sets the standing level of an input pin
func (g *GPIO) SetInput(pin core.GPIOPin, level bool) {
	g.mu.Lock()
	g.levels[pin] = level
	g.scripts[pin] = nil
	g.mu.Unlock()
}

// Script queues levels returned by the next reads of pin; after the
// script runs out the last level stands.
func (g *GPIO) Script(pin core.GPIOPin, levels ...bool) {
	g.mu.Lock()
	g.scripts[pin] = append(g.scripts[pin], levels...)
	g.mu.Unlock()
}

// Pending returns how many scripted reads of pin remain
func (g *GPIO) Pending(pin core.GPIOPin) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.scripts[pin])
}

// Level returns the current level of pin
func (g *GPIO) Level(pin core.GPIOPin) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels[pin]
}

// Mode returns the configured mode of pin
func (g *GPIO) Mode(pin core.GPIOPin) Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.modes[pin]
}

// ClockEnabled reports whether a group's clock was enabled
func (g *GPIO) ClockEnabled(group string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clocks[group]
}

// Log returns the configuration calls in order
func (g *GPIO) Log() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.log...)
}

// Reads returns the number of pin reads so far
func (g *GPIO) Reads() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reads
}

// Writes returns the number of pin writes so far
func (g *GPIO) Writes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.writes
}

func pinName(pin core.GPIOPin) string {
	return "gpio" + strconv.FormatUint(uint64(pin), 10)
}
