package sim

import (
	"sync"

	"digitalio/core"
)

// Panel models what a viewer sees on the two-digit display. Each position
// keeps the last pattern on the bus while its select line was high.
type Panel struct {
	mu   sync.Mutex
	pins core.PinMap

	digits    [2]uint8 // Indexed by core.DigitSelect
	heartbeat bool
	overlap   int // Writes seen with both positions enabled
	refreshes [2]int
}

// NewPanel creates a panel that decodes pins
func NewPanel(pins core.PinMap) *Panel {
	return &Panel{pins: pins}
}

// Attach makes the panel follow every write on g
func (p *Panel) Attach(g *GPIO) {
	g.OnWrite(p.observe)
}

func (p *Panel) observe(g *GPIO, pin core.GPIOPin, level bool) {
	ones := g.Level(p.pins.OnesSelect)
	tens := g.Level(p.pins.TensSelect)

	var pattern uint8
	for i, sp := range p.pins.Segments {
		if sp != core.NoPin && g.Level(sp) {
			pattern |= 1 << i
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pin == p.pins.Heartbeat {
		p.heartbeat = level
		return
	}
	if ones && tens {
		p.overlap++
		return
	}
	switch {
	case ones:
		p.latch(core.Ones, pin, pattern)
	case tens:
		p.latch(core.Tens, pin, pattern)
	}
}

func (p *Panel) latch(pos core.DigitSelect, pin core.GPIOPin, pattern uint8) {
	p.digits[pos] = pattern
	if pin == p.pins.Segments[len(p.pins.Segments)-1] {
		p.refreshes[pos]++
	}
}

// Latch stores pattern for a position directly, for segment buses that
// bypass GPIO (shift registers, bus recorders).
func (p *Panel) Latch(pos core.DigitSelect, pattern uint8) {
	p.mu.Lock()
	p.digits[pos] = pattern
	p.refreshes[pos]++
	p.mu.Unlock()
}

// Digit returns the pattern last shown at pos
func (p *Panel) Digit(pos core.DigitSelect) uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.digits[pos]
}

// Heartbeat returns the heartbeat LED level
func (p *Panel) Heartbeat() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.heartbeat
}

// Overlaps returns how many writes happened with both digits enabled
func (p *Panel) Overlaps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.overlap
}

// Refreshes returns how many complete patterns each position received
func (p *Panel) Refreshes(pos core.DigitSelect) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshes[pos]
}

// Decode returns the decimal digit a pattern shows, or -1
func Decode(pattern uint8) int {
	for d, seg := range core.SegmentTable {
		if seg == pattern&0x7F {
			return d
		}
	}
	return -1
}
