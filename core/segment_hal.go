package core

// SegmentBus drives the eight segment lines shared by both digit modules
type SegmentBus interface {
	// WriteSegments outputs pattern, bit 0 = segment a ... bit 7 = dp
	WriteSegments(pattern uint8) error
}

// PinBus is a SegmentBus wired straight to eight GPIO outputs
type PinBus struct {
	gpio GPIODriver
	pins [8]GPIOPin
}

// NewPinBus creates a segment bus over pins, ordered a..g, dp
func NewPinBus(gpio GPIODriver, pins [8]GPIOPin) *PinBus {
	return &PinBus{gpio: gpio, pins: pins}
}

// WriteSegments sets each line from its bit in pattern
func (b *PinBus) WriteSegments(pattern uint8) error {
	for i, p := range b.pins {
		if p == NoPin {
			continue
		}
		if err := b.gpio.SetPin(p, pattern&(1<<i) != 0); err != nil {
			return err
		}
	}
	return nil
}
