package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digitalio/core"
	"digitalio/sim"
)

func TestSegmentTable(t *testing.T) {
	want := [10]uint8{0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07, 0x7F, 0x6F}
	assert.Equal(t, want, core.SegmentTable)

	for d := uint8(0); d < 10; d++ {
		assert.Equal(t, core.SegmentTable[d], core.Pattern(d))
		assert.Zero(t, core.Pattern(d)&0x80, "decimal point stays dark")
	}
	assert.Zero(t, core.Pattern(10))
}

func newMuxRig(t *testing.T) (*core.Multiplexer, *sim.GPIO, *sim.Panel) {
	t.Helper()
	pins := sim.DefaultPins
	gpio := sim.NewGPIO()
	for _, g := range pins.PortGroups() {
		require.NoError(t, g.Init(gpio))
	}
	panel := sim.NewPanel(pins)
	panel.Attach(gpio)

	bus := core.NewPinBus(gpio, pins.Segments)
	return core.NewMultiplexer(gpio, bus, pins.OnesSelect, pins.TensSelect), gpio, panel
}

func TestMultiplexerShowsDigits(t *testing.T) {
	tests := []struct {
		counter    core.Counter
		tens, ones uint8
	}{
		{7, 0, 7},
		{42, 4, 2},
		{0, 0, 0},
		{99, 9, 9},
		{10, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.counter.String(), func(t *testing.T) {
			mux, _, panel := newMuxRig(t)

			require.NoError(t, mux.Step(tt.counter))
			require.NoError(t, mux.Step(tt.counter))

			assert.Equal(t, core.Pattern(tt.ones), panel.Digit(core.Ones))
			assert.Equal(t, core.Pattern(tt.tens), panel.Digit(core.Tens))
		})
	}
}

func TestMultiplexerSelectLinesAreExclusive(t *testing.T) {
	mux, gpio, panel := newMuxRig(t)
	pins := sim.DefaultPins

	require.NoError(t, mux.Step(42))
	assert.True(t, gpio.Level(pins.OnesSelect))
	assert.False(t, gpio.Level(pins.TensSelect))
	assert.Equal(t, core.Tens, mux.Active)

	require.NoError(t, mux.Step(42))
	assert.False(t, gpio.Level(pins.OnesSelect))
	assert.True(t, gpio.Level(pins.TensSelect))
	assert.Equal(t, core.Ones, mux.Active)

	for i := 0; i < 20; i++ {
		require.NoError(t, mux.Step(core.Counter(i)))
	}
	assert.Zero(t, panel.Overlaps())
	assert.Equal(t, 11, panel.Refreshes(core.Ones))
	assert.Equal(t, 11, panel.Refreshes(core.Tens))
}

func TestMultiplexerBusError(t *testing.T) {
	gpio := sim.NewGPIO() // Nothing configured: writes fail
	bus := core.NewPinBus(gpio, sim.DefaultPins.Segments)
	mux := core.NewMultiplexer(gpio, bus, sim.DefaultPins.OnesSelect, sim.DefaultPins.TensSelect)

	assert.ErrorIs(t, mux.Step(1), sim.ErrNotOutput)
	assert.Equal(t, core.Ones, mux.Active, "selector only advances after a full write")
}

func TestCounterIncrementWraps(t *testing.T) {
	var c core.Counter
	for i := 1; i < core.CounterLimit; i++ {
		assert.False(t, c.Increment())
		assert.Equal(t, core.Counter(i), c)
	}
	assert.True(t, c.Increment())
	assert.Equal(t, core.Counter(0), c)
	assert.Equal(t, "00", c.String())
}
