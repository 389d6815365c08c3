package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digitalio/core"
	"digitalio/sim"
)

const (
	testClockHz = 16000000
	testSettle  = 160000 // 10 ms at 16 MHz
	buttonPin   = core.GPIOPin(4)
)

func newDebounceRig(t *testing.T) (*core.Debouncer, *sim.GPIO, *sim.Countdown, *core.Timer) {
	t.Helper()
	gpio := sim.NewGPIO()
	require.NoError(t, gpio.ConfigureInputPullUp(buttonPin))
	cd := sim.NewCountdown()
	timer := core.NewTimer(cd, testClockHz)
	timer.Init()
	return core.NewDebouncer(buttonPin, testSettle), gpio, cd, timer
}

func TestDebouncerStartsReleased(t *testing.T) {
	d, gpio, _, timer := newDebounceRig(t)
	assert.Equal(t, core.Released, d.State)

	tr, err := d.Step(gpio, timer)
	require.NoError(t, err)
	assert.Equal(t, core.None, tr)
	assert.Equal(t, core.Released, d.State)
}

func TestDebouncerConfirmsStablePress(t *testing.T) {
	d, gpio, _, timer := newDebounceRig(t)
	gpio.SetInput(buttonPin, false)

	tr, err := d.Step(gpio, timer)
	require.NoError(t, err)
	assert.Equal(t, core.PressConfirmed, tr)
	assert.Equal(t, core.Pressed, d.State)
}

func TestDebouncerRejectsShortPress(t *testing.T) {
	d, gpio, _, timer := newDebounceRig(t)
	// Low on the first sample, back high before the second
	gpio.Script(buttonPin, false, true)

	tr, err := d.Step(gpio, timer)
	require.NoError(t, err)
	assert.Equal(t, core.PressRejected, tr)
	assert.Equal(t, core.Released, d.State)
}

func TestDebouncerHeldPressConfirmsOnce(t *testing.T) {
	d, gpio, _, timer := newDebounceRig(t)
	gpio.SetInput(buttonPin, false)

	confirmed := 0
	for i := 0; i < 100; i++ {
		tr, err := d.Step(gpio, timer)
		require.NoError(t, err)
		if tr == core.PressConfirmed {
			confirmed++
		}
	}
	assert.Equal(t, 1, confirmed)
	assert.Equal(t, core.Pressed, d.State)
}

func TestDebouncerReleaseNeedsSettledHigh(t *testing.T) {
	d, gpio, _, timer := newDebounceRig(t)
	gpio.SetInput(buttonPin, false)
	_, err := d.Step(gpio, timer)
	require.NoError(t, err)

	// Contacts bounce high then settle low again: still pressed
	gpio.Script(buttonPin, true, false)
	tr, err := d.Step(gpio, timer)
	require.NoError(t, err)
	assert.Equal(t, core.None, tr)
	assert.Equal(t, core.Pressed, d.State)

	// Settled high on the second sample: released
	gpio.Script(buttonPin, false, true)
	tr, err = d.Step(gpio, timer)
	require.NoError(t, err)
	assert.Equal(t, core.ReleaseConfirmed, tr)
	assert.Equal(t, core.Released, d.State)
}

func TestDebouncerWaitsOnceEveryStep(t *testing.T) {
	d, gpio, cd, timer := newDebounceRig(t)

	scripts := [][]bool{
		{true, true},   // idle
		{false, true},  // rejected press
		{false, false}, // confirmed press
		{false, false}, // held
		{true, true},   // released
	}
	for i, levels := range scripts {
		gpio.Script(buttonPin, levels...)
		_, err := d.Step(gpio, timer)
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1)*testSettle, cd.Elapsed(), "step %d", i)
		assert.Equal(t, 2*(i+1), gpio.Reads(), "two samples per step")
	}
}

func TestDebouncerReadError(t *testing.T) {
	gpio := sim.NewGPIO() // Button never configured
	timer := core.NewTimer(sim.NewCountdown(), testClockHz)
	timer.Init()
	d := core.NewDebouncer(buttonPin, testSettle)

	_, err := d.Step(gpio, timer)
	assert.ErrorIs(t, err, sim.ErrNotInput)
}
