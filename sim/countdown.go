package sim

import (
	"sync"
	"time"

	"digitalio/core"
)

// DefaultPollTicks is how far the virtual counter advances per Expired poll
const DefaultPollTicks = 1000

// Countdown is a virtual 24-bit down counter. Time only moves when the
// count flag is polled, so tests are deterministic.
type Countdown struct {
	mu        sync.Mutex
	enabled   bool
	reload    uint32
	remaining uint64
	elapsed   uint64
	starts    int
	polls     int

	// PollTicks is the number of ticks each Expired call advances
	PollTicks uint32
}

// NewCountdown creates a stopped virtual counter
func NewCountdown() *Countdown {
	return &Countdown{PollTicks: DefaultPollTicks}
}

// Configure enables free-running countdown from reload
func (c *Countdown) Configure(reload uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = true
	c.reload = reload & core.MaxReload
	c.remaining = uint64(c.reload) + 1
}

// Start programs reload and clears the current count
func (c *Countdown) Start(reload uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload = reload & core.MaxReload
	c.remaining = uint64(c.reload) + 1
	c.starts++
}

// Expired advances the counter by PollTicks and reports a zero crossing.
// A disabled counter never expires.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.polls++
	if !c.enabled {
		return false
	}

	step := uint64(c.PollTicks)
	if step == 0 {
		step = 1
	}
	if step > c.remaining {
		step = c.remaining
	}
	c.remaining -= step
	c.elapsed += step

	if c.remaining == 0 {
		c.remaining = uint64(c.reload) + 1
		return true
	}
	return false
}

// Elapsed returns the total ticks counted while waiting
func (c *Countdown) Elapsed() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Starts returns how many times the counter was programmed by Start
func (c *Countdown) Starts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.starts
}

// Reload returns the last programmed reload value
func (c *Countdown) Reload() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reload
}

// Enabled reports whether Configure has run
func (c *Countdown) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// WallCountdown expires after the wall-clock time the programmed ticks
// take at ClockHz. The host simulator uses it to run in real time.
type WallCountdown struct {
	mu       sync.Mutex
	clockHz  uint32
	reload   uint32
	deadline time.Time
	enabled  bool

	now func() time.Time
}

// NewWallCountdown creates a real-time counter clocked at clockHz
func NewWallCountdown(clockHz uint32) *WallCountdown {
	if clockHz == 0 {
		clockHz = core.DefaultClockHz
	}
	return &WallCountdown{clockHz: clockHz, now: time.Now}
}

// Configure enables the counter
func (w *WallCountdown) Configure(reload uint32) {
	w.mu.Lock()
	w.enabled = true
	w.mu.Unlock()
	w.Start(reload)
}

// Start programs reload and restarts the period
func (w *WallCountdown) Start(reload uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reload = reload & core.MaxReload
	w.deadline = w.now().Add(w.period())
}

// Expired reports whether the period has elapsed, then starts the next one
func (w *WallCountdown) Expired() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.enabled {
		return false
	}
	now := w.now()
	if now.Before(w.deadline) {
		return false
	}
	w.deadline = now.Add(w.period())
	return true
}

func (w *WallCountdown) period() time.Duration {
	ticks := uint64(w.reload) + 1
	return time.Duration(ticks * uint64(time.Second) / uint64(w.clockHz))
}
