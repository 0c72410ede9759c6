package regen

import "time"

// Clock is the desktop host's TickRequester. The app polls Fire once per
// frame; Fire reports true each time a full interval has elapsed since the
// last fire. Backlog beyond one interval is dropped so a stalled frame
// cannot burst-rebuild.
type Clock struct {
	interval    time.Duration
	accumulator time.Duration
	last        time.Time
	active      bool
}

// NewClock returns an idle clock.
func NewClock() *Clock { return &Clock{} }

// Request arms the clock. When already armed it only updates the interval
// and keeps the current cadence.
func (c *Clock) Request(interval time.Duration) {
	c.interval = interval
	if c.active {
		return
	}
	c.active = true
	c.accumulator = 0
	c.last = time.Time{}
}

// Cancel disarms the clock.
func (c *Clock) Cancel() { c.active = false }

// Active reports whether the clock is armed.
func (c *Clock) Active() bool { return c.active }

// Fire advances the clock by the wall time since the last poll and reports
// whether a tick is due.
func (c *Clock) Fire() bool {
	if !c.active {
		return false
	}
	now := time.Now()
	if c.last.IsZero() {
		c.last = now
	}
	c.accumulator += now.Sub(c.last)
	c.last = now
	if c.accumulator >= c.interval {
		c.accumulator = 0
		return true
	}
	return false
}
