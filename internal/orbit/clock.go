package orbit

import "time"

// DefaultTickRate is the nominal number of ticks per second: one per frame
// on a 60 Hz display.
const DefaultTickRate = 60.0

// maxFrameGap caps a single frame interval so that a stalled or suspended
// host does not fling every body forward at once.
const maxFrameGap = 250 * time.Millisecond

// Clock converts wall-clock frame timestamps into fractional ticks so that
// orbital speed does not depend on the display refresh rate.
type Clock struct {
	TickRate float64
	last     time.Time
}

func NewClock(tickRate float64) *Clock {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Clock{TickRate: tickRate}
}

// Advance returns the ticks elapsed since the previous call. The first call
// returns 0.
func (c *Clock) Advance(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	gap := now.Sub(c.last)
	c.last = now
	if gap <= 0 {
		return 0
	}
	if gap > maxFrameGap {
		gap = maxFrameGap
	}
	return gap.Seconds() * c.TickRate
}

// Reset forgets the previous timestamp.
func (c *Clock) Reset() { c.last = time.Time{} }
