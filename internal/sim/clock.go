// Package sim runs the fixed-timestep simulation against a variable-rate
// frame callback.
package sim

import "math"

// Clock banks frame time and drains it in whole fixed steps. The fixed
// interval time is kept as a tick count so it only ever moves in exact
// multiples of the timestep.
type Clock struct {
	FixedTimestep       float64
	MaxFixedUpdateCount int

	accumulated float64
	ticks       int64
}

func NewClock(ticksPerSecond, maxFixedUpdateCount int) Clock {
	return Clock{
		FixedTimestep:       1 / float64(ticksPerSecond),
		MaxFixedUpdateCount: maxFixedUpdateCount,
	}
}

// MaxDelta is the most frame time a single frame may bank.
func (c *Clock) MaxDelta() float64 {
	return c.FixedTimestep * float64(c.MaxFixedUpdateCount)
}

// Accumulate banks delta, capped to MaxDelta, and returns the amount banked.
// Negative deltas bank nothing.
func (c *Clock) Accumulate(delta float64) float64 {
	if delta < 0 || math.IsNaN(delta) {
		delta = 0
	}
	delta = math.Min(delta, c.MaxDelta())
	c.accumulated += delta
	return delta
}

// Due reports whether another whole step fits in the banked time.
func (c *Clock) Due() bool {
	return float64(c.ticks+1)*c.FixedTimestep <= c.accumulated
}

// Advance records one completed step.
func (c *Clock) Advance() {
	c.ticks++
}

// Fraction is how far the banked time has progressed into the next step,
// in [0, 1).
func (c *Clock) Fraction() float64 {
	f := (c.accumulated - c.FixedIntervalTime()) / c.FixedTimestep
	switch {
	case f < 0:
		return 0
	case f >= 1:
		return math.Nextafter(1, 0)
	}
	return f
}

func (c *Clock) Reset() {
	c.accumulated = 0
	c.ticks = 0
}

func (c *Clock) Ticks() int64 { return c.ticks }

func (c *Clock) AccumulatedTime() float64 { return c.accumulated }

func (c *Clock) FixedIntervalTime() float64 {
	return float64(c.ticks) * c.FixedTimestep
}
