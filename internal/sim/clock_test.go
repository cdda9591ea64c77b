package sim

import (
	"math"
	"math/rand"
	"testing"
)

func drain(c *Clock) int {
	n := 0
	for c.Due() {
		c.Advance()
		n++
	}
	return n
}

func TestClockCapsLongFrames(t *testing.T) {
	c := NewClock(60, 3)

	capped := c.Accumulate(5)
	if capped != c.MaxDelta() {
		t.Errorf("Expected delta capped to %f, got %f", c.MaxDelta(), capped)
	}
	if math.Abs(capped-0.05) > 1e-12 {
		t.Errorf("Expected 0.05, got %f", capped)
	}
	if n := drain(&c); n != 3 {
		t.Errorf("Expected exactly 3 ticks, got %d", n)
	}
}

func TestClockShortFrameRunsNoTicks(t *testing.T) {
	c := NewClock(60, 3)
	c.Accumulate(0.5 / 60)

	if n := drain(&c); n != 0 {
		t.Errorf("Expected no ticks for half a step, got %d", n)
	}
	if f := c.Fraction(); math.Abs(f-0.5) > 1e-9 {
		t.Errorf("Expected fraction 0.5, got %f", f)
	}
}

func TestClockIgnoresNegativeDelta(t *testing.T) {
	c := NewClock(30, 3)
	c.Accumulate(0.01)
	if got := c.Accumulate(-1); got != 0 {
		t.Errorf("Expected 0 banked, got %f", got)
	}
	if c.AccumulatedTime() != 0.01 {
		t.Errorf("Expected 0.01 accumulated, got %f", c.AccumulatedTime())
	}
}

func TestClockInvariantHoldsForRandomFrames(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, tps := range []int{15, 30, 60} {
		c := NewClock(tps, 3)
		for i := 0; i < 5000; i++ {
			var delta float64
			switch r.Intn(4) {
			case 0:
				delta = r.Float64() * 0.002
			case 1:
				delta = r.Float64() * 0.05
			case 2:
				delta = r.Float64() * 2
			default:
				delta = 1.0 / 144
			}
			c.Accumulate(delta)
			n := drain(&c)
			if n > c.MaxFixedUpdateCount {
				t.Fatalf("%d TPS frame %d: %d ticks exceed the cap", tps, i, n)
			}

			fixed, acc := c.FixedIntervalTime(), c.AccumulatedTime()
			if fixed > acc || acc >= fixed+c.FixedTimestep {
				t.Fatalf("%d TPS frame %d: fixed %f, accumulated %f", tps, i, fixed, acc)
			}
			if f := c.Fraction(); f < 0 || f >= 1 {
				t.Fatalf("%d TPS frame %d: fraction %f out of range", tps, i, f)
			}
		}
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock(60, 3)
	c.Accumulate(0.04)
	drain(&c)
	c.Reset()

	if c.Ticks() != 0 || c.AccumulatedTime() != 0 || c.FixedIntervalTime() != 0 {
		t.Errorf("Expected a zeroed clock, got ticks=%d acc=%f", c.Ticks(), c.AccumulatedTime())
	}
}
