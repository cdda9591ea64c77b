// Package motion turns authored time expressions into platform motion.
package motion

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Func yields a position, or Euler rotation in radians, at simulation time t.
type Func func(t float64) rl.Vector3

// Linear moves from origin at a constant velocity.
func Linear(origin, velocity rl.Vector3) Func {
	return func(t float64) rl.Vector3 {
		return rl.Vector3Add(origin, rl.Vector3Scale(velocity, float32(t)))
	}
}

// Oscillate swings sinusoidally around origin. One full cycle takes period
// seconds.
func Oscillate(origin, amplitude rl.Vector3, period float64) Func {
	return func(t float64) rl.Vector3 {
		s := float32(math.Sin(2 * math.Pi * t / period))
		return rl.Vector3Add(origin, rl.Vector3Scale(amplitude, s))
	}
}

// Spin rotates from init at rate radians per second around each axis.
func Spin(init, rate rl.Vector3) Func {
	return Linear(init, rate)
}
