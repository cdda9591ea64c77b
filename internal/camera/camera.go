package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var up = rl.Vector3{X: 0, Y: 1, Z: 0}

// Dolly is the chase camera rig that follows the ball.
type Dolly struct {
	Position   rl.Vector3
	LookTarget rl.Vector3

	Height      float32
	Distance    float32
	MaxDistance float32
	FollowRate  float32 // damping lambda for Position
	LookRate    float32 // damping lambda for LookTarget
	LookOffset  rl.Vector3
	Fovy        float32
}

func NewDolly(ball rl.Vector3) *Dolly {
	d := &Dolly{
		Height:      5.0,
		Distance:    4.0,
		MaxDistance: 10.0,
		FollowRate:  5.0,
		LookRate:    15.0,
		LookOffset:  rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:        60,
	}
	d.Reset(ball)
	return d
}

// Reset places the dolly above and behind the ball.
func (d *Dolly) Reset(ball rl.Vector3) {
	d.Position = rl.Vector3Add(ball, rl.Vector3{X: 0, Y: 5, Z: 5})
	d.LookTarget = ball
}

// Forward is the horizontal direction from the camera to the ball.
func (d *Dolly) Forward(ball rl.Vector3) rl.Vector3 {
	diff := rl.Vector3Subtract(ball, d.Position)
	diff.Y = 0
	if rl.Vector3Length(diff) == 0 {
		return rl.Vector3{X: 0, Y: 0, Z: -1}
	}
	return rl.Vector3Normalize(diff)
}

// Lateral is the horizontal axis to the right of Forward.
func (d *Dolly) Lateral(ball rl.Vector3) rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3CrossProduct(d.Forward(ball), up))
}

// Follow damps the dolly toward its chase position and keeps it within
// MaxDistance of the ball.
func (d *Dolly) Follow(ball rl.Vector3, dt float32) {
	target := rl.Vector3Add(ball, rl.Vector3Scale(d.Forward(ball), -d.Distance))
	target.Y += d.Height
	d.Position = Damp(d.Position, target, d.FollowRate, dt)

	offset := rl.Vector3Subtract(d.Position, ball)
	if rl.Vector3Length(offset) > d.MaxDistance {
		offset = rl.Vector3Scale(rl.Vector3Normalize(offset), d.MaxDistance)
	}
	d.Position = rl.Vector3Add(ball, offset)
}

// Look damps the look target toward a point just above the ball.
func (d *Dolly) Look(ball rl.Vector3, dt float32) {
	d.LookTarget = Damp(d.LookTarget, rl.Vector3Add(ball, d.LookOffset), d.LookRate, dt)
}

// Orbit circles center at the given radius and height, looking at center.
func (d *Dolly) Orbit(center rl.Vector3, radius, height, angle float32) {
	d.Position = rl.Vector3{
		X: center.X + radius*float32(math.Cos(float64(angle))),
		Y: height,
		Z: center.Z + radius*float32(math.Sin(float64(angle))),
	}
	d.LookTarget = center
}

func (d *Dolly) RaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   d.Position,
		Target:     d.LookTarget,
		Up:         up,
		Fovy:       d.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Damp moves a toward b framerate-independently. lambda is the decay rate
// per second.
func Damp(a, b rl.Vector3, lambda, dt float32) rl.Vector3 {
	t := 1 - float32(math.Exp(-float64(lambda*dt)))
	return rl.Vector3Lerp(a, b, t)
}
