// Package interp smooths a fixed-rate simulated pose for variable-rate
// rendering.
package interp

import (
	"marble/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Body is anything with a simulated pose.
type Body interface {
	GetPosition() rl.Vector3
	GetOrientation() rl.Quaternion
}

type Pose struct {
	Position    rl.Vector3
	Orientation rl.Quaternion
}

// PoseOf reads the current pose of b.
func PoseOf(b Body) Pose {
	return Pose{Position: b.GetPosition(), Orientation: b.GetOrientation()}
}

// Apply writes the pose onto a render node.
func (p Pose) Apply(g *engine.GameObject) {
	g.Transform.Position = p.Position
	g.Transform.Rotation = p.Orientation
}

// Interpolator keeps the poses of the last two completed ticks. Next is
// always the most recent tick and Last the one before it.
type Interpolator struct {
	last Pose
	next Pose
}

// Reset collapses both snapshots onto the body's current pose.
func (i *Interpolator) Reset(b Body) {
	p := PoseOf(b)
	i.last, i.next = p, p
}

// Advance shifts next into last and reads the just-stepped pose. Call it
// exactly once per completed tick.
func (i *Interpolator) Advance(b Body) {
	i.last = i.next
	i.next = PoseOf(b)
}

func (i *Interpolator) Last() Pose { return i.last }

func (i *Interpolator) Next() Pose { return i.next }

// Sample blends last and next, lerping position and slerping orientation.
// t is clamped to [0,1]; the endpoints return the stored poses exactly.
func (i *Interpolator) Sample(t float32) Pose {
	switch {
	case t <= 0:
		return i.last
	case t >= 1:
		return i.next
	}
	return Pose{
		Position:    rl.Vector3Lerp(i.last.Position, i.next.Position, t),
		Orientation: rl.QuaternionSlerp(i.last.Orientation, i.next.Orientation, t),
	}
}
