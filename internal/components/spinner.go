package components

import (
	"marble/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultSpinSpeed is the pickup spin rate in radians per second.
const DefaultSpinSpeed = 3.0

// Spinner turns its GameObject around Axis at a constant rate, relative to
// the rotation it had when started.
type Spinner struct {
	engine.BaseComponent
	Axis  rl.Vector3
	Speed float32

	base rl.Quaternion
	time float32
}

func NewSpinner(speed float32) *Spinner {
	return &Spinner{
		Axis:  rl.Vector3{X: 0, Y: 1, Z: 0},
		Speed: speed,
		base:  rl.QuaternionIdentity(),
	}
}

func (s *Spinner) Start() {
	if g := s.GetGameObject(); g != nil {
		s.base = g.Transform.Rotation
	}
}

func (s *Spinner) Update(deltaTime float32) {
	g := s.GetGameObject()
	if g == nil {
		return
	}
	s.time += deltaTime
	s.apply(g)
}

// Reset rewinds the spin to the starting rotation.
func (s *Spinner) Reset() {
	s.time = 0
	if g := s.GetGameObject(); g != nil {
		s.apply(g)
	}
}

func (s *Spinner) apply(g *engine.GameObject) {
	spin := rl.QuaternionFromAxisAngle(s.Axis, s.Speed*s.time)
	g.Transform.Rotation = rl.QuaternionMultiply(spin, s.base)
}
