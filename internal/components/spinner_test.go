package components

import (
	"marble/internal/engine"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestSpinnerTurnsAroundAxis(t *testing.T) {
	g := engine.NewGameObject("Coin")
	s := NewSpinner(math.Pi)
	g.AddComponent(s)
	g.Start()

	g.Update(0.5)

	p := rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, g.Transform.Rotation)
	if rl.Vector3Distance(p, rl.Vector3{Z: -1}) > 1e-5 {
		t.Errorf("Expected a quarter turn about +Y to map x to -z, got %v", p)
	}
}

func TestSpinnerKeepsBaseRotation(t *testing.T) {
	g := engine.NewGameObject("Star")
	g.Transform.Rotation = rl.QuaternionFromEuler(0.5, 0, 0)
	base := g.Transform.Rotation
	s := NewSpinner(2)
	g.AddComponent(s)
	g.Start()

	g.Update(1)
	s.Reset()
	if g.Transform.Rotation != rl.QuaternionMultiply(rl.QuaternionFromAxisAngle(s.Axis, 0), base) {
		t.Errorf("Reset should restore the base rotation, got %v", g.Transform.Rotation)
	}
}

func TestSpinnerInactiveObjectDoesNotSpin(t *testing.T) {
	g := engine.NewGameObject("Coin")
	g.AddComponent(NewSpinner(3))
	g.Start()
	g.Active = false

	g.Update(1)
	if g.Transform.Rotation != rl.QuaternionIdentity() {
		t.Errorf("Inactive object should not spin, got %v", g.Transform.Rotation)
	}
}

func TestMotionIsFoundOnItsNode(t *testing.T) {
	g := engine.NewGameObject("Lift")
	if engine.GetComponent[*Motion](g) != nil {
		t.Errorf("Expected no motion on a bare node")
	}
	m := NewMotion(nil, nil)
	g.AddComponent(m)
	if got := engine.GetComponent[*Motion](g); got != m {
		t.Errorf("Expected GetComponent to return the attached motion, got %v", got)
	}
	if m.GetGameObject() != g {
		t.Errorf("Expected motion to know its node")
	}
}
