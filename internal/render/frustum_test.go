package render

import (
	"marble/internal/geom"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func lookDownNegZ() Frustum {
	cam := rl.Camera3D{
		Position:   rl.Vector3{},
		Target:     rl.Vector3{Z: -1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
	return ExtractFrustum(cam, 1)
}

func TestFrustumContainsSphere(t *testing.T) {
	f := lookDownNegZ()

	tests := []struct {
		name   string
		center rl.Vector3
		radius float32
		want   bool
	}{
		{"ahead", rl.Vector3{Z: -10}, 1, true},
		{"behind", rl.Vector3{Z: 10}, 1, false},
		{"far right", rl.Vector3{X: 100, Z: -10}, 1, false},
		{"straddling the left edge", rl.Vector3{X: -6.2, Z: -10}, 1, true},
		{"beyond far plane", rl.Vector3{Z: -2000}, 1, false},
	}
	for _, tt := range tests {
		if got := f.ContainsSphere(tt.center, tt.radius); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestFrustumContainsAABB(t *testing.T) {
	f := lookDownNegZ()
	half := rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}

	if !f.ContainsAABB(geom.AABBAround(rl.Vector3{Z: -10}, half)) {
		t.Error("Expected a box straight ahead to be visible")
	}
	if f.ContainsAABB(geom.AABBAround(rl.Vector3{Z: 10}, half)) {
		t.Error("Expected a box behind the camera to be culled")
	}
	if f.ContainsAABB(geom.AABBAround(rl.Vector3{Y: -50, Z: -10}, half)) {
		t.Error("Expected a box far below to be culled")
	}
	// The camera sits inside this floor.
	floor := geom.AABBAround(rl.Vector3{}, rl.Vector3{X: 50, Y: 0.5, Z: 50})
	if !f.ContainsAABB(floor) {
		t.Error("Expected a box around the camera to be visible")
	}
	if f.ContainsAABB(geom.EmptyAABB()) {
		t.Error("Expected an empty box to be culled")
	}
}
