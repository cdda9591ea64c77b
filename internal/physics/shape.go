package physics

import (
	"marble/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape is one of Sphere, Box or Trimesh.
type Shape interface {
	bounds(position rl.Vector3, orientation rl.Quaternion) geom.AABB
	inertia(mass float32) float32
}

type Sphere struct {
	Radius float32
}

func (s Sphere) bounds(position rl.Vector3, _ rl.Quaternion) geom.AABB {
	return geom.AABBAround(position, rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius})
}

func (s Sphere) inertia(mass float32) float32 {
	return 0.4 * mass * s.Radius * s.Radius
}

type Box struct {
	HalfExtents rl.Vector3
}

func (s Box) bounds(position rl.Vector3, orientation rl.Quaternion) geom.AABB {
	return NewOBB(position, s.HalfExtents, orientation).Bounds()
}

func (s Box) inertia(mass float32) float32 {
	h := s.HalfExtents
	return mass * (h.X*h.X + h.Y*h.Y + h.Z*h.Z) * 4 / 18
}

// Trimesh is static or kinematic level geometry.
type Trimesh struct {
	Mesh *geom.Mesh
}

func (s Trimesh) bounds(position rl.Vector3, orientation rl.Quaternion) geom.AABB {
	m := rl.MatrixMultiply(
		rl.QuaternionToMatrix(orientation),
		rl.MatrixTranslate(position.X, position.Y, position.Z),
	)
	return s.Mesh.Bounds().Transform(m)
}

func (s Trimesh) inertia(float32) float32 {
	return 0
}
