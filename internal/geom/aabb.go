package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// EmptyAABB returns an inverted box that any Expand call will replace.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: rl.Vector3{X: inf, Y: inf, Z: inf},
		Max: rl.Vector3{X: -inf, Y: -inf, Z: -inf},
	}
}

// AABBFromPoints returns the tightest box around the given points.
func AABBFromPoints(points ...rl.Vector3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Expand(p)
	}
	return box
}

// AABBAround returns the box reaching half in each direction from center.
func AABBAround(center, half rl.Vector3) AABB {
	return AABB{Min: rl.Vector3Subtract(center, half), Max: rl.Vector3Add(center, half)}
}

// IsEmpty reports whether the box contains no points.
func (a AABB) IsEmpty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

func (a AABB) Expand(p rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Min(a.Min, p),
		Max: rl.Vector3Max(a.Max, p),
	}
}

func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: rl.Vector3Min(a.Min, b.Min),
		Max: rl.Vector3Max(a.Max, b.Max),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// ClosestPoint clamps p into the box.
func (a AABB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: clampf(p.X, a.Min.X, a.Max.X),
		Y: clampf(p.Y, a.Min.Y, a.Max.Y),
		Z: clampf(p.Z, a.Min.Z, a.Max.Z),
	}
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// DistanceToPoint is zero for points inside the box. It never exceeds the
// distance from p to any point contained in the box.
func (a AABB) DistanceToPoint(p rl.Vector3) float32 {
	if a.IsEmpty() {
		return float32(math.Inf(1))
	}
	return rl.Vector3Distance(a.ClosestPoint(p), p)
}

// Transform returns the axis-aligned box around the eight transformed corners.
func (a AABB) Transform(m rl.Matrix) AABB {
	if a.IsEmpty() {
		return a
	}
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		corner := a.Min
		if i&1 != 0 {
			corner.X = a.Max.X
		}
		if i&2 != 0 {
			corner.Y = a.Max.Y
		}
		if i&4 != 0 {
			corner.Z = a.Max.Z
		}
		out = out.Expand(rl.Vector3Transform(corner, m))
	}
	return out
}

// BoundingBox converts to raylib's type for drawing and culling.
func (a AABB) BoundingBox() rl.BoundingBox {
	return rl.NewBoundingBox(a.Min, a.Max)
}
