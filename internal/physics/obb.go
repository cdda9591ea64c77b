package physics

import (
	"marble/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, half extents and orientation.
func NewOBB(center, halfSize rl.Vector3, orientation rl.Quaternion) OBB {
	return OBB{
		Center:   center,
		HalfSize: halfSize,
		Axes: [3]rl.Vector3{
			rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, orientation),
			rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, orientation),
			rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, orientation),
		},
	}
}

// toLocal expresses a world point in box coordinates.
func (o OBB) toLocal(point rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(point, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

func (o OBB) toWorld(local rl.Vector3) rl.Vector3 {
	result := o.Center
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[0], local.X))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], local.Y))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], local.Z))
	return result
}

// ClosestPoint returns the closest point of the solid box to point. Points
// inside the box are returned unchanged.
func (o OBB) ClosestPoint(point rl.Vector3) rl.Vector3 {
	local := o.toLocal(point)
	return o.toWorld(rl.Vector3{
		X: clampf(local.X, -o.HalfSize.X, o.HalfSize.X),
		Y: clampf(local.Y, -o.HalfSize.Y, o.HalfSize.Y),
		Z: clampf(local.Z, -o.HalfSize.Z, o.HalfSize.Z),
	})
}

// ExitFace returns the face nearest to an interior point as a point on that
// face and its outward normal.
func (o OBB) ExitFace(point rl.Vector3) (rl.Vector3, rl.Vector3) {
	local := o.toLocal(point)
	l := [3]float32{local.X, local.Y, local.Z}
	h := [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z}

	axis, sign := 0, float32(1)
	best := float32(-1)
	for i := 0; i < 3; i++ {
		for _, s := range [2]float32{1, -1} {
			gap := h[i] - s*l[i]
			if best < 0 || gap < best {
				best, axis, sign = gap, i, s
			}
		}
	}

	l[axis] = sign * h[axis]
	face := o.toWorld(rl.Vector3{X: l[0], Y: l[1], Z: l[2]})
	return face, rl.Vector3Scale(o.Axes[axis], sign)
}

// Bounds returns the world AABB enclosing the box.
func (o OBB) Bounds() geom.AABB {
	var extent rl.Vector3
	for i, h := range [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z} {
		a := o.Axes[i]
		extent.X += absf(a.X) * h
		extent.Y += absf(a.Y) * h
		extent.Z += absf(a.Z) * h
	}
	return geom.AABB{Min: rl.Vector3Subtract(o.Center, extent), Max: rl.Vector3Add(o.Center, extent)}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
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
