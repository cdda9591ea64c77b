// Package geom holds the closest-point queries used for camera collision
// and sphere contact generation.
//
// All functions work on values and keep their temporaries on the stack, so
// they are safe to call from several goroutines at once.
package geom

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ClosestPointOnSegment projects p onto the segment ab, clamping the
// parameter to [0,1]. A zero-length segment returns a.
func ClosestPointOnSegment(p, a, b rl.Vector3) (rl.Vector3, float32) {
	ab := rl.Vector3Subtract(b, a)
	denom := rl.Vector3DotProduct(ab, ab)
	if denom == 0 {
		return a, rl.Vector3Distance(p, a)
	}

	t := rl.Vector3DotProduct(rl.Vector3Subtract(p, a), ab) / denom
	var closest rl.Vector3
	switch {
	case t <= 0:
		closest = a
	case t >= 1:
		closest = b
	default:
		closest = rl.Vector3Add(a, rl.Vector3Scale(ab, t))
	}
	return closest, rl.Vector3Distance(p, closest)
}

// Barycentric returns (u, v) such that p = a + u*(b-a) + v*(c-a) for p in
// the plane of the triangle. Zero-area triangles divide by zero and yield
// NaN or Inf; callers that cannot rule them out should filter meshes with
// NewMesh first.
func Barycentric(p, a, b, c rl.Vector3) (u, v float32) {
	v0 := rl.Vector3Subtract(b, a)
	v1 := rl.Vector3Subtract(c, a)
	v2 := rl.Vector3Subtract(p, a)

	d00 := rl.Vector3DotProduct(v0, v0)
	d01 := rl.Vector3DotProduct(v0, v1)
	d11 := rl.Vector3DotProduct(v1, v1)
	d20 := rl.Vector3DotProduct(v2, v0)
	d21 := rl.Vector3DotProduct(v2, v1)

	denom := d00*d11 - d01*d01
	u = (d11*d20 - d01*d21) / denom
	v = (d00*d21 - d01*d20) / denom
	return u, v
}

// IsPointInTriangle reports whether p's barycentric coordinates lie inside
// the triangle, boundary included. NaN coordinates from a degenerate
// triangle compare false and report outside.
func IsPointInTriangle(p, a, b, c rl.Vector3) bool {
	u, v := Barycentric(p, a, b, c)
	return u >= 0 && v >= 0 && u+v <= 1
}

// ClosestPointOnTriangle returns the point of triangle abc nearest to p.
func ClosestPointOnTriangle(p, a, b, c rl.Vector3) (rl.Vector3, float32) {
	normal := rl.Vector3Normalize(rl.Vector3CrossProduct(
		rl.Vector3Subtract(b, a),
		rl.Vector3Subtract(c, a),
	))

	height := rl.Vector3DotProduct(rl.Vector3Subtract(p, a), normal)
	projected := rl.Vector3Subtract(p, rl.Vector3Scale(normal, height))
	if IsPointInTriangle(projected, a, b, c) {
		return projected, rl.Vector3Distance(projected, p)
	}

	// Edge order ab, ac, bc; strict comparison keeps the earlier edge on ties.
	best, bestDist := ClosestPointOnSegment(p, a, b)
	if q, d := ClosestPointOnSegment(p, a, c); d < bestDist {
		best, bestDist = q, d
	}
	if q, d := ClosestPointOnSegment(p, b, c); d < bestDist {
		best, bestDist = q, d
	}
	return best, bestDist
}

// triangleArea2 is twice the area of triangle abc.
func triangleArea2(a, b, c rl.Vector3) float32 {
	return rl.Vector3Length(rl.Vector3CrossProduct(
		rl.Vector3Subtract(b, a),
		rl.Vector3Subtract(c, a),
	))
}
