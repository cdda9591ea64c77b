package render

import (
	"marble/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	NearPlane float32 = 0.1
	FarPlane  float32 = 1000.0
)

// Frustum holds the six view planes, normals pointing inward.
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane is ax + by + cz + d = 0.
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

// ExtractFrustum builds the planes of camera for a viewport with the given
// aspect ratio (Gribb/Hartmann).
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, NearPlane, FarPlane)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, NearPlane, FarPlane)
	}
	vp := rl.MatrixMultiply(view, proj)

	var f Frustum
	f.planes[0] = normalizePlane(vp.M3+vp.M0, vp.M7+vp.M4, vp.M11+vp.M8, vp.M15+vp.M12)
	f.planes[1] = normalizePlane(vp.M3-vp.M0, vp.M7-vp.M4, vp.M11-vp.M8, vp.M15-vp.M12)
	f.planes[2] = normalizePlane(vp.M3+vp.M1, vp.M7+vp.M5, vp.M11+vp.M9, vp.M15+vp.M13)
	f.planes[3] = normalizePlane(vp.M3-vp.M1, vp.M7-vp.M5, vp.M11-vp.M9, vp.M15-vp.M13)
	f.planes[4] = normalizePlane(vp.M3+vp.M2, vp.M7+vp.M6, vp.M11+vp.M10, vp.M15+vp.M14)
	f.planes[5] = normalizePlane(vp.M3-vp.M2, vp.M7-vp.M6, vp.M11-vp.M10, vp.M15-vp.M14)
	return f
}

func normalizePlane(a, b, c, d float32) Plane {
	n := rl.Vector3{X: a, Y: b, Z: c}
	length := rl.Vector3Length(n)
	if length == 0 {
		return Plane{Normal: n, Distance: d}
	}
	return Plane{Normal: rl.Vector3Scale(n, 1/length), Distance: d / length}
}

// ContainsSphere reports whether the sphere is inside or touches the frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		if rl.Vector3DotProduct(f.planes[i].Normal, center)+f.planes[i].Distance < -radius {
			return false
		}
	}
	return true
}

// ContainsAABB is conservative: it can accept boxes just outside a corner,
// never rejects a visible one.
func (f *Frustum) ContainsAABB(box geom.AABB) bool {
	if box.IsEmpty() {
		return false
	}
	for i := range f.planes {
		n := f.planes[i].Normal
		// Corner furthest along the plane normal.
		p := box.Min
		if n.X >= 0 {
			p.X = box.Max.X
		}
		if n.Y >= 0 {
			p.Y = box.Max.Y
		}
		if n.Z >= 0 {
			p.Z = box.Max.Z
		}
		if rl.Vector3DotProduct(n, p)+f.planes[i].Distance < 0 {
			return false
		}
	}
	return true
}
