package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// dampFactor is the velocity multiplier for damping d over dt seconds.
func dampFactor(d, dt float32) float32 {
	if d <= 0 {
		return 1
	}
	if d >= 1 {
		return 0
	}
	return float32(math.Pow(float64(1-d), float64(dt)))
}

// integrateOrientation advances q by angular velocity w (rad/s) over dt.
func integrateOrientation(q rl.Quaternion, w rl.Vector3, dt float32) rl.Quaternion {
	if w.X == 0 && w.Y == 0 && w.Z == 0 {
		return q
	}
	h := 0.5 * dt
	// dq = 0.5 * (w, 0) * q
	dq := rl.Quaternion{
		X: h * (w.X*q.W + w.Y*q.Z - w.Z*q.Y),
		Y: h * (w.Y*q.W + w.Z*q.X - w.X*q.Z),
		Z: h * (w.Z*q.W + w.X*q.Y - w.Y*q.X),
		W: h * (-w.X*q.X - w.Y*q.Y - w.Z*q.Z),
	}
	return rl.QuaternionNormalize(rl.Quaternion{
		X: q.X + dq.X,
		Y: q.Y + dq.Y,
		Z: q.Z + dq.Z,
		W: q.W + dq.W,
	})
}

// tangent removes the component of v along unit normal n.
func tangent(v, n rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(v, rl.Vector3Scale(n, rl.Vector3DotProduct(v, n)))
}
