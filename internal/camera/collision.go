// Package camera positions the chase camera and keeps it out of level
// geometry.
package camera

import (
	"iter"
	"marble/internal/engine"
	"marble/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const DefaultRadius = 2.5

// Scene is a graph of nodes with world transforms.
type Scene interface {
	Walk() iter.Seq2[*engine.GameObject, rl.Matrix]
}

// Resolver pushes the camera out of geometry on the Mask layers.
type Resolver struct {
	Radius float32
	Mask   uint32
}

func NewResolver(radius float32, layer int) Resolver {
	return Resolver{Radius: radius, Mask: engine.LayerBit(layer).Mask()}
}

// Resolve returns pos moved directly away from the nearest surface so that
// it is at least Radius away. The push is not smoothed. The bool reports
// whether a push happened.
func (r Resolver) Resolve(pos rl.Vector3, scene Scene) (rl.Vector3, bool) {
	closest, dist, ok := geom.ClosestPointInScene(pos, scene.Walk(), r.Radius, r.Mask)
	if !ok || dist >= r.Radius {
		return pos, false
	}
	// A camera exactly on the surface has no direction to move in.
	dir := rl.Vector3Normalize(rl.Vector3Subtract(pos, closest))
	return rl.Vector3Add(pos, rl.Vector3Scale(dir, r.Radius-dist)), true
}
