package geom

import (
	"iter"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a scene graph node that may carry geometry.
type Node interface {
	// GetMesh returns nil for nodes without geometry.
	GetMesh() *Mesh
	LayerMask() uint32
}

// ClosestPointInScene searches every mesh node yielded by nodes whose layer
// mask shares a bit with mask. Meshes whose world bounds are farther than
// the best distance so far are skipped without visiting their triangles.
func ClosestPointInScene[N Node](p rl.Vector3, nodes iter.Seq2[N, rl.Matrix], maxDistance float32, mask uint32) (rl.Vector3, float32, bool) {
	var closest rl.Vector3
	best := maxDistance
	found := false

	for node, world := range nodes {
		if node.LayerMask()&mask == 0 {
			continue
		}
		mesh := node.GetMesh()
		if mesh == nil || mesh.TriangleCount() == 0 {
			continue
		}
		if mesh.Bounds().Transform(world).DistanceToPoint(p) > best {
			continue
		}
		if q, d, ok := ClosestPointOnMesh(p, mesh, world, best); ok {
			closest, best, found = q, d, true
		}
	}
	return closest, best, found
}
