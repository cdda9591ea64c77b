package geom

import (
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrBadIndices is returned when an index list is not a whole number of
// triangles or points outside the vertex buffer.
var ErrBadIndices = errors.New("geom: bad triangle indices")

// minArea2 is the smallest doubled triangle area NewMesh keeps.
const minArea2 = 1e-9

// Mesh is an indexed triangle list in local space.
type Mesh struct {
	Vertices []rl.Vector3
	Indices  []int
	// Dropped counts zero-area triangles removed by NewMesh.
	Dropped int
	bounds  AABB
}

// NewMesh validates the index list, drops zero-area triangles and caches
// the local bounds.
func NewMesh(vertices []rl.Vector3, indices []int) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrBadIndices, len(indices))
	}

	m := &Mesh{
		Vertices: vertices,
		Indices:  make([]int, 0, len(indices)),
		bounds:   EmptyAABB(),
	}
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("%w: index %d with %d vertices", ErrBadIndices, idx, len(vertices))
			}
		}
		a, b, c := vertices[i0], vertices[i1], vertices[i2]
		if triangleArea2(a, b, c) < minArea2 {
			m.Dropped++
			continue
		}
		m.Indices = append(m.Indices, i0, i1, i2)
		m.bounds = m.bounds.Expand(a).Expand(b).Expand(c)
	}
	return m, nil
}

// TriangleCount returns the number of triangles kept.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the local-space corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c rl.Vector3) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Bounds returns the local-space bounds of the kept triangles.
func (m *Mesh) Bounds() AABB {
	return m.bounds
}

// ClosestPointOnMesh returns the closest point on any triangle of mesh,
// placed in the world by transform, that is strictly nearer to p than
// maxDistance. Triangles whose world bounds are already farther than the
// best distance found so far are skipped. When nothing qualifies it
// returns maxDistance and false.
func ClosestPointOnMesh(p rl.Vector3, mesh *Mesh, transform rl.Matrix, maxDistance float32) (rl.Vector3, float32, bool) {
	var closest rl.Vector3
	best := maxDistance
	found := false
	if mesh == nil {
		return closest, best, false
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		la, lb, lc := mesh.Triangle(i)
		a := rl.Vector3Transform(la, transform)
		b := rl.Vector3Transform(lb, transform)
		c := rl.Vector3Transform(lc, transform)

		box := AABB{
			Min: rl.Vector3Min(rl.Vector3Min(a, b), c),
			Max: rl.Vector3Max(rl.Vector3Max(a, b), c),
		}
		if box.DistanceToPoint(p) > best {
			continue
		}

		if q, d := ClosestPointOnTriangle(p, a, b, c); d < best {
			closest, best, found = q, d, true
		}
	}
	return closest, best, found
}

// BoxMesh builds a closed box of the given full size centred on the origin,
// wound counter-clockwise when seen from outside.
func BoxMesh(size rl.Vector3) *Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	vertices := []rl.Vector3{
		{X: -hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz},
		{X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz},
		{X: hx, Y: -hy, Z: hz},
		{X: hx, Y: hy, Z: hz},
		{X: -hx, Y: hy, Z: hz},
	}
	indices := []int{
		4, 5, 6, 4, 6, 7, // +Z
		1, 0, 3, 1, 3, 2, // -Z
		5, 1, 2, 5, 2, 6, // +X
		0, 4, 7, 0, 7, 3, // -X
		7, 6, 2, 7, 2, 3, // +Y
		0, 1, 5, 0, 5, 4, // -Y
	}
	m, err := NewMesh(vertices, indices)
	if err != nil {
		panic(err)
	}
	return m
}

// PlaneMesh builds a horizontal quad facing +Y.
func PlaneMesh(width, depth float32) *Mesh {
	hw, hd := width/2, depth/2
	vertices := []rl.Vector3{
		{X: -hw, Z: -hd},
		{X: hw, Z: -hd},
		{X: hw, Z: hd},
		{X: -hw, Z: hd},
	}
	m, err := NewMesh(vertices, []int{3, 2, 1, 3, 1, 0})
	if err != nil {
		panic(err)
	}
	return m
}

// SphereMesh builds a closed UV sphere centred on the origin, wound like
// BoxMesh. The poles are single vertices, so no triangle is degenerate.
// rings is raised to at least 2 and segments to at least 3.
func SphereMesh(radius float32, rings, segments int) *Mesh {
	rings = max(rings, 2)
	segments = max(segments, 3)

	vertices := []rl.Vector3{{Y: radius}}
	for r := 1; r < rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y := radius * float32(math.Cos(phi))
		ring := radius * float32(math.Sin(phi))
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			vertices = append(vertices, rl.Vector3{
				X: ring * float32(math.Cos(theta)),
				Y: y,
				Z: ring * float32(math.Sin(theta)),
			})
		}
	}
	vertices = append(vertices, rl.Vector3{Y: -radius})
	bottom := len(vertices) - 1
	at := func(r, s int) int { return 1 + (r-1)*segments + s%segments }

	var indices []int
	for s := 0; s < segments; s++ {
		indices = append(indices, 0, at(1, s+1), at(1, s))
		for r := 1; r < rings-1; r++ {
			a, b := at(r, s), at(r, s+1)
			c, d := at(r+1, s), at(r+1, s+1)
			indices = append(indices, a, d, c, a, b, d)
		}
		indices = append(indices, at(rings-1, s), at(rings-1, s+1), bottom)
	}

	m, err := NewMesh(vertices, indices)
	if err != nil {
		panic(err)
	}
	return m
}
