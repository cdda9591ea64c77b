package engine

import (
	"iter"
	"marble/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Scene struct {
	Name        string
	GameObjects []*GameObject // roots, in insertion order
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.index(g)
}

// index registers g and its descendants for UID lookup.
func (s *Scene) index(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Scene = s
	s.uidMap[g.UID] = g
	for _, c := range g.Children {
		s.index(c)
	}
}

func (s *Scene) unindex(g *GameObject) {
	delete(s.uidMap, g.UID)
	for _, c := range g.Children {
		s.unindex(c)
	}
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	if s.removeRoot(g) {
		s.unindex(g)
	}
}

func (s *Scene) removeRoot(g *GameObject) bool {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for g := range s.Walk() {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for g := range s.Walk() {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

type walkFrame struct {
	obj    *GameObject
	parent rl.Matrix
}

// Walk yields every node depth-first in insertion order together with its
// world transform. It uses an explicit stack, so arbitrarily deep graphs
// do not grow the goroutine stack, and stops as soon as yield returns false.
func (s *Scene) Walk() iter.Seq2[*GameObject, rl.Matrix] {
	return func(yield func(*GameObject, rl.Matrix) bool) {
		stack := make([]walkFrame, 0, len(s.GameObjects))
		for i := len(s.GameObjects) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{obj: s.GameObjects[i], parent: rl.MatrixIdentity()})
		}

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			world := rl.MatrixMultiply(top.obj.Transform.Matrix(), top.parent)
			if !yield(top.obj, world) {
				return
			}
			for i := len(top.obj.Children) - 1; i >= 0; i-- {
				stack = append(stack, walkFrame{obj: top.obj.Children[i], parent: world})
			}
		}
	}
}

// Bounds is the union of every mesh node's world bounds. It is empty when
// the scene has no geometry.
func (s *Scene) Bounds() geom.AABB {
	bounds := geom.EmptyAABB()
	for g, world := range s.Walk() {
		if g.Mesh == nil || g.Mesh.TriangleCount() == 0 {
			continue
		}
		bounds = bounds.Union(g.Mesh.Bounds().Transform(world))
	}
	return bounds
}

func (s *Scene) Start() {
	for g := range s.Walk() {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
