package engine

import (
	"marble/internal/geom"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

// Matrix composes scale, then rotation, then translation.
func (t Transform) Matrix() rl.Matrix {
	scale := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	rot := rl.QuaternionToMatrix(t.Rotation)
	trans := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

// SetEuler sets the rotation from pitch/yaw/roll in radians.
func (t *Transform) SetEuler(e rl.Vector3) {
	t.Rotation = rl.QuaternionFromEuler(e.X, e.Y, e.Z)
}

type GameObject struct {
	UID       uint64
	Name      string
	Tags      []string
	Props     map[string]string // authoring data, read once at level load
	Transform Transform
	Layers    Layers
	Mesh      *geom.Mesh
	Color     rl.Color
	Visible   bool
	Active    bool
	Scene     *Scene
	Parent    *GameObject
	Children  []*GameObject

	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:     nextUID.Add(1),
		Name:    name,
		Active:  true,
		Visible: true,
		Layers:  DefaultLayers,
		Color:   rl.LightGray,
		Transform: Transform{
			Rotation: rl.QuaternionIdentity(),
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		Props:      make(map[string]string),
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

// NewMeshObject creates a visible node carrying mesh at position.
func NewMeshObject(name string, mesh *geom.Mesh, position rl.Vector3) *GameObject {
	g := NewGameObject(name)
	g.Mesh = mesh
	g.Transform.Position = position
	return g
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
	for _, child := range g.Children {
		child.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Prop returns the authoring value for key, or def when it is absent.
func (g *GameObject) Prop(key, def string) string {
	if v, ok := g.Props[key]; ok {
		return v
	}
	return def
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	} else if child.Scene != nil {
		child.Scene.removeRoot(child)
	}
	child.Parent = g
	child.Scene = g.Scene
	g.Children = append(g.Children, child)
	if g.Scene != nil {
		g.Scene.index(child)
	}
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// GetMesh and LayerMask let GameObjects feed closest-point scene queries.
func (g *GameObject) GetMesh() *geom.Mesh { return g.Mesh }

func (g *GameObject) LayerMask() uint32 { return uint32(g.Layers) }

// WorldMatrix composes the local transform with every ancestor.
func (g *GameObject) WorldMatrix() rl.Matrix {
	m := g.Transform.Matrix()
	for p := g.Parent; p != nil; p = p.Parent {
		m = rl.MatrixMultiply(m, p.Transform.Matrix())
	}
	return m
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	return rl.Vector3Transform(rl.Vector3Zero(), g.WorldMatrix())
}

func (g *GameObject) WorldRotation() rl.Quaternion {
	q := g.Transform.Rotation
	for p := g.Parent; p != nil; p = p.Parent {
		q = rl.QuaternionMultiply(p.Transform.Rotation, q)
	}
	return q
}

// VisibleInTree reports whether g and every ancestor are visible.
func (g *GameObject) VisibleInTree() bool {
	for n := g; n != nil; n = n.Parent {
		if !n.Visible {
			return false
		}
	}
	return true
}
