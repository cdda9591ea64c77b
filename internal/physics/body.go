package physics

import (
	"marble/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type BodyType int

const (
	Dynamic BodyType = iota
	Static
	// Kinematic bodies move by their assigned velocity and ignore impulses.
	Kinematic
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	}
	return "unknown"
}

type Material struct {
	Restitution float32
	Friction    float32
}

// DefaultMaterial matches the contact defaults levels are tuned against.
var DefaultMaterial = Material{Restitution: 0, Friction: 0.3}

type Body struct {
	ID              int
	Name            string
	Type            BodyType
	Shape           Shape
	Position        rl.Vector3
	Orientation     rl.Quaternion
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // radians per second, world axes
	Mass            float32
	LinearDamping   float32
	AngularDamping  float32
	Material        Material
	// Sticky marks surfaces riders should be carried along by.
	Sticky bool

	world *World
}

// NewBody creates a body at the origin. Mass is ignored for static and
// kinematic bodies.
func NewBody(name string, typ BodyType, shape Shape, mass float32) *Body {
	if typ != Dynamic {
		mass = 0
	}
	return &Body{
		Name:        name,
		Type:        typ,
		Shape:       shape,
		Mass:        mass,
		Orientation: rl.QuaternionIdentity(),
		Material:    DefaultMaterial,
	}
}

func (b *Body) GetPosition() rl.Vector3 {
	return b.Position
}

func (b *Body) GetOrientation() rl.Quaternion {
	return b.Orientation
}

func (b *Body) InvMass() float32 {
	if b.Type != Dynamic || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// invInertia is the inverse of a scalar moment of inertia.
func (b *Body) invInertia() float32 {
	if b.Type != Dynamic || b.Mass <= 0 {
		return 0
	}
	i := b.Shape.inertia(b.Mass)
	if i <= 0 {
		return 0
	}
	return 1 / i
}

// Transform is the body's rigid placement, without scale.
func (b *Body) Transform() rl.Matrix {
	rot := rl.QuaternionToMatrix(b.Orientation)
	trans := rl.MatrixTranslate(b.Position.X, b.Position.Y, b.Position.Z)
	return rl.MatrixMultiply(rot, trans)
}

func (b *Body) Bounds() geom.AABB {
	return b.Shape.bounds(b.Position, b.Orientation)
}

// VelocityAtWorldPoint combines linear and angular velocity at p.
func (b *Body) VelocityAtWorldPoint(p rl.Vector3) rl.Vector3 {
	r := rl.Vector3Subtract(p, b.Position)
	return rl.Vector3Add(b.Velocity, rl.Vector3CrossProduct(b.AngularVelocity, r))
}

// ApplyImpulse changes the velocity of a dynamic body as if impulse acted
// at the world point. Static and kinematic bodies are unaffected.
func (b *Body) ApplyImpulse(impulse, point rl.Vector3) {
	invMass := b.InvMass()
	if invMass == 0 {
		return
	}
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(impulse, invMass))

	r := rl.Vector3Subtract(point, b.Position)
	torque := rl.Vector3CrossProduct(r, impulse)
	b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3Scale(torque, b.invInertia()))
}

// Teleport moves the body and clears its motion.
func (b *Body) Teleport(position rl.Vector3) {
	b.Position = position
	b.Velocity = rl.Vector3Zero()
	b.AngularVelocity = rl.Vector3Zero()
}
