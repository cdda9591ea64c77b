// Package platform drives scripted kinematic platforms and keeps the rider
// carried along by sticky surfaces.
package platform

import (
	"marble/internal/engine"
	"marble/internal/motion"
	"marble/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultStickiness is the rider velocity blend rate per second.
const DefaultStickiness = 0.5

// Platform pairs a kinematic body with its render node. Either function may
// be nil.
type Platform struct {
	Body     *physics.Body
	Node     engine.GameObjectRef
	Position motion.Func
	Rotation motion.Func // Euler radians, pitch/yaw/roll
}

// ContactSource lists the contacts of the last physics step.
type ContactSource interface {
	Contacts() []physics.Contact
}

// Stick is the last velocity blend applied to the rider.
type Stick struct {
	Point    rl.Vector3
	Velocity rl.Vector3
	Active   bool
}

type Driver struct {
	Platforms  []*Platform
	Rider      *physics.Body
	Stickiness float32
	Contacts   ContactSource
	// Scene resolves platform render nodes.
	Scene *engine.Scene

	// Debug enables recording of Stick.
	Debug bool
	Stick Stick
}

func NewDriver(scene *engine.Scene, contacts ContactSource, rider *physics.Body) *Driver {
	return &Driver{
		Rider:      rider,
		Stickiness: DefaultStickiness,
		Contacts:   contacts,
		Scene:      scene,
	}
}

func (d *Driver) Add(p *Platform) {
	d.Platforms = append(d.Platforms, p)
}

// Tick prepares platform bodies for the step that runs from T to T+dt and
// blends the rider toward any sticky surface it touches.
func (d *Driver) Tick(T float64, dt float32) {
	if dt <= 0 {
		return
	}
	next := T + float64(dt)

	for _, p := range d.Platforms {
		if p.Position != nil {
			diff := rl.Vector3Subtract(p.Position(next), p.Body.Position)
			p.Body.Velocity = rl.Vector3Scale(diff, 1/dt)
		}

		if p.Rotation != nil {
			current := p.Rotation(T)
			target := p.Rotation(next)
			// Orientation follows the function directly so it never drifts.
			p.Body.Orientation = rl.QuaternionFromEuler(current.X, current.Y, current.Z)
			p.Body.AngularVelocity = rl.Vector3Scale(rl.Vector3Subtract(target, current), 1/dt)
		}
	}

	d.stick(dt)
}

func (d *Driver) stick(dt float32) {
	d.Stick.Active = false
	if d.Rider == nil || d.Contacts == nil {
		return
	}

	for _, c := range d.Contacts.Contacts() {
		if c.A != d.Rider || !c.B.Sticky {
			continue
		}
		point := rl.Vector3Add(d.Rider.Position, c.RA)
		surface := c.B.VelocityAtWorldPoint(point)

		if d.Debug {
			d.Stick = Stick{Point: point, Velocity: surface, Active: true}
		}
		d.Rider.Velocity = rl.Vector3Lerp(d.Rider.Velocity, surface, d.Stickiness*dt)
	}
}

// Reset snaps every platform body to its scripted pose at time zero.
func (d *Driver) Reset() {
	for _, p := range d.Platforms {
		if p.Position != nil {
			p.Body.Position = p.Position(0)
			p.Body.Velocity = rl.Vector3Zero()
		}
		if p.Rotation != nil {
			r := p.Rotation(0)
			p.Body.Orientation = rl.QuaternionFromEuler(r.X, r.Y, r.Z)
			p.Body.AngularVelocity = rl.Vector3Zero()
		}
	}
	d.Stick = Stick{}
	d.UpdateVisuals(0)
}

// UpdateVisuals places render nodes at their exact scripted pose for time.
// Bodies are left alone.
func (d *Driver) UpdateVisuals(time float64) {
	for _, p := range d.Platforms {
		node := p.Node.Get(d.Scene)
		if node == nil {
			continue
		}
		if p.Position != nil {
			node.Transform.Position = p.Position(time)
		}
		if p.Rotation != nil {
			node.Transform.SetEuler(p.Rotation(time))
		}
	}
}
