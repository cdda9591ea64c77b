package physics

import (
	"log"
	"marble/internal/engine"
	"marble/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CollisionPair is an unordered pair of bodies.
type CollisionPair struct {
	A, B *Body
}

// makePair creates a consistent collision pair (lower ID first)
func makePair(a, b *Body) CollisionPair {
	if a.ID > b.ID {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

// Contact is a touching point between a dynamic sphere A and body B.
type Contact struct {
	A, B   *Body
	Point  rl.Vector3 // on the surface of B
	Normal rl.Vector3 // unit, from B toward A
	Depth  float32
	RA     rl.Vector3 // from A's centre to the contact on A's surface

	bias           float32
	normalImpulse  float32
	tangentImpulse rl.Vector3
}

const (
	// restitutionThreshold is the approach speed below which contacts do not bounce.
	restitutionThreshold = 1.0
	penetrationSlop      = 0.01
	correctionFactor     = 0.8
)

type World struct {
	Gravity rl.Vector3
	// Iterations is the number of sequential impulse passes per step.
	Iterations int
	Bodies     []*Body
	Debug      bool

	// OnContactBegin fires at the end of Step, once velocities are final,
	// for pairs that were not touching in the previous step. Pairs arrive in
	// body order with the dynamic sphere as A.
	OnContactBegin engine.EventWithArg[CollisionPair]

	contacts          []Contact
	activeCollisions  map[CollisionPair]bool // collisions from last step
	currentCollisions map[CollisionPair]bool // collisions this step
	nextID            int
}

func NewWorld() *World {
	return &World{
		Gravity:           rl.Vector3{X: 0, Y: -9.82, Z: 0},
		Iterations:        10,
		Bodies:            make([]*Body, 0),
		activeCollisions:  make(map[CollisionPair]bool),
		currentCollisions: make(map[CollisionPair]bool),
	}
}

func (w *World) AddBody(b *Body) {
	if b.world == w {
		return
	}
	w.nextID++
	b.ID = w.nextID
	b.world = w
	w.Bodies = append(w.Bodies, b)
}

func (w *World) RemoveBody(b *Body) {
	for i, other := range w.Bodies {
		if other == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			b.world = nil
			for pair := range w.currentCollisions {
				if pair.A == b || pair.B == b {
					delete(w.currentCollisions, pair)
				}
			}
			return
		}
	}
}

// Contacts returns the contacts found by the last Step. The slice is reused
// by the next Step.
func (w *World) Contacts() []Contact {
	return w.contacts
}

// Bounds is the union of every body's bounds.
func (w *World) Bounds() geom.AABB {
	bounds := geom.EmptyAABB()
	for _, b := range w.Bodies {
		bounds = bounds.Union(b.Bounds())
	}
	return bounds
}

// Step advances the world by dt: forces, contact detection, impulse
// solving, then position integration.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}

	w.activeCollisions, w.currentCollisions = w.currentCollisions, w.activeCollisions
	clear(w.currentCollisions)
	w.contacts = w.contacts[:0]

	// 1. Apply gravity and damping
	for _, b := range w.Bodies {
		if b.Type != Dynamic {
			continue
		}
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(w.Gravity, dt))
		b.Velocity = rl.Vector3Scale(b.Velocity, dampFactor(b.LinearDamping, dt))
		b.AngularVelocity = rl.Vector3Scale(b.AngularVelocity, dampFactor(b.AngularDamping, dt))
	}

	// 2. Narrow phase
	w.detectContacts()
	for i := range w.contacts {
		w.prepareContact(&w.contacts[i])
	}

	// 3. Sequential impulses
	for it := 0; it < w.Iterations; it++ {
		for i := range w.contacts {
			w.solveContact(&w.contacts[i])
		}
	}
	for i := range w.contacts {
		w.correctPosition(&w.contacts[i])
	}

	// 4. Integrate
	for _, b := range w.Bodies {
		if b.Type == Static {
			continue
		}
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
		b.Orientation = integrateOrientation(b.Orientation, b.AngularVelocity, dt)
	}

	w.dispatchContactEvents()
}

func (w *World) detectContacts() {
	for i, a := range w.Bodies {
		sphere, ok := a.Shape.(Sphere)
		if !ok || a.Type != Dynamic {
			continue
		}
		aBounds := a.Bounds()

		for j, b := range w.Bodies {
			if i == j {
				continue
			}
			// Dynamic sphere pairs are handled once, from the earlier body.
			if _, isSphere := b.Shape.(Sphere); isSphere && b.Type == Dynamic && j < i {
				continue
			}
			if !aBounds.Intersects(b.Bounds()) {
				continue
			}

			before := len(w.contacts)
			switch shape := b.Shape.(type) {
			case Sphere:
				w.collideSphereSphere(a, sphere, b, shape)
			case Box:
				w.collideSphereBox(a, sphere, b, shape)
			case Trimesh:
				w.collideSphereTrimesh(a, sphere, b, shape)
			}
			if len(w.contacts) > before {
				w.currentCollisions[makePair(a, b)] = true
			}
		}
	}
}

// dispatchContactEvents fires begin events by comparing this step's
// contacts against last step's. Contacts of one pair are adjacent.
func (w *World) dispatchContactEvents() {
	var last CollisionPair
	for _, c := range w.contacts {
		pair := makePair(c.A, c.B)
		if pair == last {
			continue
		}
		last = pair
		if w.activeCollisions[pair] {
			continue
		}
		if w.Debug {
			log.Printf("Physics: contact begin %s / %s", c.A.Name, c.B.Name)
		}
		w.OnContactBegin.Invoke(CollisionPair{A: c.A, B: c.B})
	}
}
