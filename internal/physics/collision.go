package physics

import (
	"marble/internal/geom"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// sameNormal is the cosine above which two contacts of one pair are merged.
const sameNormal = 0.999

// addContact records a contact for pair (a, b), merging it with an earlier
// contact of the same pair that pushes in the same direction.
func (w *World) addContact(a, b *Body, point, normal rl.Vector3, depth float32, radius float32) {
	for i := len(w.contacts) - 1; i >= 0; i-- {
		c := &w.contacts[i]
		if c.A != a || c.B != b {
			break
		}
		if rl.Vector3DotProduct(c.Normal, normal) > sameNormal {
			if depth > c.Depth {
				c.Point, c.Normal, c.Depth = point, normal, depth
				c.RA = rl.Vector3Scale(normal, -radius)
			}
			return
		}
	}
	w.contacts = append(w.contacts, Contact{
		A:      a,
		B:      b,
		Point:  point,
		Normal: normal,
		Depth:  depth,
		RA:     rl.Vector3Scale(normal, -radius),
	})
}

func (w *World) collideSphereSphere(a *Body, sa Sphere, b *Body, sb Sphere) {
	diff := rl.Vector3Subtract(a.Position, b.Position)
	dist := rl.Vector3Length(diff)
	radiusSum := sa.Radius + sb.Radius
	if dist >= radiusSum {
		return
	}

	normal := rl.Vector3{Y: 1}
	if dist > 0.0001 {
		normal = rl.Vector3Scale(diff, 1/dist)
	}
	point := rl.Vector3Add(b.Position, rl.Vector3Scale(normal, sb.Radius))
	w.addContact(a, b, point, normal, radiusSum-dist, sa.Radius)
}

func (w *World) collideSphereBox(a *Body, sa Sphere, b *Body, box Box) {
	obb := NewOBB(b.Position, box.HalfExtents, b.Orientation)
	closest := obb.ClosestPoint(a.Position)
	diff := rl.Vector3Subtract(a.Position, closest)
	dist := rl.Vector3Length(diff)

	if dist > 0.0001 {
		if dist >= sa.Radius {
			return
		}
		w.addContact(a, b, closest, rl.Vector3Scale(diff, 1/dist), sa.Radius-dist, sa.Radius)
		return
	}

	// Centre inside the box: push out through the nearest face.
	face, normal := obb.ExitFace(a.Position)
	depth := sa.Radius + rl.Vector3Distance(face, a.Position)
	w.addContact(a, b, face, normal, depth, sa.Radius)
}

func (w *World) collideSphereTrimesh(a *Body, sa Sphere, b *Body, tm Trimesh) {
	if tm.Mesh == nil {
		return
	}

	// Work in mesh space; trimesh bodies carry no scale.
	inv := rl.QuaternionInvert(b.Orientation)
	center := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(a.Position, b.Position), inv)

	mesh := tm.Mesh
	for i := 0; i < mesh.TriangleCount(); i++ {
		ta, tb, tc := mesh.Triangle(i)
		if geom.AABBFromPoints(ta, tb, tc).DistanceToPoint(center) >= sa.Radius {
			continue
		}

		q, dist := geom.ClosestPointOnTriangle(center, ta, tb, tc)
		if dist >= sa.Radius {
			continue
		}

		var localNormal rl.Vector3
		if dist > 0.0001 {
			localNormal = rl.Vector3Scale(rl.Vector3Subtract(center, q), 1/dist)
		} else {
			localNormal = rl.Vector3Normalize(rl.Vector3CrossProduct(
				rl.Vector3Subtract(tb, ta),
				rl.Vector3Subtract(tc, ta),
			))
		}

		point := rl.Vector3Add(b.Position, rl.Vector3RotateByQuaternion(q, b.Orientation))
		normal := rl.Vector3RotateByQuaternion(localNormal, b.Orientation)
		w.addContact(a, b, point, normal, sa.Radius-dist, sa.Radius)
	}
}

// prepareContact fixes the bounce target from the approach speed.
func (w *World) prepareContact(c *Contact) {
	vRel := rl.Vector3Subtract(c.A.VelocityAtWorldPoint(c.Point), c.B.VelocityAtWorldPoint(c.Point))
	vn := rl.Vector3DotProduct(vRel, c.Normal)

	c.bias = 0
	if -vn > restitutionThreshold {
		e := c.A.Material.Restitution * c.B.Material.Restitution
		c.bias = -e * vn
	}
	c.normalImpulse = 0
	c.tangentImpulse = rl.Vector3Zero()
}

// solveContact applies one pass of normal and friction impulses, clamping
// the accumulated impulse so contacts only ever push.
func (w *World) solveContact(c *Contact) {
	a, b := c.A, c.B
	invMass := a.InvMass() + b.InvMass()
	if invMass == 0 {
		return
	}

	vRel := rl.Vector3Subtract(a.VelocityAtWorldPoint(c.Point), b.VelocityAtWorldPoint(c.Point))
	vn := rl.Vector3DotProduct(vRel, c.Normal)

	// The lever arm of a sphere contact is parallel to the normal, so the
	// normal impulse has no angular term.
	jn := (c.bias - vn) / invMass
	accumulated := float32(math.Max(float64(c.normalImpulse+jn), 0))
	jn = accumulated - c.normalImpulse
	c.normalImpulse = accumulated

	normalImpulse := rl.Vector3Scale(c.Normal, jn)
	a.ApplyImpulse(normalImpulse, c.Point)
	b.ApplyImpulse(rl.Vector3Negate(normalImpulse), c.Point)

	// Friction
	mu := float32(math.Sqrt(float64(a.Material.Friction * b.Material.Friction)))
	if mu == 0 {
		return
	}
	vRel = rl.Vector3Subtract(a.VelocityAtWorldPoint(c.Point), b.VelocityAtWorldPoint(c.Point))
	vt := tangent(vRel, c.Normal)

	k := invMass + tangentialMass(a, c.RA) + tangentialMass(b, rl.Vector3Subtract(c.Point, b.Position))
	jt := rl.Vector3Scale(vt, -1/k)

	total := rl.Vector3Add(c.tangentImpulse, jt)
	limit := mu * c.normalImpulse
	if l := rl.Vector3Length(total); l > limit {
		if l > 0 {
			total = rl.Vector3Scale(total, limit/l)
		}
	}
	jt = rl.Vector3Subtract(total, c.tangentImpulse)
	c.tangentImpulse = total

	a.ApplyImpulse(jt, c.Point)
	b.ApplyImpulse(rl.Vector3Negate(jt), c.Point)
}

// tangentialMass is the angular share of a tangential impulse applied at
// lever arm r.
func tangentialMass(b *Body, r rl.Vector3) float32 {
	inv := b.invInertia()
	if inv == 0 {
		return 0
	}
	return inv * rl.Vector3DotProduct(r, r)
}

// correctPosition pushes A out of B by most of the remaining penetration.
func (w *World) correctPosition(c *Contact) {
	depth := c.Depth - penetrationSlop
	if depth <= 0 {
		return
	}
	invA, invB := c.A.InvMass(), c.B.InvMass()
	total := invA + invB
	if total == 0 {
		return
	}
	push := depth * correctionFactor / total
	c.A.Position = rl.Vector3Add(c.A.Position, rl.Vector3Scale(c.Normal, push*invA))
	if invB > 0 {
		c.B.Position = rl.Vector3Subtract(c.B.Position, rl.Vector3Scale(c.Normal, push*invB))
	}
}
