package geom

import (
	"math"
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const epsilon = 1e-5

func vecNear(a, b rl.Vector3, tol float32) bool {
	return rl.Vector3Distance(a, b) <= tol
}

func randVec(r *rand.Rand, scale float32) rl.Vector3 {
	return rl.Vector3{
		X: (r.Float32()*2 - 1) * scale,
		Y: (r.Float32()*2 - 1) * scale,
		Z: (r.Float32()*2 - 1) * scale,
	}
}

func TestClosestPointOnSegmentClamps(t *testing.T) {
	a := rl.Vector3{X: 0, Y: 0, Z: 0}
	b := rl.Vector3{X: 2, Y: 0, Z: 0}

	tests := []struct {
		name  string
		p     rl.Vector3
		point rl.Vector3
		dist  float32
	}{
		{"before start", rl.Vector3{X: -1, Y: 1, Z: 0}, a, float32(math.Sqrt2)},
		{"past end", rl.Vector3{X: 5, Y: 0, Z: 0}, b, 3},
		{"middle", rl.Vector3{X: 1, Y: 0, Z: 3}, rl.Vector3{X: 1}, 3},
		{"on start", a, a, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, d := ClosestPointOnSegment(tt.p, a, b)
			if !vecNear(q, tt.point, epsilon) {
				t.Errorf("Expected point %v, got %v", tt.point, q)
			}
			if math.Abs(float64(d-tt.dist)) > epsilon {
				t.Errorf("Expected distance %f, got %f", tt.dist, d)
			}
		})
	}
}

func TestClosestPointOnSegmentZeroLength(t *testing.T) {
	a := rl.Vector3{X: 1, Y: 2, Z: 3}
	q, d := ClosestPointOnSegment(rl.Vector3{X: 1, Y: 2, Z: 5}, a, a)
	if q != a {
		t.Errorf("Expected %v, got %v", a, q)
	}
	if d != 2 {
		t.Errorf("Expected distance 2, got %f", d)
	}
}

func TestClosestPointOnSegmentNeverFartherThanEndpoints(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		a, b, p := randVec(r, 10), randVec(r, 10), randVec(r, 20)
		_, d := ClosestPointOnSegment(p, a, b)
		if d > rl.Vector3Distance(p, a)+epsilon || d > rl.Vector3Distance(p, b)+epsilon {
			t.Fatalf("Segment distance %f exceeds an endpoint distance for p=%v a=%v b=%v", d, p, a, b)
		}
	}
}

func TestBarycentricCorners(t *testing.T) {
	a := rl.Vector3{X: 0, Y: 0, Z: 0}
	b := rl.Vector3{X: 1, Y: 0, Z: 0}
	c := rl.Vector3{X: 0, Y: 1, Z: 0}

	if u, v := Barycentric(a, a, b, c); u != 0 || v != 0 {
		t.Errorf("Expected (0,0) at a, got (%f,%f)", u, v)
	}
	if u, v := Barycentric(b, a, b, c); u != 1 || v != 0 {
		t.Errorf("Expected (1,0) at b, got (%f,%f)", u, v)
	}
	if u, v := Barycentric(c, a, b, c); u != 0 || v != 1 {
		t.Errorf("Expected (0,1) at c, got (%f,%f)", u, v)
	}
}

func TestBarycentricDegenerateIsNotFinite(t *testing.T) {
	a := rl.Vector3{X: 0, Y: 0, Z: 0}
	b := rl.Vector3{X: 1, Y: 0, Z: 0}
	c := rl.Vector3{X: 2, Y: 0, Z: 0}

	u, v := Barycentric(rl.Vector3{X: 0.5, Y: 1}, a, b, c)
	finite := !math.IsNaN(float64(u)) && !math.IsInf(float64(u), 0) &&
		!math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
	if finite {
		t.Errorf("Expected non-finite coordinates for a collinear triangle, got (%f,%f)", u, v)
	}
	if IsPointInTriangle(rl.Vector3{X: 0.5}, a, b, c) {
		t.Error("Degenerate triangle should not report containment")
	}
}

func TestIsPointInTriangleBoundaryIncluded(t *testing.T) {
	a := rl.Vector3{X: 0, Y: 0, Z: 0}
	b := rl.Vector3{X: 2, Y: 0, Z: 0}
	c := rl.Vector3{X: 0, Y: 2, Z: 0}

	inside := []rl.Vector3{a, b, c, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}}
	for _, p := range inside {
		if !IsPointInTriangle(p, a, b, c) {
			t.Errorf("Expected %v to be inside", p)
		}
	}

	outside := []rl.Vector3{{X: -0.1, Y: 0.5}, {X: 1.5, Y: 1.5}, {X: 0.5, Y: -0.1}}
	for _, p := range outside {
		if IsPointInTriangle(p, a, b, c) {
			t.Errorf("Expected %v to be outside", p)
		}
	}
}

func TestClosestPointOnTriangleProjection(t *testing.T) {
	a := rl.Vector3{X: 0, Y: 0, Z: 0}
	b := rl.Vector3{X: 1, Y: 0, Z: 0}
	c := rl.Vector3{X: 0, Y: 1, Z: 0}

	q, d := ClosestPointOnTriangle(rl.Vector3{X: 0.25, Y: 0.25, Z: 1}, a, b, c)

	want := rl.Vector3{X: 0.25, Y: 0.25, Z: 0}
	if !vecNear(q, want, epsilon) {
		t.Errorf("Expected %v, got %v", want, q)
	}
	if math.Abs(float64(d-1)) > epsilon {
		t.Errorf("Expected distance 1.0, got %f", d)
	}
	if !IsPointInTriangle(q, a, b, c) {
		t.Error("Projected point should be inside the triangle")
	}
}

func TestClosestPointOnTriangleEdgesAndCorners(t *testing.T) {
	a := rl.Vector3{X: 0, Y: 0, Z: 0}
	b := rl.Vector3{X: 1, Y: 0, Z: 0}
	c := rl.Vector3{X: 0, Y: 1, Z: 0}

	tests := []struct {
		name string
		p    rl.Vector3
		want rl.Vector3
	}{
		{"below ab", rl.Vector3{X: 0.5, Y: -1, Z: 0}, rl.Vector3{X: 0.5}},
		{"left of ac", rl.Vector3{X: -2, Y: 0.5, Z: 1}, rl.Vector3{Y: 0.5}},
		{"beyond bc", rl.Vector3{X: 1, Y: 1, Z: 0}, rl.Vector3{X: 0.5, Y: 0.5}},
		{"corner b", rl.Vector3{X: 3, Y: -1, Z: 0}, b},
		{"corner a", rl.Vector3{X: -1, Y: -1, Z: 0}, a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, d := ClosestPointOnTriangle(tt.p, a, b, c)
			if !vecNear(q, tt.want, epsilon) {
				t.Errorf("Expected %v, got %v", tt.want, q)
			}
			if math.Abs(float64(d-rl.Vector3Distance(tt.p, tt.want))) > epsilon {
				t.Errorf("Distance %f does not match returned point", d)
			}
		})
	}
}

func TestClosestPointOnTriangleTieKeepsFirstEdge(t *testing.T) {
	a := rl.Vector3{X: 0, Y: 0, Z: 0}
	b := rl.Vector3{X: 1, Y: 0, Z: 0}
	c := rl.Vector3{X: 0, Y: 1, Z: 0}

	// Equidistant from edges ab and ac; both meet at a.
	q, _ := ClosestPointOnTriangle(rl.Vector3{X: -1, Y: -1, Z: 0}, a, b, c)
	if q != a {
		t.Errorf("Expected corner a, got %v", q)
	}
}

func TestClosestPointOnTriangleProjectionStaysInside(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a, b, c := randVec(r, 10), randVec(r, 10), randVec(r, 10)
		if triangleArea2(a, b, c) < 1 {
			continue
		}

		u := 0.05 + r.Float32()*0.4
		v := 0.05 + r.Float32()*0.4
		inPlane := rl.Vector3Add(a, rl.Vector3Add(
			rl.Vector3Scale(rl.Vector3Subtract(b, a), u),
			rl.Vector3Scale(rl.Vector3Subtract(c, a), v),
		))
		normal := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a)))
		p := rl.Vector3Add(inPlane, rl.Vector3Scale(normal, (r.Float32()*2-1)*5))

		q, _ := ClosestPointOnTriangle(p, a, b, c)
		if !IsPointInTriangle(q, a, b, c) {
			t.Fatalf("Closest point %v of %v should be inside triangle %v %v %v", q, p, a, b, c)
		}
	}
}

func TestClosestPointOnTriangleMatchesDenseSampling(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		a, b, c := randVec(r, 5), randVec(r, 5), randVec(r, 5)
		if triangleArea2(a, b, c) < 0.5 {
			continue
		}
		p := randVec(r, 10)
		_, d := ClosestPointOnTriangle(p, a, b, c)

		const steps = 40
		for s := 0; s <= steps; s++ {
			for k := 0; k <= steps-s; k++ {
				u, v := float32(s)/steps, float32(k)/steps
				sample := rl.Vector3Add(a, rl.Vector3Add(
					rl.Vector3Scale(rl.Vector3Subtract(b, a), u),
					rl.Vector3Scale(rl.Vector3Subtract(c, a), v),
				))
				if rl.Vector3Distance(p, sample) < d-1e-3 {
					t.Fatalf("Sample %v is closer (%f) than reported %f", sample, rl.Vector3Distance(p, sample), d)
				}
			}
		}
	}
}
