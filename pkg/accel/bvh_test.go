package accel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// hitT is the minimal Result implementation used by these tests.
type hitT struct{ t float64 }

func (h hitT) DistT() float64 { return h.t }

// spherePrims is a minimal Primitives implementation over a slice of
// unit-radius spheres at arbitrary centers, used only to exercise the BVH
// build/traversal contract independent of pkg/shape.
type spherePrims struct {
	centers []pfmath.Point3
	radius  float64
}

func (s spherePrims) Len() int { return len(s.centers) }

func (s spherePrims) Bounds(i int) pfmath.Bounds3 {
	c := s.centers[i]
	r := pfmath.Vec3{s.radius, s.radius, s.radius}
	return pfmath.Bounds3{Min: c.Sub(r), Max: c.Add(r)}
}

func (s spherePrims) Centroid(i int) pfmath.Point3 { return s.centers[i] }

func (s spherePrims) Intersect(i int, ray pfmath.Ray, out *hitT) bool {
	oc := ray.Origin.Sub(s.centers[i])
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.radius*s.radius
	delta := b*b - 4*a*c
	if delta < 0 {
		return false
	}
	sq := math.Sqrt(delta)
	t := (-b - sq) / (2 * a)
	if t < pfmath.Epsilon {
		t = (-b + sq) / (2 * a)
	}
	if t < pfmath.Epsilon || t >= out.t {
		return false
	}
	out.t = t
	return true
}

func TestBVH_FindsClosestHit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	centers := make([]pfmath.Point3, 200)
	for i := range centers {
		centers[i] = pfmath.Point3{rng.Float64()*40 - 20, rng.Float64()*40 - 20, rng.Float64()*40 - 20}
	}
	prims := spherePrims{centers: centers, radius: 0.5}
	bvh := Build[hitT](prims)

	for trial := 0; trial < 50; trial++ {
		ray := pfmath.Ray{
			Origin:    pfmath.Point3{rng.Float64()*40 - 20, rng.Float64()*40 - 20, -30},
			Direction: pfmath.Vec3{0, 0, 1},
		}

		// Brute-force expected answer.
		expected := math.Inf(1)
		for i := range centers {
			h := hitT{t: math.Inf(1)}
			if prims.Intersect(i, ray, &h) {
				if h.t < expected {
					expected = h.t
				}
			}
		}

		var bvhCounter, primCounter int
		out := hitT{t: math.Inf(1)}
		hit := bvh.Intersect(ray, &out, &bvhCounter, &primCounter)

		if math.IsInf(expected, 1) {
			if hit {
				t.Errorf("trial %d: bvh reported a hit, brute force found none", trial)
			}
			continue
		}
		if !hit {
			t.Fatalf("trial %d: bvh missed, brute force found t=%v", trial, expected)
		}
		if math.Abs(out.t-expected) > 1e-9 {
			t.Errorf("trial %d: bvh t=%v, want %v", trial, out.t, expected)
		}
	}
}

func TestBVH_IsValidBinaryTree(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	centers := make([]pfmath.Point3, 137)
	for i := range centers {
		centers[i] = pfmath.Point3{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}
	}
	bvh := Build[hitT](spherePrims{centers: centers, radius: 0.1})

	seen := make([]bool, len(centers))
	var walk func(idx int)
	walk = func(idx int) {
		n := bvh.nodes[idx]
		if n.PrimitiveCount > 0 {
			for i := n.Left; i < n.Left+n.PrimitiveCount; i++ {
				p := bvh.perm[i]
				if seen[p] {
					t.Fatalf("primitive %d visited by more than one leaf", p)
				}
				seen[p] = true
			}
			return
		}
		if n.Left+1 >= len(bvh.nodes) {
			t.Fatalf("internal node %d's children are out of range", idx)
		}
		walk(n.Left)
		walk(n.Left + 1)
	}
	walk(0)

	for i, s := range seen {
		if !s {
			t.Errorf("primitive %d never appears in any leaf", i)
		}
	}
}

func TestBuildSAH_FindsClosestHit(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	centers := make([]pfmath.Point3, 64)
	for i := range centers {
		centers[i] = pfmath.Point3{rng.Float64() * 20, rng.Float64() * 20, rng.Float64() * 20}
	}
	prims := spherePrims{centers: centers, radius: 0.3}
	bvh := BuildSAH[hitT](prims)

	ray := pfmath.Ray{Origin: pfmath.Point3{10, 10, -5}, Direction: pfmath.Vec3{0, 0, 1}}
	var bvhCounter, primCounter int
	out := hitT{t: math.Inf(1)}
	hit := bvh.Intersect(ray, &out, &bvhCounter, &primCounter)
	if bvh.NodeCount() == 0 {
		t.Fatalf("expected a non-empty SAH tree")
	}

	expected := math.Inf(1)
	for i := range centers {
		h := hitT{t: math.Inf(1)}
		if prims.Intersect(i, ray, &h) && h.t < expected {
			expected = h.t
		}
	}
	if hit != !math.IsInf(expected, 1) {
		t.Fatalf("SAH bvh hit=%v, brute force t=%v", hit, expected)
	}
	if hit && math.Abs(out.t-expected) > 1e-9 {
		t.Errorf("SAH bvh t=%v, want %v", out.t, expected)
	}
}
