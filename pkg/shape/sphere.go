package shape

import (
	"math"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// Sphere is the unit sphere centered at the origin, per spec §4.2.
type Sphere struct{}

func NewSphere() *Sphere { return &Sphere{} }

func (s *Sphere) Intersect(ray pfmath.Ray, its *Intersection) bool {
	oc := ray.Origin
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - 1

	delta := b*b - 4*a*c
	if delta < 0 {
		return false
	}
	sqrtDelta := math.Sqrt(delta)

	// Numerically-stable root selection (spec §4.2): pick the sign that
	// maximizes |b|+sqrt(delta) to avoid catastrophic cancellation, then
	// derive both roots from q via Vieta's formula.
	var q float64
	if b < 0 {
		q = -0.5 * (b - sqrtDelta)
	} else {
		q = -0.5 * (b + sqrtDelta)
	}
	if q == 0 {
		return false
	}
	t0 := q / a
	t1 := c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	t := t0
	if t < pfmath.Epsilon {
		t = t1
	}
	if t < pfmath.Epsilon || t >= its.T {
		return false
	}

	p := ray.At(t)
	n := p.Normalize()
	frame := pfmath.FrameFromNormal(n)

	theta := math.Acos(pfmath.Clamp(n.Z(), -1, 1))
	phi := math.Atan2(n.Y(), n.X())
	if phi < 0 {
		phi += 2 * math.Pi
	}

	its.Hit = true
	its.T = t
	its.Position = p
	its.UV = [2]float64{phi / (2 * math.Pi), theta / math.Pi}
	its.Frame = frame
	its.PDFArea = 1 / s.Area()
	return true
}

func (s *Sphere) Bounds() pfmath.Bounds3 {
	return pfmath.Bounds3{Min: pfmath.Point3{-1, -1, -1}, Max: pfmath.Point3{1, 1, 1}}
}

func (s *Sphere) Centroid() pfmath.Point3 { return pfmath.Point3{0, 0, 0} }

func (s *Sphere) Area() float64 { return 4 * math.Pi }

func (s *Sphere) SampleArea(u1, u2 float64) (point, normal pfmath.Point3, pdfArea float64) {
	n, _ := pfmath.SampleUniformSphere(u1, u2)
	return n, n, 1 / s.Area()
}
