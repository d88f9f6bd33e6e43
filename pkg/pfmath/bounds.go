package pfmath

import "math"

// Bounds3 is an axis-aligned bounding box. The canonical empty box has
// Min = +inf and Max = -inf componentwise, grounded on pkg/core/aabb.go's
// AABB but renamed/reshaped to match the spec's Bounds3 entity.
type Bounds3 struct {
	Min, Max Point3
}

func EmptyBounds() Bounds3 {
	inf := math.Inf(1)
	return Bounds3{Min: Point3{inf, inf, inf}, Max: Point3{-inf, -inf, -inf}}
}

func NewBounds3(min, max Point3) Bounds3 { return Bounds3{Min: min, Max: max} }

func BoundsFromPoints(pts ...Point3) Bounds3 {
	b := EmptyBounds()
	for _, p := range pts {
		b = b.ExtendPoint(p)
	}
	return b
}

func (b Bounds3) ExtendPoint(p Point3) Bounds3 {
	return Bounds3{
		Min: Point3{math.Min(b.Min.X(), p.X()), math.Min(b.Min.Y(), p.Y()), math.Min(b.Min.Z(), p.Z())},
		Max: Point3{math.Max(b.Max.X(), p.X()), math.Max(b.Max.Y(), p.Y()), math.Max(b.Max.Z(), p.Z())},
	}
}

func (b Bounds3) Union(o Bounds3) Bounds3 {
	return Bounds3{
		Min: Point3{math.Min(b.Min.X(), o.Min.X()), math.Min(b.Min.Y(), o.Min.Y()), math.Min(b.Min.Z(), o.Min.Z())},
		Max: Point3{math.Max(b.Max.X(), o.Max.X()), math.Max(b.Max.Y(), o.Max.Y()), math.Max(b.Max.Z(), o.Max.Z())},
	}
}

func (b Bounds3) Diagonal() Vec3 { return b.Max.Sub(b.Min) }

func (b Bounds3) Center() Point3 { return b.Min.Add(b.Max).Mul(0.5) }

// LargestAxis returns the axis (0=x,1=y,2=z) of the largest diagonal
// component, used by the BVH build's median-split choice.
func (b Bounds3) LargestAxis() int {
	d := b.Diagonal()
	if d.X() > d.Y() && d.X() > d.Z() {
		return 0
	}
	if d.Y() > d.Z() {
		return 1
	}
	return 2
}

func (b Bounds3) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

func (b Bounds3) Axis(i int) (lo, hi float64) {
	switch i {
	case 0:
		return b.Min.X(), b.Max.X()
	case 1:
		return b.Min.Y(), b.Max.Y()
	default:
		return b.Min.Z(), b.Max.Z()
	}
}

// IntersectP runs the slab test against the ray, returning the near/far
// distances and whether the box is hit within [Epsilon, tMax]. NaN/Inf from
// dividing by a zero ray-direction component resolves correctly under
// IEEE-754 rules, matching the spec's slab-test contract.
func (b Bounds3) IntersectP(r Ray, tMax float64) (tNear, tFar float64, hit bool) {
	tNear, tFar = math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		lo, hi := b.Axis(axis)
		origin := component(r.Origin, axis)
		dir := component(r.Direction, axis)
		invD := 1 / dir
		t1 := (lo - origin) * invD
		t2 := (hi - origin) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
		if tFar < tNear {
			return tNear, tFar, false
		}
	}
	if tFar < Epsilon || tNear > tMax {
		return tNear, tFar, false
	}
	return tNear, tFar, true
}

func component(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X()
	case 1:
		return v.Y()
	default:
		return v.Z()
	}
}

// Corners returns the 8 corners of the box, used by Instance to transform
// a bounding box under an affine transform.
func (b Bounds3) Corners() [8]Point3 {
	return [8]Point3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}
}
