package shape

import (
	"math"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// Rectangle is the square at z=0 spanning [-1,1]^2 (side 2, area 4), per spec §4.2.
type Rectangle struct{}

func NewRectangle() *Rectangle { return &Rectangle{} }

func (r *Rectangle) Intersect(ray pfmath.Ray, its *Intersection) bool {
	if math.Abs(ray.Direction.Z()) < pfmath.Epsilon {
		return false
	}
	t := -ray.Origin.Z() / ray.Direction.Z()
	if t < pfmath.Epsilon || t >= its.T {
		return false
	}
	p := ray.At(t)
	if p.X() < -1 || p.X() > 1 || p.Y() < -1 || p.Y() > 1 {
		return false
	}
	its.Hit = true
	its.T = t
	its.Position = p
	its.UV = [2]float64{(p.X() + 1) / 2, (p.Y() + 1) / 2}
	its.Frame = pfmath.Frame{
		Tangent:   pfmath.Vec3{1, 0, 0},
		Bitangent: pfmath.Vec3{0, 1, 0},
		Normal:    pfmath.Vec3{0, 0, 1},
	}
	its.PDFArea = 0.25
	return true
}

func (r *Rectangle) Bounds() pfmath.Bounds3 {
	return pfmath.Bounds3{Min: pfmath.Point3{-1, -1, 0}, Max: pfmath.Point3{1, 1, 0}}
}

func (r *Rectangle) Centroid() pfmath.Point3 { return pfmath.Point3{0, 0, 0} }

func (r *Rectangle) Area() float64 { return 4 }

func (r *Rectangle) SampleArea(u1, u2 float64) (point, normal pfmath.Point3, pdfArea float64) {
	return pfmath.Point3{2*u1 - 1, 2*u2 - 1, 0}, pfmath.Vec3{0, 0, 1}, 0.25
}
