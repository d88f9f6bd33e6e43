// Package shape implements the per-primitive intersection contract: the
// Rectangle, Sphere, TriangleMesh, and Group variants from the component
// design, plus Instance (the affine-transform/BSDF/emission wrapper) and
// the SurfaceEvent/Intersection data model shared with pkg/bsdf and
// pkg/integrator.
package shape

import "github.com/dlaurent/photonforge/pkg/pfmath"

// Stats counts BVH and primitive tests performed by a single traversal,
// exposed so the BVH-performance integrator can report work done per ray.
type Stats struct {
	BVHCounter  int
	PrimCounter int
}

// SurfaceEvent is the position/uv/frame/pdf_area tuple reported by a shape
// on hit (spec §3).
type SurfaceEvent struct {
	Position pfmath.Point3
	UV       [2]float64
	Frame    pfmath.Frame
	PDFArea  float64
	Instance *Instance
}

// Intersection extends SurfaceEvent with the outgoing direction, distance,
// and traversal stats (spec §3).
type Intersection struct {
	SurfaceEvent
	Wo    pfmath.Vec3
	T     float64
	Stats Stats
	Hit   bool
}

// NewMiss returns an Intersection with Hit=false and T set to tIn so BVH
// traversal/Instance recursion can compare against it without a separate
// "did we hit" flag threaded everywhere.
func NewMiss(tIn float64) Intersection {
	return Intersection{T: tIn}
}

// DistT implements accel.Result so Intersection can be used directly as
// the BVH's traversal out-parameter.
func (its Intersection) DistT() float64 { return its.T }

// Shape is implemented by every primitive the BVH or Group can hold.
type Shape interface {
	// Intersect tests the ray against [pfmath.Epsilon, its.T]; on a closer
	// hit it overwrites its and returns true. Non-intersection leaves its
	// unchanged.
	Intersect(ray pfmath.Ray, its *Intersection) bool
	Bounds() pfmath.Bounds3
	Centroid() pfmath.Point3
}

// Sampleable is implemented by shapes that can be sampled for direct
// lighting (area lights wrap one of these).
type Sampleable interface {
	Shape
	// SampleArea returns a world-space point, normal, and area-measure pdf.
	SampleArea(u1, u2 float64) (point, normal pfmath.Point3, pdfArea float64)
	Area() float64
}
