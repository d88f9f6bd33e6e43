package shape

import (
	"fmt"
	"math"

	"github.com/dlaurent/photonforge/pkg/accel"
	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// Vertex is {position, texcoords, normal}, interpolated barycentrically
// during triangle hits when smooth normals are enabled (spec §3).
type Vertex struct {
	Position pfmath.Point3
	UV       [2]float64
	Normal   pfmath.Normal3
}

// Triangle is a triple of indices into the mesh's shared vertex buffer.
type Triangle [3]int

// TriangleMesh is an AABB-structured (BVH-accelerated) collection of
// triangles sharing a vertex buffer with optional smooth normals, per
// spec §4.2 and §2's "triangle mesh" component. Grounded on
// pkg/geometry/triangle.go's Möller–Trumbore core, extended with smooth
// normal interpolation and UV interpolation beyond pkg/geometry/triangle.go,
// and wrapped in the generic accel.BVH instead of a one-off per-mesh tree.
type TriangleMesh struct {
	Vertices     []Vertex
	Triangles    []Triangle
	SmoothNormal bool
	HasUV        bool // false means vertices carry no texcoords; UV falls back to a bounding-box parameterization

	bounds pfmath.Bounds3
	bvh    *accel.BVH[Intersection]
}

// NewTriangleMesh validates that every face has exactly 3 vertices (faces
// with a different count are a load-time error per spec §6) and builds the
// mesh's internal BVH. hasUV tells Intersect whether Vertex.UV holds real
// texcoords or should be ignored in favor of the bounding-box fallback
// (spec §4.2: "UV is interpolated from per-vertex texcoords, or from a
// bounding-box parameterization if vertices lack them").
func NewTriangleMesh(vertices []Vertex, triangles []Triangle, smoothNormal bool, hasUV bool) (*TriangleMesh, error) {
	for i, t := range triangles {
		for _, idx := range t {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("triangle %d references out-of-range vertex %d", i, idx)
			}
		}
	}
	m := &TriangleMesh{Vertices: vertices, Triangles: triangles, SmoothNormal: smoothNormal, HasUV: hasUV}
	m.bounds = pfmath.EmptyBounds()
	for _, v := range vertices {
		m.bounds = m.bounds.ExtendPoint(v.Position)
	}
	m.bvh = accel.Build[Intersection](meshPrims{m})
	return m, nil
}

// boundingBoxUV projects a world-space position onto the mesh's XY bounding
// box, the fallback parameterization used when vertices carry no texcoords.
func (m *TriangleMesh) boundingBoxUV(p pfmath.Point3) [2]float64 {
	extentX := m.bounds.Max.X() - m.bounds.Min.X()
	extentY := m.bounds.Max.Y() - m.bounds.Min.Y()
	var u, v float64
	if extentX > 0 {
		u = (p.X() - m.bounds.Min.X()) / extentX
	}
	if extentY > 0 {
		v = (p.Y() - m.bounds.Min.Y()) / extentY
	}
	return [2]float64{u, v}
}

func (m *TriangleMesh) Intersect(ray pfmath.Ray, its *Intersection) bool {
	var bvhC, primC int
	hit := m.bvh.Intersect(ray, its, &bvhC, &primC)
	its.Stats.BVHCounter += bvhC
	its.Stats.PrimCounter += primC
	return hit
}

func (m *TriangleMesh) Bounds() pfmath.Bounds3 { return m.bounds }

func (m *TriangleMesh) Centroid() pfmath.Point3 { return m.Bounds().Center() }

// meshPrims adapts TriangleMesh's per-triangle geometry to accel.Primitives.
type meshPrims struct{ m *TriangleMesh }

func (p meshPrims) Len() int { return len(p.m.Triangles) }

func (p meshPrims) Bounds(i int) pfmath.Bounds3 {
	tri := p.m.Triangles[i]
	return pfmath.BoundsFromPoints(
		p.m.Vertices[tri[0]].Position,
		p.m.Vertices[tri[1]].Position,
		p.m.Vertices[tri[2]].Position,
	)
}

func (p meshPrims) Centroid(i int) pfmath.Point3 {
	b := p.Bounds(i)
	return b.Center()
}

// Intersect implements Möller–Trumbore, rejecting near-parallel rays via
// |det|<epsilon, and on acceptance interpolates normal and UV from
// barycentrics, per spec §4.2. UV falls back to boundingBoxUV when the
// mesh's vertices carry no texcoords.
func (p meshPrims) Intersect(i int, ray pfmath.Ray, out *Intersection) bool {
	tri := p.m.Triangles[i]
	v0 := p.m.Vertices[tri[0]]
	v1 := p.m.Vertices[tri[1]]
	v2 := p.m.Vertices[tri[2]]

	edge1 := v1.Position.Sub(v0.Position)
	edge2 := v2.Position.Sub(v0.Position)
	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if math.Abs(det) < pfmath.Epsilon {
		return false
	}
	invDet := 1 / det

	tvec := ray.Origin.Sub(v0.Position)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return false
	}

	t := edge2.Dot(qvec) * invDet
	if t < pfmath.Epsilon || t >= out.T {
		return false
	}

	alpha, beta, gamma := 1-u-v, u, v

	var normal pfmath.Normal3
	if p.m.SmoothNormal {
		normal = v0.Normal.Mul(alpha).Add(v1.Normal.Mul(beta)).Add(v2.Normal.Mul(gamma)).Normalize()
	} else {
		normal = edge1.Cross(edge2).Normalize()
	}

	out.Hit = true
	out.T = t
	out.Position = ray.At(t)

	if p.m.HasUV {
		out.UV = [2]float64{
			alpha*v0.UV[0] + beta*v1.UV[0] + gamma*v2.UV[0],
			alpha*v0.UV[1] + beta*v1.UV[1] + gamma*v2.UV[1],
		}
	} else {
		out.UV = p.m.boundingBoxUV(out.Position)
	}
	out.Frame = pfmath.FrameFromNormal(normal)
	out.PDFArea = 0
	return true
}
