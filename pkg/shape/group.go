package shape

import (
	"github.com/dlaurent/photonforge/pkg/accel"
	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// Group is a thin adapter that runs its children through a BVH under the
// AccelerationStructure contract (spec §4.2). SampleArea picks a uniform
// random child among those that implement Sampleable and divides the
// returned area-pdf by the number of such children.
type Group struct {
	Children []Shape
	bvh      *accel.BVH[Intersection]
}

func NewGroup(children []Shape) *Group {
	g := &Group{Children: children}
	g.bvh = accel.Build[Intersection](groupPrims{g})
	return g
}

func (g *Group) Intersect(ray pfmath.Ray, its *Intersection) bool {
	var bvhC, primC int
	hit := g.bvh.Intersect(ray, its, &bvhC, &primC)
	its.Stats.BVHCounter += bvhC
	its.Stats.PrimCounter += primC
	return hit
}

func (g *Group) Bounds() pfmath.Bounds3 {
	b := pfmath.EmptyBounds()
	for _, c := range g.Children {
		b = b.Union(c.Bounds())
	}
	return b
}

func (g *Group) Centroid() pfmath.Point3 { return g.Bounds().Center() }

// BVHStats exposes the underlying acceleration structure's node/leaf/depth
// counters, the data the bvh-stats CLI command reports.
type BVHStats struct {
	NodeCount           int
	LeafCount           int
	MaxDepth            int
	AveragePrimsPerLeaf float64
}

func (g *Group) BVHStats() BVHStats {
	return BVHStats{
		NodeCount:           g.bvh.NodeCount(),
		LeafCount:           g.bvh.LeafCount(),
		MaxDepth:            g.bvh.MaxDepth(),
		AveragePrimsPerLeaf: g.bvh.AveragePrimsPerLeaf(),
	}
}

func (g *Group) SampleArea(u1, u2 float64) (point, normal pfmath.Point3, pdfArea float64) {
	sampleable := make([]Sampleable, 0, len(g.Children))
	for _, c := range g.Children {
		if s, ok := c.(Sampleable); ok {
			sampleable = append(sampleable, s)
		}
	}
	if len(sampleable) == 0 {
		return pfmath.Point3{}, pfmath.Vec3{0, 0, 1}, 0
	}
	n := float64(len(sampleable))
	scaled := u1 * n
	idx := int(scaled)
	if idx >= len(sampleable) {
		idx = len(sampleable) - 1
	}
	remainder := scaled - float64(idx)
	point, normal, pdfArea = sampleable[idx].SampleArea(remainder, u2)
	return point, normal, pdfArea / n
}

func (g *Group) Area() float64 {
	total := 0.0
	for _, c := range g.Children {
		if s, ok := c.(Sampleable); ok {
			total += s.Area()
		}
	}
	return total
}

type groupPrims struct{ g *Group }

func (p groupPrims) Len() int                        { return len(p.g.Children) }
func (p groupPrims) Bounds(i int) pfmath.Bounds3     { return p.g.Children[i].Bounds() }
func (p groupPrims) Centroid(i int) pfmath.Point3    { return p.g.Children[i].Centroid() }
func (p groupPrims) Intersect(i int, ray pfmath.Ray, out *Intersection) bool {
	return p.g.Children[i].Intersect(ray, out)
}
