// Package accel implements the BVH acceleration structure: build and
// traverse a binary BVH over any indexed collection of primitives exposing
// the {bounds(i), centroid(i), intersect(i, ray, its)} contract (spec
// §4.1). Grounded on pkg/geometry/bvh.go's precomputed-centroid BVHNode,
// generalized to the spec's required two-pointer in-place partition and
// near/far ordered traversal (neither of which pkg/geometry/bvh.go does),
// and on achilleasa-polaris's bvh_builder.go for the optional SAH build.
//
// The tree is generic over the result type R so shapes can thread their
// own rich SurfaceEvent-shaped out-parameter through traversal instead of
// the BVH only knowing about a bare hit distance.
package accel

import "github.com/dlaurent/photonforge/pkg/pfmath"

// Result is the minimum a per-primitive intersection result must expose so
// the BVH can compare candidate hits without knowing their concrete shape.
type Result interface {
	DistT() float64
}

// Primitives is the contract the BVH builds over. Index arguments refer to
// positions in the caller's original (unpermuted) primitive slice.
type Primitives[R Result] interface {
	Len() int
	Bounds(i int) pfmath.Bounds3
	Centroid(i int) pfmath.Point3
	Intersect(i int, ray pfmath.Ray, out *R) bool
}

// node is a flat BVH node: PrimitiveCount==0 marks an internal node whose
// children occupy Left and Left+1 in Nodes; otherwise it is a leaf whose
// primitive-index range is [Left, Left+PrimitiveCount) in Perm.
type node struct {
	Bounds         pfmath.Bounds3
	Left           int
	PrimitiveCount int
}

// BVH is the built tree plus the primitive permutation array.
type BVH[R Result] struct {
	prims Primitives[R]
	nodes []node
	perm  []int
}

const leafThreshold = 2

// Build constructs a BVH over prims using the spec's recursive top-down
// median-split: largest-diagonal axis, two-pointer in-place partition
// around the node AABB's midpoint on that axis, ties go right.
func Build[R Result](prims Primitives[R]) *BVH[R] {
	n := prims.Len()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	b := &BVH[R]{prims: prims, perm: perm}
	if n == 0 {
		return b
	}
	b.nodes = make([]node, 1, 2*n)
	b.buildInto(0, 0, n)
	return b
}

// buildInto fills the already-allocated node at idx from perm[lo:hi]. When
// splitting, it reserves two fresh child slots at the end of b.nodes (so a
// node's children always occupy consecutive positions leftFirst and
// leftFirst+1, per the spec's BVH-node invariant) and recurses into each.
func (b *BVH[R]) buildInto(idx, lo, hi int) {
	bounds := pfmath.EmptyBounds()
	for i := lo; i < hi; i++ {
		bounds = bounds.Union(b.prims.Bounds(b.perm[i]))
	}
	b.nodes[idx].Bounds = bounds

	count := hi - lo
	if count <= leafThreshold {
		b.nodes[idx].Left = lo
		b.nodes[idx].PrimitiveCount = count
		return
	}

	axis := bounds.LargestAxis()
	midOnAxis := component(bounds.Center(), axis)

	i, j := lo, hi-1
	for i <= j {
		c := component(b.prims.Centroid(b.perm[i]), axis)
		if c < midOnAxis {
			i++
		} else {
			b.perm[i], b.perm[j] = b.perm[j], b.perm[i]
			j--
		}
	}
	split := i

	if split == lo || split == hi {
		// Degenerate partition (all centroids on one side of the
		// midpoint): keep as a leaf rather than recursing forever.
		b.nodes[idx].Left = lo
		b.nodes[idx].PrimitiveCount = count
		return
	}

	leftIdx := len(b.nodes)
	rightIdx := leftIdx + 1
	b.nodes = append(b.nodes, node{}, node{})
	b.nodes[idx].Left = leftIdx
	b.nodes[idx].PrimitiveCount = 0

	b.buildInto(leftIdx, lo, split)
	b.buildInto(rightIdx, split, hi)
}

func component(p pfmath.Point3, axis int) float64 {
	switch axis {
	case 0:
		return p.X()
	case 1:
		return p.Y()
	default:
		return p.Z()
	}
}

// Intersect walks the tree, testing leaf primitives and descending into
// children nearest-first, pruning the farther child once its near-distance
// is no longer smaller than the running closest hit. bvhCounter/primCounter
// accumulate traversal stats for the caller (BVH-performance integrator).
func (b *BVH[R]) Intersect(ray pfmath.Ray, out *R, bvhCounter, primCounter *int) bool {
	if len(b.nodes) == 0 {
		return false
	}
	return b.intersectNode(0, ray, out, bvhCounter, primCounter)
}

func (b *BVH[R]) intersectNode(idx int, ray pfmath.Ray, out *R, bvhCounter, primCounter *int) bool {
	*bvhCounter++
	n := &b.nodes[idx]
	if _, _, ok := n.Bounds.IntersectP(ray, (*out).DistT()); !ok {
		return false
	}

	if n.PrimitiveCount > 0 {
		hitAny := false
		for i := n.Left; i < n.Left+n.PrimitiveCount; i++ {
			*primCounter++
			if b.prims.Intersect(b.perm[i], ray, out) {
				hitAny = true
			}
		}
		return hitAny
	}

	leftIdx := n.Left
	rightIdx := n.Left + 1
	leftNear, _, leftOK := b.nodes[leftIdx].Bounds.IntersectP(ray, (*out).DistT())
	rightNear, _, rightOK := b.nodes[rightIdx].Bounds.IntersectP(ray, (*out).DistT())

	first, second := leftIdx, rightIdx
	firstOK, secondOK := leftOK, rightOK
	firstNear, secondNear := leftNear, rightNear
	if rightOK && (!leftOK || rightNear < leftNear) {
		first, second = rightIdx, leftIdx
		firstOK, secondOK = rightOK, leftOK
		firstNear, secondNear = rightNear, leftNear
	}
	_ = firstNear

	hitAny := false
	if firstOK {
		if b.intersectNode(first, ray, out, bvhCounter, primCounter) {
			hitAny = true
		}
	}
	if secondOK && secondNear < (*out).DistT() {
		if b.intersectNode(second, ray, out, bvhCounter, primCounter) {
			hitAny = true
		}
	}
	return hitAny
}

// NodeCount, LeafCount, MaxDepth, AveragePrimsPerLeaf support the
// bvh-stats CLI command (through shape.Group.BVHStats).
func (b *BVH[R]) NodeCount() int { return len(b.nodes) }

func (b *BVH[R]) LeafCount() int {
	n := 0
	for _, nd := range b.nodes {
		if nd.PrimitiveCount > 0 {
			n++
		}
	}
	return n
}

func (b *BVH[R]) MaxDepth() int {
	if len(b.nodes) == 0 {
		return 0
	}
	return b.depth(0)
}

func (b *BVH[R]) depth(idx int) int {
	n := &b.nodes[idx]
	if n.PrimitiveCount > 0 {
		return 1
	}
	l := b.depth(n.Left)
	r := b.depth(n.Left + 1)
	if l > r {
		return l + 1
	}
	return r + 1
}

func (b *BVH[R]) AveragePrimsPerLeaf() float64 {
	leaves := b.LeafCount()
	if leaves == 0 {
		return 0
	}
	total := 0
	for _, nd := range b.nodes {
		if nd.PrimitiveCount > 0 {
			total += nd.PrimitiveCount
		}
	}
	return float64(total) / float64(leaves)
}
