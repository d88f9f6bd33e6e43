package integrator

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/scene"
)

// BVHStats returns (bvhCount, primCount, 0)/unit for visualization, per
// spec §4.7 ("BVH performance"). Renamed for Go export conventions.
type BVHStats struct {
	Unit float64
}

func NewBVHStats(unit float64) BVHStats {
	if unit <= 0 {
		unit = 64
	}
	return BVHStats{Unit: unit}
}

func (b BVHStats) Li(ray pfmath.Ray, sc *scene.Scene, rng RNG) pfmath.RGB {
	its := sc.Intersect(ray)
	return pfmath.NewRGB(float64(its.Stats.BVHCounter)/b.Unit, float64(its.Stats.PrimCounter)/b.Unit, 0)
}
