package integrator

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/scene"
)

// Albedo returns the hit surface's BSDF albedo, black otherwise. Named in
// the component table (spec §2/§4.7) but not detailed in the §4.7 variant
// list; implemented here grounded on
// original_source/src/integrators/albedo.cpp.
type Albedo struct{}

func (Albedo) Li(ray pfmath.Ray, sc *scene.Scene, rng RNG) pfmath.RGB {
	its := sc.Intersect(ray)
	if !its.Hit || its.Instance == nil || its.Instance.BSDF == nil {
		return pfmath.Black
	}
	return its.Instance.BSDF.Albedo(its.UV)
}
