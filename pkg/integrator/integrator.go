// Package integrator implements the integrator family from spec §4.7:
// Normals, Albedo, BVHStats, Direct, Pathtracer, sharing the sample loop
// (driven by pkg/render) and differing only in Li. Grounded on
// pkg/integrator/path_tracing.go's calculateDirectLighting/
// calculateIndirectLighting shape for Direct/Pathtracer, and on
// original_source/src/integrators/albedo.cpp for the Albedo integrator,
// which pkg/integrator/path_tracing.go has no analog for.
package integrator

import (
	"github.com/dlaurent/photonforge/pkg/bsdf"
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/scene"
	"github.com/dlaurent/photonforge/pkg/shape"
)

// RNG is the uniform-sample source every integrator needs; pkg/sampler's
// samplers satisfy it structurally, as do bsdf.RNG and light.RNG.
type RNG interface {
	Next1D() float64
	Next2D() (float64, float64)
}

// Integrator is implemented by every member of the family; all share the
// per-pixel sample loop and differ only in Li.
type Integrator interface {
	Li(ray pfmath.Ray, sc *scene.Scene, rng RNG) pfmath.RGB
}

// shade resolves the BSDF/frame bookkeeping shared by Direct and
// Pathtracer: builds the local-frame wo, looks up the hit's BSDF (nil for
// a surface with no material, e.g. a light-only shape).
func shade(its shape.Intersection) (frame pfmath.Frame, wo pfmath.Vec3, mat bsdf.BSDF, emission pfmath.RGB) {
	frame = its.Frame
	wo = frame.ToLocal(its.Wo)
	if its.Instance != nil {
		mat = its.Instance.BSDF
		if its.Instance.Emission != nil {
			emission = its.Instance.Emission.Eval(its.UV)
		}
	}
	return frame, wo, mat, emission
}
