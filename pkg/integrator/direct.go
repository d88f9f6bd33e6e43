package integrator

import (
	"github.com/dlaurent/photonforge/pkg/bsdf"
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/scene"
)

// Direct is the one-bounce integrator: emission at the hit, one
// next-event-estimation light sample, then one BSDF sample evaluated
// against its secondary hit's emission/background. Per spec §4.7 this is
// "MIS-less next-event estimation... weighted by 1/selectionProb" — no
// power-heuristic combination with the BSDF sample, unlike Pathtracer's
// indirect term. Grounded on pkg/integrator/path_tracing.go's
// calculateDirectLighting, simplified to the spec's weaker MIS-less
// contract.
type Direct struct{}

func (Direct) Li(ray pfmath.Ray, sc *scene.Scene, rng RNG) pfmath.RGB {
	its := sc.Intersect(ray)
	if !its.Hit {
		return sc.EvaluateBackground(ray.Direction)
	}

	frame, wo, mat, emission := shade(its)
	result := emission
	if mat == nil {
		return result
	}

	result = result.Add(directLighting(its.Position, frame, wo, its.UV, mat, sc, rng))

	s := mat.Sample(its.UV, wo, rng)
	if !s.IsZero() {
		wiWorld := frame.ToWorld(s.Wi)
		secondary := sc.Intersect(pfmath.NewRay(its.Position, wiWorld))
		var next pfmath.RGB
		if secondary.Hit {
			if secondary.Instance != nil && secondary.Instance.Emission != nil {
				next = secondary.Instance.Emission.Eval(secondary.UV)
			}
		} else {
			next = sc.EvaluateBackground(wiWorld)
		}
		result = result.Add(next.Mul(s.Weight))
	}

	return result
}

// directLighting draws one light from the scene's uniform light list,
// shoots a shadow ray, and returns the evaluated contribution weighted by
// 1/selectionProb. A light that can be intersected (only background
// lights, per spec §4.5) is skipped here: its radiance is already found
// by the escaped-ray background lookup, so sampling it again here would
// double count it. Lights that cannot be intersected (point, directional,
// area) are always sampled here; a bounce that directly hits an area
// light's geometry still adds its emission unconditionally, which is an
// accepted correlated-estimator overlap of this MIS-less scheme rather
// than something this function tries to avoid.
func directLighting(origin pfmath.Point3, frame pfmath.Frame, wo pfmath.Vec3, uv [2]float64, mat bsdf.BSDF, sc *scene.Scene, rng RNG) pfmath.RGB {
	l, selectionProb := sc.SampleLight(rng)
	if l == nil || selectionProb <= 0 {
		return pfmath.Black
	}
	if l.CanBeIntersected() {
		return pfmath.Black
	}

	ds := l.SampleDirect(origin, rng)
	if ds.IsZero() || ds.PDF <= 0 {
		return pfmath.Black
	}

	wiLocal := frame.ToLocal(ds.Wi)
	if !pfmath.SameHemisphere(wo, wiLocal) {
		return pfmath.Black
	}

	shadowRay := pfmath.NewRay(origin, ds.Wi)
	if sc.Occluded(shadowRay, scene.ShadowRayMaxDistance(ds.Distance)) {
		return pfmath.Black
	}

	eval := mat.Evaluate(uv, wo, wiLocal)
	return eval.Value.Mul(ds.Weight).Scale(1 / selectionProb)
}
