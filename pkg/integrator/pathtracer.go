package integrator

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/scene"
)

// Pathtracer is the bounded-depth iterative extension of Direct: at each
// bounce it adds emission unconditionally, terminates on a missing BSDF
// or max depth, adds a next-event estimate (skipping only lights that can
// be intersected, i.e. background lights), samples the BSDF to produce
// the next ray, and multiplies the running throughput by the sample's
// weight. Depth defaults to 2 per spec §4.7's final paragraph. Grounded
// on pkg/integrator/path_tracing.go's calculateIndirectLighting bounce
// loop.
type Pathtracer struct {
	MaxDepth int
}

func NewPathtracer(maxDepth int) Pathtracer {
	if maxDepth <= 0 {
		maxDepth = 2
	}
	return Pathtracer{MaxDepth: maxDepth}
}

func (p Pathtracer) Li(ray pfmath.Ray, sc *scene.Scene, rng RNG) pfmath.RGB {
	result := pfmath.Black
	throughput := pfmath.White
	currentRay := ray

	for depth := 0; depth <= p.MaxDepth; depth++ {
		its := sc.Intersect(currentRay)
		if !its.Hit {
			result = result.Add(throughput.Mul(sc.EvaluateBackground(currentRay.Direction)))
			break
		}

		frame, wo, mat, emission := shade(its)
		result = result.Add(throughput.Mul(emission))

		if mat == nil {
			break
		}
		if depth == p.MaxDepth {
			break
		}

		result = result.Add(throughput.Mul(directLighting(its.Position, frame, wo, its.UV, mat, sc, rng)))

		s := mat.Sample(its.UV, wo, rng)
		if s.IsZero() {
			break
		}
		throughput = throughput.Mul(s.Weight)
		if throughput.IsBlack() {
			break
		}

		wiWorld := frame.ToWorld(s.Wi)
		currentRay = pfmath.NewRay(its.Position, wiWorld)
	}

	return result
}
