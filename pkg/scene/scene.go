// Package scene implements the Scene entity and its operations from spec
// §3/§4.6: intersect, shadow-ray visibility, background evaluation, and
// uniform light selection. Grounded on pkg/scene/scene.go's
// Preprocess-then-render lifecycle, narrowed to this package's simpler
// invariants (one top-level shape, one optional background light, an
// ordered sampleable-lights list) instead of a richer
// multi-convenience-constructor Scene.
package scene

import (
	"math"

	"github.com/dlaurent/photonforge/pkg/camera"
	"github.com/dlaurent/photonforge/pkg/light"
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/shape"
)

// RNG is the uniform-sample source light selection needs.
type RNG interface {
	Next1D() float64
}

// Scene is immutable during rendering (spec §3's lifecycle rule); the top
// shape is auto-wrapped in a Group by the caller if scene construction
// produced more than one root shape.
type Scene struct {
	Camera          camera.Camera
	TopShape        shape.Shape
	BackgroundLight *light.EnvironmentMap
	Lights          []light.Light // ordered, sampleable (excludes nothing per §4.5's canBeIntersected rule at selection time)
}

func NewScene(cam camera.Camera, top shape.Shape, background *light.EnvironmentMap, lights []light.Light) *Scene {
	return &Scene{Camera: cam, TopShape: top, BackgroundLight: background, Lights: lights}
}

// Intersect walks the top-level shape.
func (s *Scene) Intersect(ray pfmath.Ray) shape.Intersection {
	its := shape.NewMiss(math.Inf(1))
	if s.TopShape != nil {
		s.TopShape.Intersect(ray, &its)
	}
	if its.Hit {
		its.Wo = ray.Direction.Mul(-1).Normalize()
	}
	return its
}

// Occluded is the shadow-ray visibility test; the caller is responsible
// for shrinking tMax by (1-epsilon) per spec §4.1's numeric policy.
func (s *Scene) Occluded(ray pfmath.Ray, tMax float64) bool {
	its := shape.NewMiss(tMax)
	if s.TopShape == nil {
		return false
	}
	return s.TopShape.Intersect(ray, &its)
}

func (s *Scene) EvaluateBackground(dir pfmath.Vec3) pfmath.RGB {
	if s.BackgroundLight == nil {
		return pfmath.Black
	}
	return s.BackgroundLight.Eval(dir)
}

// SampleLight selects uniformly over the sampleable-lights vector, per
// spec §4.6.
func (s *Scene) SampleLight(rng RNG) (light.Light, float64) {
	if len(s.Lights) == 0 {
		return nil, 0
	}
	idx := int(rng.Next1D() * float64(len(s.Lights)))
	if idx >= len(s.Lights) {
		idx = len(s.Lights) - 1
	}
	return s.Lights[idx], 1 / float64(len(s.Lights))
}

// ShadowRayMaxDistance shrinks tMax by (1-epsilon) to avoid
// self-intersection at the shadow ray's far end (spec §4.1's numeric
// policy).
func ShadowRayMaxDistance(distance float64) float64 {
	return distance * (1 - pfmath.Epsilon)
}
