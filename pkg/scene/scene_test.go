package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dlaurent/photonforge/pkg/light"
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/shape"
	"github.com/dlaurent/photonforge/pkg/texture"
)

type goRNG struct{ r *rand.Rand }

func (g goRNG) Next1D() float64 { return g.r.Float64() }

func TestScene_IntersectFindsTopShape(t *testing.T) {
	top := shape.NewInstance(shape.NewSphere(), nil)
	sc := NewScene(nil, top, nil, nil)

	ray := pfmath.Ray{Origin: pfmath.Point3{0, 0, -3}, Direction: pfmath.Vec3{0, 0, 1}}
	its := sc.Intersect(ray)
	if !its.Hit {
		t.Fatal("expected a hit on the sphere")
	}
	if math.Abs(its.Wo.Dot(pfmath.Vec3{0, 0, -1})-1) > 1e-9 {
		t.Errorf("Wo should point back toward the ray origin, got %v", its.Wo)
	}
}

func TestScene_IntersectWithNilTopShapeMisses(t *testing.T) {
	sc := NewScene(nil, nil, nil, nil)
	ray := pfmath.Ray{Origin: pfmath.Point3{0, 0, -3}, Direction: pfmath.Vec3{0, 0, 1}}
	its := sc.Intersect(ray)
	if its.Hit {
		t.Error("a scene with no top shape should never report a hit")
	}
}

func TestScene_OccludedRespectsTMax(t *testing.T) {
	top := shape.NewInstance(shape.NewSphere(), nil)
	sc := NewScene(nil, top, nil, nil)

	ray := pfmath.Ray{Origin: pfmath.Point3{0, 0, -3}, Direction: pfmath.Vec3{0, 0, 1}}
	if sc.Occluded(ray, 1) {
		t.Error("the sphere is beyond tMax=1, should not be occluded")
	}
	if !sc.Occluded(ray, 100) {
		t.Error("the sphere is within tMax=100, should be occluded")
	}
}

func TestScene_EvaluateBackgroundWithoutLightReturnsBlack(t *testing.T) {
	sc := NewScene(nil, nil, nil, nil)
	c := sc.EvaluateBackground(pfmath.Vec3{0, 0, 1})
	if c != pfmath.Black {
		t.Errorf("expected black background, got %v", c)
	}
}

func TestScene_EvaluateBackgroundDelegatesToEnvironmentMap(t *testing.T) {
	env := light.NewEnvironmentMap(texture.NewConstant(pfmath.RGB{R: 1, G: 2, B: 3}))
	sc := NewScene(nil, nil, env, nil)
	c := sc.EvaluateBackground(pfmath.Vec3{0, 0, 1})
	if c != (pfmath.RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("expected the constant environment radiance, got %v", c)
	}
}

func TestScene_SampleLightWithNoLightsReturnsNil(t *testing.T) {
	sc := NewScene(nil, nil, nil, nil)
	l, pdf := sc.SampleLight(goRNG{rand.New(rand.NewSource(1))})
	if l != nil || pdf != 0 {
		t.Errorf("expected (nil, 0) with no lights, got (%v, %v)", l, pdf)
	}
}

func TestScene_SampleLightUniformPDF(t *testing.T) {
	lights := []light.Light{
		light.NewPoint(pfmath.Point3{}, pfmath.RGB{R: 1}),
		light.NewPoint(pfmath.Point3{}, pfmath.RGB{R: 2}),
		light.NewPoint(pfmath.Point3{}, pfmath.RGB{R: 3}),
	}
	sc := NewScene(nil, nil, nil, lights)
	_, pdf := sc.SampleLight(goRNG{rand.New(rand.NewSource(1))})
	if math.Abs(pdf-1.0/3) > 1e-9 {
		t.Errorf("pdf = %v, want 1/3", pdf)
	}
}

func TestShadowRayMaxDistance_ShrinksByEpsilon(t *testing.T) {
	got := ShadowRayMaxDistance(10)
	want := 10 * (1 - pfmath.Epsilon)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
