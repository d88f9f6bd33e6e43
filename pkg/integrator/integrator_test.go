package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dlaurent/photonforge/pkg/bsdf"
	"github.com/dlaurent/photonforge/pkg/light"
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/scene"
	"github.com/dlaurent/photonforge/pkg/shape"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// goRNG adapts math/rand to every RNG contract in this module for
// deterministic tests.
type goRNG struct{ r *rand.Rand }

func (g goRNG) Next1D() float64            { return g.r.Float64() }
func (g goRNG) Next2D() (float64, float64) { return g.r.Float64(), g.r.Float64() }

// pointLitSphere builds the spec §8 "direct-pointlight" scenario: a
// diffuse unit sphere at the origin lit by one point light, no
// background.
func pointLitSphere(reflectance, power float64) (*scene.Scene, *light.Point) {
	sph := shape.NewSphere()
	inst := shape.NewInstance(sph, nil)
	inst.BSDF = bsdf.NewDiffuse(texture.NewConstant(pfmath.NewRGB(reflectance, reflectance, reflectance)))
	inst.Visible = true

	pl := light.NewPoint(pfmath.Point3{0, 0, 5}, pfmath.NewRGB(power, power, power))
	sc := scene.NewScene(nil, inst, nil, []light.Light{pl})
	return sc, pl
}

func TestDirect_PointLightIlluminatesFacingSurface(t *testing.T) {
	sc, _ := pointLitSphere(0.5, 200)
	rng := goRNG{rand.New(rand.NewSource(1))}
	ray := pfmath.NewRay(pfmath.Point3{0, 0, 3}, pfmath.Vec3{0, 0, -1})

	d := Direct{}
	var sum pfmath.RGB
	const n = 2000
	for i := 0; i < n; i++ {
		sum = sum.Add(d.Li(ray, sc, rng))
	}
	mean := sum.Scale(1.0 / n)

	if !mean.IsFinite() {
		t.Fatalf("non-finite result: %+v", mean)
	}
	if mean.R <= 0 {
		t.Fatalf("expected positive illumination facing the light, got %+v", mean)
	}

	// Closed-form expectation: point=(0,0,1), n=(0,0,1), light at
	// (0,0,5) along the normal, so cos terms are both 1 and the NEE
	// term reduces to albedo/pi * power/(4*pi*16).
	want := 0.5 / math.Pi * 200 / (4 * math.Pi * 16)
	if diff := mean.R - want; diff > want*0.1 || diff < -want*0.1 {
		t.Errorf("mean.R=%v want near %v", mean.R, want)
	}
}

func TestDirect_BackFacingSurfaceGetsNoDirectLight(t *testing.T) {
	sc, _ := pointLitSphere(0.5, 200)
	rng := goRNG{rand.New(rand.NewSource(2))}
	// Ray hitting the sphere's underside head-on at (0,0,-1); the hit
	// point's normal faces away from the light at (0,0,5).
	ray := pfmath.NewRay(pfmath.Point3{0, 0, -3}, pfmath.Vec3{0, 0, 1})

	d := Direct{}
	got := d.Li(ray, sc, rng)
	if got.R > 1e-6 {
		t.Errorf("expected ~0 direct illumination on the shadowed hemisphere, got %+v", got)
	}
}

func TestPathtracer_TerminatesAndStaysFinite(t *testing.T) {
	sc, _ := pointLitSphere(0.8, 200)
	rng := goRNG{rand.New(rand.NewSource(3))}
	ray := pfmath.NewRay(pfmath.Point3{0, 0, 3}, pfmath.Vec3{0, 0, -1})

	p := NewPathtracer(4)
	for i := 0; i < 500; i++ {
		c := p.Li(ray, sc, rng)
		if !c.IsFinite() {
			t.Fatalf("non-finite radiance at sample %d: %+v", i, c)
		}
		if c.R < 0 || c.G < 0 || c.B < 0 {
			t.Fatalf("negative radiance at sample %d: %+v", i, c)
		}
	}
}

func TestPathtracer_DefaultDepthIsTwo(t *testing.T) {
	p := NewPathtracer(0)
	if p.MaxDepth != 2 {
		t.Errorf("MaxDepth=%d, want 2", p.MaxDepth)
	}
}

func TestNormals_MissReturnsBackground(t *testing.T) {
	sc := scene.NewScene(nil, nil, nil, nil)
	ray := pfmath.NewRay(pfmath.Point3{0, 0, 0}, pfmath.Vec3{0, 0, 1})
	got := Normals{}.Li(ray, sc, goRNG{rand.New(rand.NewSource(4))})
	if !got.IsBlack() {
		t.Errorf("expected black background, got %+v", got)
	}
}
