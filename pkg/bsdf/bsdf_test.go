package bsdf

import (
	"math/rand"
	"testing"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// goRNG adapts math/rand to the bsdf.RNG contract for deterministic tests.
type goRNG struct{ r *rand.Rand }

func (g goRNG) Next1D() float64 { return g.r.Float64() }
func (g goRNG) Next2D() (float64, float64) { return g.r.Float64(), g.r.Float64() }

func allBSDFs() map[string]BSDF {
	grey := texture.NewConstant(pfmath.NewRGB(0.6, 0.6, 0.6))
	rough := texture.NewConstant(pfmath.NewRGB(0.3, 0.3, 0.3))
	return map[string]BSDF{
		"diffuse":         NewDiffuse(grey),
		"dielectric":      NewDielectric(1.5),
		"roughconductor":  NewRoughConductor(grey, rough),
		"roughdielectric": NewRoughDielectric(1.5, rough),
		"principled":      NewPrincipled(grey, texture.NewConstant(pfmath.NewRGB(0.5, 0.5, 0.5)), rough, 0),
	}
}

func TestBSDF_SampleWeightIsFiniteAndNonNegative(t *testing.T) {
	rng := goRNG{rand.New(rand.NewSource(42))}
	for name, b := range allBSDFs() {
		for i := 0; i < 200; i++ {
			wo, _ := pfmath.SampleCosineHemisphere(rng.r.Float64(), rng.r.Float64())
			s := b.Sample([2]float64{0.5, 0.5}, wo, rng)
			if s.IsZero() {
				continue
			}
			if !s.Weight.IsFinite() {
				t.Fatalf("%s: non-finite weight %+v", name, s.Weight)
			}
			if s.Weight.R < 0 || s.Weight.G < 0 || s.Weight.B < 0 {
				t.Fatalf("%s: negative weight %+v", name, s.Weight)
			}
		}
	}
}

func TestDiffuse_MonteCarloConvergesToAlbedo(t *testing.T) {
	albedo := pfmath.NewRGB(0.6, 0.3, 0.1)
	d := NewDiffuse(texture.NewConstant(albedo))
	rng := goRNG{rand.New(rand.NewSource(7))}
	wo := pfmath.Vec3{0, 0, 1}

	sum := pfmath.Black
	const n = 20000
	for i := 0; i < n; i++ {
		s := d.Sample([2]float64{0, 0}, wo, rng)
		sum = sum.Add(s.Weight)
	}
	mean := sum.Scale(1.0 / n)

	if diff := mean.Sub(albedo); diff.Luminance() > 0.02 || diff.Luminance() < -0.02 {
		t.Errorf("mean %+v too far from albedo %+v", mean, albedo)
	}
	for _, d := range []float64{mean.R - albedo.R, mean.G - albedo.G, mean.B - albedo.B} {
		if d > 0.03 || d < -0.03 {
			t.Errorf("channel mismatch: mean=%+v albedo=%+v", mean, albedo)
		}
	}
}
