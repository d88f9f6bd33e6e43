package bsdf

import (
	"math"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// Diffuse is the Lambertian BSDF: f = albedo/pi. Grounded on
// pkg/material/lambertian.go's cosine-hemisphere sampling, generalized
// from a fixed color to a texture-driven albedo.
type Diffuse struct {
	Reflectance texture.Texture
}

func NewDiffuse(reflectance texture.Texture) *Diffuse { return &Diffuse{Reflectance: reflectance} }

func (d *Diffuse) Evaluate(uv [2]float64, wo, wi pfmath.Vec3) Eval {
	if !pfmath.SameHemisphere(wo, wi) {
		return Eval{}
	}
	cosThetaI := pfmath.AbsCosTheta(wi)
	f := d.Reflectance.Eval(uv).Scale(1 / math.Pi)
	return Eval{Value: f.Scale(cosThetaI)}
}

// Sample draws a cosine-weighted direction in wo's hemisphere: when wo is
// in the lower hemisphere, the sampled direction is mirrored across z=0
// so it lands on the same side as wo, per spec §4.4.
func (d *Diffuse) Sample(uv [2]float64, wo pfmath.Vec3, rng RNG) Sample {
	u1, u2 := rng.Next2D()
	wi, pdf := pfmath.SampleCosineHemisphere(u1, u2)
	if wo.Z() < 0 {
		wi = pfmath.Vec3{wi.X(), wi.Y(), -wi.Z()}
	}
	if pdf <= 0 {
		return InvalidSample()
	}
	cosThetaI := pfmath.AbsCosTheta(wi)
	f := d.Reflectance.Eval(uv).Scale(1 / math.Pi)
	weight := f.Scale(cosThetaI / pdf)
	return Sample{Wi: wi, Weight: weight, Pdf: pdf}
}

func (d *Diffuse) Albedo(uv [2]float64) pfmath.RGB { return d.Reflectance.Eval(uv) }
