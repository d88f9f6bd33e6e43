// Package bsdf implements the BSDF protocol from spec §4.4: Diffuse,
// Dielectric, RoughConductor, RoughDielectric, and Principled, each
// operating in the surface's local shading frame. Grounded on
// pkg/material/{lambertian,metal,dielectric}.go for Diffuse/Dielectric's
// overall shape; RoughConductor, RoughDielectric, and Principled have no
// teacher counterpart and are grounded on
// original_source/src/bsdfs/{roughconductor,roughdielectric,principled}.cpp
// and microfacet.hpp/fresnel.hpp.
package bsdf

import "github.com/dlaurent/photonforge/pkg/pfmath"

// RNG is the minimal uniform-sample source a BSDF needs to draw a
// direction; pkg/sampler's samplers satisfy it structurally.
type RNG interface {
	Next1D() float64
	Next2D() (float64, float64)
}

// Eval is the evaluate() result: value = cos(theta_i) * f(wo, wi).
type Eval struct {
	Value pfmath.RGB
}

// Sample is the sample() result: weight = cos(theta_i) * f(wo, wi) / p(wi).
// A zero weight marks a failed sample (spec §9's BsdfSample::invalid()).
type Sample struct {
	Wi     pfmath.Vec3
	Weight pfmath.RGB
	Pdf    float64
	Delta  bool // true for a specular lobe with no continuous density
}

func (s Sample) IsZero() bool { return s.Weight.IsBlack() }

func InvalidSample() Sample { return Sample{} }

// BSDF is implemented by every material variant. uv/wo/wi/directions are
// all expressed in the surface's local shading frame (+z = normal).
type BSDF interface {
	Evaluate(uv [2]float64, wo, wi pfmath.Vec3) Eval
	Sample(uv [2]float64, wo pfmath.Vec3, rng RNG) Sample
	Albedo(uv [2]float64) pfmath.RGB
}

// roughnessToAlpha is the roughness remapping used by every microfacet
// BSDF (spec §4.4): "alpha = max(1e-3, user_roughness^2)".
func roughnessToAlpha(roughness float64) float64 {
	a := roughness * roughness
	if a < 1e-3 {
		return 1e-3
	}
	return a
}
