package bsdf

import (
	"math"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// RoughConductor is a GGX microfacet conductor with Smith masking and
// VNDF sampling, per spec §4.4: "sample a visible half-vector, set
// wi = reflect(wo, h), weight = reflectance * G1(h, wi)". No teacher
// counterpart exists; grounded on
// original_source/src/bsdfs/roughconductor.cpp and microfacet.hpp.
type RoughConductor struct {
	Reflectance texture.Texture
	Roughness   texture.Texture // scalar roughness stored in the R channel
}

func NewRoughConductor(reflectance, roughness texture.Texture) *RoughConductor {
	return &RoughConductor{Reflectance: reflectance, Roughness: roughness}
}

func (r *RoughConductor) alpha(uv [2]float64) float64 {
	return roughnessToAlpha(r.Roughness.Eval(uv).R)
}

func (r *RoughConductor) Evaluate(uv [2]float64, wo, wi pfmath.Vec3) Eval {
	if !pfmath.SameHemisphere(wo, wi) {
		return Eval{}
	}
	alpha := r.alpha(uv)
	h := wo.Add(wi).Normalize()
	d := ggxD(h, alpha)
	g := smithG(wo, wi, alpha)
	cosThetaO := pfmath.AbsCosTheta(wo)
	cosThetaI := pfmath.AbsCosTheta(wi)
	if cosThetaO <= 0 || cosThetaI <= 0 {
		return Eval{}
	}
	f := r.Reflectance.Eval(uv).Scale(d * g / (4 * cosThetaO * cosThetaI))
	return Eval{Value: f.Scale(cosThetaI)}
}

func (r *RoughConductor) Sample(uv [2]float64, wo pfmath.Vec3, rng RNG) Sample {
	alpha := r.alpha(uv)
	u1, u2 := rng.Next2D()
	woHemi := wo
	flip := wo.Z() < 0
	if flip {
		woHemi = pfmath.Vec3{wo.X(), wo.Y(), -wo.Z()}
	}
	h := sampleVNDF(woHemi, alpha, u1, u2)
	if flip {
		h = pfmath.Vec3{h.X(), h.Y(), -h.Z()}
	}
	wi := pfmath.Reflect(wo, h)
	if !pfmath.SameHemisphere(wo, wi) {
		return InvalidSample()
	}
	g1wi := smithG1(wi, alpha)
	weight := r.Reflectance.Eval(uv).Scale(g1wi)
	pdf := smithG1(wo, alpha) * ggxD(h, alpha) / (4 * math.Max(1e-8, pfmath.AbsCosTheta(wo)))
	return Sample{Wi: wi, Weight: weight, Pdf: pdf}
}

func (r *RoughConductor) Albedo(uv [2]float64) pfmath.RGB { return r.Reflectance.Eval(uv) }
