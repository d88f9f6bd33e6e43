package bsdf

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// RoughDielectric is GGX half-vector sampling followed by a Fresnel-based
// branch into reflection or refraction, with the same G1-based weight
// pattern as RoughConductor, per spec §4.4. Grounded on
// original_source/src/bsdfs/roughdielectric.cpp.
type RoughDielectric struct {
	IOR       float64
	Roughness texture.Texture
}

func NewRoughDielectric(ior float64, roughness texture.Texture) *RoughDielectric {
	return &RoughDielectric{IOR: ior, Roughness: roughness}
}

func (r *RoughDielectric) alpha(uv [2]float64) float64 {
	return roughnessToAlpha(r.Roughness.Eval(uv).R)
}

func (r *RoughDielectric) Evaluate(uv [2]float64, wo, wi pfmath.Vec3) Eval {
	return Eval{} // delta-like branch decision makes this sampling-only, as with smooth Dielectric
}

func (r *RoughDielectric) Sample(uv [2]float64, wo pfmath.Vec3, rng RNG) Sample {
	alpha := r.alpha(uv)
	u1, u2 := rng.Next2D()

	entering := wo.Z() > 0
	etaI, etaT := 1.0, r.IOR
	if !entering {
		etaI, etaT = r.IOR, 1.0
	}
	eta := etaT / etaI

	woHemi := wo
	flip := wo.Z() < 0
	if flip {
		woHemi = pfmath.Vec3{wo.X(), wo.Y(), -wo.Z()}
	}
	h := sampleVNDF(woHemi, alpha, u1, u2)
	if flip {
		h = pfmath.Vec3{h.X(), h.Y(), -h.Z()}
	}

	cosThetaI := wo.Dot(h)
	fr := fresnelDielectric(cosThetaI, eta)

	u3 := rng.Next1D()
	if u3 < fr {
		wi := pfmath.Reflect(wo, h)
		if !pfmath.SameHemisphere(wo, wi) {
			return InvalidSample()
		}
		weight := pfmath.NewRGB(fr, fr, fr).Scale(smithG1(wi, alpha))
		return Sample{Wi: wi, Weight: weight, Pdf: fr}
	}

	n := h
	if cosThetaI < 0 {
		n = h.Mul(-1)
	}
	wt, ok := pfmath.Refract(wo, n, eta)
	if !ok {
		return InvalidSample()
	}
	if pfmath.SameHemisphere(wo, wt) {
		return InvalidSample()
	}
	transmittance := 1 - fr
	weight := pfmath.NewRGB(transmittance, transmittance, transmittance).Scale(smithG1(wt, alpha) / (eta * eta))
	return Sample{Wi: wt, Weight: weight, Pdf: transmittance, Delta: false}
}

func (r *RoughDielectric) Albedo(uv [2]float64) pfmath.RGB {
	return fresnelReflectanceAt(r.IOR)
}
