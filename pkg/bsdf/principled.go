package bsdf

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// Principled linearly combines a diffuse lobe and a metallic (rough
// conductor) lobe, mixed by base color, metallic, and specular parameters
// via a Schlick Fresnel term, with one-sample MIS between the two lobes
// selected by an albedo-proportional probability, per spec §4.4. Grounded
// on pkg/material/layered.go and pkg/material/mix.go's lobe-mixing shape,
// extended to the metallic/specular parameterization from
// original_source/src/bsdfs/principled.cpp.
type Principled struct {
	BaseColor texture.Texture
	Metallic  texture.Texture // scalar in R channel
	Roughness texture.Texture // scalar in R channel
	Specular  float64         // dielectric F0, default 0.04

	diffuse  *Diffuse
	metallic *RoughConductor
}

func NewPrincipled(baseColor, metallic, roughness texture.Texture, specular float64) *Principled {
	if specular == 0 {
		specular = 0.04
	}
	return &Principled{
		BaseColor: baseColor,
		Metallic:  metallic,
		Roughness: roughness,
		Specular:  specular,
		diffuse:   NewDiffuse(baseColor),
		metallic:  NewRoughConductor(baseColor, roughness),
	}
}

// lobeWeights returns the metallic mix factor and the per-lobe selection
// probabilities (proportional to each lobe's albedo luminance).
func (p *Principled) lobeWeights(uv [2]float64) (metallic, pDiffuse, pMetal float64) {
	metallic = pfmath.Clamp(p.Metallic.Eval(uv).R, 0, 1)
	base := p.BaseColor.Eval(uv)
	diffuseAlbedo := base.Scale(1 - metallic).Luminance()
	metalAlbedo := base.Scale(metallic).Luminance()
	total := diffuseAlbedo + metalAlbedo
	if total <= 0 {
		return metallic, 0.5, 0.5
	}
	return metallic, diffuseAlbedo / total, metalAlbedo / total
}

func (p *Principled) Evaluate(uv [2]float64, wo, wi pfmath.Vec3) Eval {
	metallic, _, _ := p.lobeWeights(uv)
	f0 := p.Specular
	cosThetaO := pfmath.AbsCosTheta(wo)
	fr := fresnelSchlick(cosThetaO, f0)

	diffuseTerm := p.diffuse.Evaluate(uv, wo, wi).Value.Scale((1 - metallic) * (1 - fr))
	metalTerm := p.metallic.Evaluate(uv, wo, wi).Value.Scale(metallic + (1-metallic)*fr)
	return Eval{Value: diffuseTerm.Add(metalTerm)}
}

func (p *Principled) Sample(uv [2]float64, wo pfmath.Vec3, rng RNG) Sample {
	metallic, pDiffuse, pMetal := p.lobeWeights(uv)
	u := rng.Next1D()

	var s Sample
	var selectedP float64
	if u < pDiffuse {
		s = p.diffuse.Sample(uv, wo, rng)
		selectedP = pDiffuse
	} else {
		s = p.metallic.Sample(uv, wo, rng)
		selectedP = pMetal
	}
	if s.IsZero() || selectedP <= 0 {
		return InvalidSample()
	}

	f0 := p.Specular
	cosThetaO := pfmath.AbsCosTheta(wo)
	fr := fresnelSchlick(cosThetaO, f0)
	mix := 1.0
	if u < pDiffuse {
		mix = (1 - metallic) * (1 - fr)
	} else {
		mix = metallic + (1-metallic)*fr
	}

	weight := s.Weight.Scale(mix / selectedP)
	return Sample{Wi: s.Wi, Weight: weight, Pdf: s.Pdf * selectedP}
}

func (p *Principled) Albedo(uv [2]float64) pfmath.RGB {
	return p.BaseColor.Eval(uv)
}
