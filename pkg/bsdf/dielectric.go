package bsdf

import "github.com/dlaurent/photonforge/pkg/pfmath"

// Dielectric is a perfectly smooth Fresnel interface: evaluate is zero
// everywhere (sampling-only, per spec §4.4). Grounded on
// pkg/material/dielectric.go's reflect/refract branch, restructured to
// the evaluate/sample protocol's weight formula.
type Dielectric struct {
	IOR float64 // index of refraction of the medium inside the surface
}

func NewDielectric(ior float64) *Dielectric { return &Dielectric{IOR: ior} }

func (d *Dielectric) Evaluate(uv [2]float64, wo, wi pfmath.Vec3) Eval { return Eval{} }

// Sample computes the Fresnel reflectance using the relative IOR (flipping
// both the effective eta and which side is "outside" when wo.z < 0), then
// uses one uniform random number to branch between reflection and
// refraction. Reflection weight is the reflectance; refraction weight is
// transmittance/eta^2 to account for radiance compression across the
// interface, per spec §4.4.
func (d *Dielectric) Sample(uv [2]float64, wo pfmath.Vec3, rng RNG) Sample {
	entering := wo.Z() > 0
	etaI, etaT := 1.0, d.IOR
	n := pfmath.Vec3{0, 0, 1}
	if !entering {
		etaI, etaT = d.IOR, 1.0
		n = pfmath.Vec3{0, 0, -1}
	}
	eta := etaT / etaI

	cosThetaI := wo.Dot(n)
	fr := fresnelDielectric(cosThetaI, eta)

	u := rng.Next1D()
	if u < fr {
		wi := pfmath.Reflect(wo, n)
		return Sample{Wi: wi, Weight: pfmath.NewRGB(fr, fr, fr), Pdf: fr, Delta: true}
	}

	wt, ok := pfmath.Refract(wo, n, eta)
	if !ok {
		// Total internal reflection collapsed into the reflect branch.
		wi := pfmath.Reflect(wo, n)
		return Sample{Wi: wi, Weight: pfmath.White, Pdf: 1, Delta: true}
	}
	transmittance := 1 - fr
	weight := pfmath.White.Scale(transmittance / (eta * eta))
	return Sample{Wi: wt, Weight: weight, Pdf: 1 - fr, Delta: true}
}

// Albedo returns the base reflectance unconditionally — the simpler,
// implementer-chosen contract for the ambiguous Dielectric::albedo open
// question (spec §9): one dielectric copy always returns the base
// reflectance, another branches on the Fresnel sample; this picks the
// former.
func (d *Dielectric) Albedo(uv [2]float64) pfmath.RGB {
	return fresnelReflectanceAt(d.IOR)
}

func fresnelReflectanceAt(ior float64) pfmath.RGB {
	r := fresnelDielectric(1, ior)
	return pfmath.NewRGB(r, r, r)
}
