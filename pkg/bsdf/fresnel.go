package bsdf

import "math"

// fresnelDielectric returns the unpolarized Fresnel reflectance for a
// dielectric interface, cosThetaI measured against the surface normal on
// the incident side, eta = etaT/etaI (relative index of refraction in the
// direction of propagation). Grounded on
// original_source/src/bsdfs/fresnel.hpp.
func fresnelDielectric(cosThetaI, eta float64) float64 {
	cosThetaI = pfmathClamp(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		eta = 1 / eta
		cosThetaI = -cosThetaI
	}
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)

	rParl := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	rPerp := (cosThetaI - eta*cosThetaT) / (cosThetaI + eta*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// fresnelSchlick is the cheap Schlick approximation used by Principled's
// metallic lobe mixing.
func fresnelSchlick(cosTheta float64, f0 float64) float64 {
	m := pfmathClamp(1-cosTheta, 0, 1)
	m2 := m * m
	return f0 + (1-f0)*m2*m2*m
}

func pfmathClamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
