package bsdf

import (
	"math"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// GGX (Trowbridge-Reitz) normal distribution and Smith masking-shadowing,
// grounded on original_source/src/bsdfs/microfacet.hpp.

func ggxD(h pfmath.Vec3, alpha float64) float64 {
	cosTheta := pfmath.AbsCosTheta(h)
	if cosTheta <= 0 {
		return 0
	}
	a2 := alpha * alpha
	cos2 := cosTheta * cosTheta
	tan2 := (1 - cos2) / cos2
	denom := math.Pi * cos2 * cos2 * (a2 + tan2) * (a2 + tan2)
	if denom <= 0 {
		return 0
	}
	return a2 / denom
}

// smithG1 is the Smith masking term for a single direction w against the
// half-vector's normal-distribution roughness.
func smithG1(w pfmath.Vec3, alpha float64) float64 {
	cosTheta := pfmath.AbsCosTheta(w)
	if cosTheta <= 0 {
		return 0
	}
	tan2 := (1 - cosTheta*cosTheta) / (cosTheta * cosTheta)
	root := math.Sqrt(1 + alpha*alpha*tan2)
	return 2 / (1 + root)
}

func smithG(wo, wi pfmath.Vec3, alpha float64) float64 {
	return smithG1(wo, alpha) * smithG1(wi, alpha)
}

// sampleVNDF draws a half-vector from the visible-normal distribution
// (Heitz 2018), given an outgoing direction already in the local frame.
func sampleVNDF(wo pfmath.Vec3, alpha float64, u1, u2 float64) pfmath.Vec3 {
	// Stretch view direction into the alpha=1 (hemisphere) configuration.
	vh := pfmath.Vec3{alpha * wo.X(), alpha * wo.Y(), wo.Z()}.Normalize()

	lensq := vh.X()*vh.X() + vh.Y()*vh.Y()
	var t1 pfmath.Vec3
	if lensq > 0 {
		t1 = pfmath.Vec3{-vh.Y(), vh.X(), 0}.Mul(1 / math.Sqrt(lensq))
	} else {
		t1 = pfmath.Vec3{1, 0, 0}
	}
	t2 := vh.Cross(t1)

	r := math.Sqrt(u1)
	phi := 2 * math.Pi * u2
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1 + vh.Z())
	p2 = (1-s)*math.Sqrt(math.Max(0, 1-p1*p1)) + s*p2

	nh := t1.Mul(p1).Add(t2.Mul(p2)).Add(vh.Mul(math.Sqrt(math.Max(0, 1-p1*p1-p2*p2))))

	// Unstretch back to the ellipsoid configuration.
	h := pfmath.Vec3{alpha * nh.X(), alpha * nh.Y(), math.Max(1e-6, nh.Z())}.Normalize()
	return h
}
