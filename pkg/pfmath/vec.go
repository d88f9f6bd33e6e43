// Package pfmath provides the fixed-size vector, matrix, bounds, ray, and
// color types shared by every other package. Vector and matrix algebra is
// built on mathgl's Vec3/Mat4 rather than reimplemented by hand.
package pfmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a direction or generic 3-vector. Point3 and Normal3 are aliases
// of the same type: the names document intent at call sites, but the
// compiler does not tell them apart.
type Vec3 = mgl64.Vec3

type Point3 = mgl64.Vec3

type Normal3 = mgl64.Vec3

// RGB is a tristimulus color; no spectral rendering is in scope.
type RGB struct {
	R, G, B float64
}

func NewRGB(r, g, b float64) RGB { return RGB{r, g, b} }

func (c RGB) Add(o RGB) RGB      { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c RGB) Sub(o RGB) RGB      { return RGB{c.R - o.R, c.G - o.G, c.B - o.B} }
func (c RGB) Mul(o RGB) RGB      { return RGB{c.R * o.R, c.G * o.G, c.B * o.B} }
func (c RGB) Scale(s float64) RGB { return RGB{c.R * s, c.G * s, c.B * s} }
func (c RGB) Div(s float64) RGB  { return c.Scale(1 / s) }
func (c RGB) IsBlack() bool      { return c.R == 0 && c.G == 0 && c.B == 0 }

func (c RGB) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func (c RGB) IsFinite() bool {
	return !math.IsNaN(c.R) && !math.IsNaN(c.G) && !math.IsNaN(c.B) &&
		!math.IsInf(c.R, 0) && !math.IsInf(c.G, 0) && !math.IsInf(c.B, 0)
}

func (c RGB) Max() float64 { return math.Max(c.R, math.Max(c.G, c.B)) }

// Clamp01 returns c with each channel clamped to [0,1].
func (c RGB) Clamp01() RGB {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return RGB{clamp(c.R), clamp(c.G), clamp(c.B)}
}

// GammaCorrect applies the standard 2.0-gamma display encode used by the
// preview/output path (not the inverse-sRGB decode used for LDR textures).
func (c RGB) GammaCorrect() RGB {
	return RGB{math.Sqrt(math.Max(0, c.R)), math.Sqrt(math.Max(0, c.G)), math.Sqrt(math.Max(0, c.B))}
}

var Black = RGB{}
var White = RGB{1, 1, 1}

// Reflect mirrors wo (pointing away from the surface) about n, returning a
// direction on the same side of the surface as wo.
func Reflect(wo, n Vec3) Vec3 {
	return n.Mul(2 * wo.Dot(n)).Sub(wo)
}

// Refract bends wi (pointing away from the surface, like wo) through a
// surface with relative index of refraction eta = etaT/etaI. ok is false on
// total internal reflection.
func Refract(wi, n Vec3, eta float64) (wt Vec3, ok bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt = wi.Mul(-1 / eta).Add(n.Mul(cosThetaI/eta - cosThetaT))
	return wt, true
}

func Lerp(t float64, a, b Vec3) Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func LerpF(t, a, b float64) float64 { return a + t*(b-a) }

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
