// Package light implements the light set from spec §4.5: Point,
// Directional, EnvironmentMap, and area-lights-from-shape. Grounded on
// pkg/lights/interfaces.go's LightSample/Light contract, narrowed to a
// simpler sampleDirect(origin, rng) -> {wi, weight, distance} contract
// (its BDPT-oriented SampleEmission/EmissionPDF methods are dropped —
// BDPT is an explicit spec non-goal).
package light

import (
	"math"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/shape"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// RNG is the uniform-sample source a light needs to draw a direction.
type RNG interface {
	Next1D() float64
	Next2D() (float64, float64)
}

// DirectSample is sampleDirect's result: weight = Le(-wi)/p(wi), distance
// is how far the shadow ray must reach (+Inf for directional/env), per
// spec §4.5.
type DirectSample struct {
	Wi       pfmath.Vec3
	Weight   pfmath.RGB
	Distance float64
	PDF      float64
}

func (s DirectSample) IsZero() bool { return s.Weight.IsBlack() }

func InvalidDirectSample() DirectSample { return DirectSample{} }

// Light is implemented by every light variant.
type Light interface {
	SampleDirect(origin pfmath.Point3, rng RNG) DirectSample
	// CanBeIntersected reports whether this light's radiance is already
	// found by an escaped-ray background lookup, in which case the
	// integrator must not also sample it via next-event estimation.
	// Only background lights return true (spec §4.5); area lights return
	// false even though their geometry can be hit directly — that case is
	// handled by adding emission unconditionally on every hit instead.
	CanBeIntersected() bool
}

// Point is a point light; weight = power/(4*pi*r^2), per spec §4.5.
type Point struct {
	Position pfmath.Point3
	Power    pfmath.RGB
}

func NewPoint(position pfmath.Point3, power pfmath.RGB) *Point {
	return &Point{Position: position, Power: power}
}

func (p *Point) CanBeIntersected() bool { return false }

func (p *Point) SampleDirect(origin pfmath.Point3, rng RNG) DirectSample {
	d := p.Position.Sub(origin)
	r2 := d.Dot(d)
	if r2 <= 0 {
		return InvalidDirectSample()
	}
	r := math.Sqrt(r2)
	wi := d.Mul(1 / r)
	weight := p.Power.Scale(1 / (4 * math.Pi * r2))
	return DirectSample{Wi: wi, Weight: weight, Distance: r, PDF: 1}
}

// Directional is a fixed-direction light at infinite distance.
type Directional struct {
	Direction   pfmath.Vec3 // direction the light travels; shadow rays travel along its negation
	Irradiance  pfmath.RGB
}

func NewDirectional(direction pfmath.Vec3, irradiance pfmath.RGB) *Directional {
	return &Directional{Direction: direction.Normalize(), Irradiance: irradiance}
}

func (d *Directional) CanBeIntersected() bool { return false }

func (d *Directional) SampleDirect(origin pfmath.Point3, rng RNG) DirectSample {
	wi := d.Direction.Mul(-1)
	return DirectSample{Wi: wi, Weight: d.Irradiance, Distance: math.Inf(1), PDF: 1}
}

// EnvironmentMap evaluates radiance via a spherical parameterization of
// the sampled direction. sampleDirect uses uniform-sphere sampling with
// weight = 4*pi*texture(direction), the resolved open question from spec
// §9 (importance sampling of texture luminance is optional and not
// implemented).
type EnvironmentMap struct {
	Radiance texture.Texture
	Rotation pfmath.Vec3 // unused placeholder for a future yaw/pitch knob
}

func NewEnvironmentMap(radiance texture.Texture) *EnvironmentMap {
	return &EnvironmentMap{Radiance: radiance}
}

func (e *EnvironmentMap) CanBeIntersected() bool { return true }

func (e *EnvironmentMap) SampleDirect(origin pfmath.Point3, rng RNG) DirectSample {
	u1, u2 := rng.Next2D()
	wi, pdf := pfmath.SampleUniformSphere(u1, u2)
	radiance := e.Radiance.Eval(directionToUV(wi))
	weight := radiance.Scale(4 * math.Pi)
	return DirectSample{Wi: wi, Weight: weight, Distance: math.Inf(1), PDF: pdf}
}

// Eval is used by the integrator when a ray escapes to the background
// without an intervening light sample.
func (e *EnvironmentMap) Eval(dir pfmath.Vec3) pfmath.RGB {
	return e.Radiance.Eval(directionToUV(dir))
}

func directionToUV(d pfmath.Vec3) [2]float64 {
	theta := math.Acos(pfmath.Clamp(d.Z(), -1, 1))
	phi := math.Atan2(d.Y(), d.X())
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return [2]float64{phi / (2 * math.Pi), theta / math.Pi}
}

// Area wraps a Sampleable shape's Instance as a light: radiance comes from
// the instance's Emission, and it can always be intersected directly
// (spec §4.5's "area-from-shape" and the Instance<->Light back-edge design
// note, §9).
type Area struct {
	Instance *shape.Instance
	Shape    shape.Sampleable
	Radiance texture.Texture
}

// NewArea attaches the light's back-pointer to inst exactly once, per the
// spec §3 construction-time-error rule.
func NewArea(inst *shape.Instance, s shape.Sampleable, radiance texture.Texture) (*Area, error) {
	a := &Area{Instance: inst, Shape: s, Radiance: radiance}
	if err := inst.AttachLight(a); err != nil {
		return nil, err
	}
	return a, nil
}

// CanBeIntersected is false: per spec §4.5 only background lights report
// true. An area light's geometry is still hit directly by ordinary rays,
// but that is handled by the integrator adding emission unconditionally
// on every hit rather than by this flag.
func (a *Area) CanBeIntersected() bool { return false }

func (a *Area) SampleDirect(origin pfmath.Point3, rng RNG) DirectSample {
	u1, u2 := rng.Next2D()
	point, normal, pdfArea := a.Shape.SampleArea(u1, u2)
	if a.Instance.Transform != nil {
		point = a.Instance.Transform.ApplyPoint(point)
		normal = a.Instance.Transform.ApplyNormal(normal).Normalize()
	}
	d := point.Sub(origin)
	dist2 := d.Dot(d)
	if dist2 <= 0 {
		return InvalidDirectSample()
	}
	dist := math.Sqrt(dist2)
	wi := d.Mul(1 / dist)
	cosLight := normal.Dot(wi.Mul(-1))
	if cosLight <= 0 {
		return InvalidDirectSample()
	}
	pdfSolidAngle := pdfArea * dist2 / cosLight
	if pdfSolidAngle <= 0 {
		return InvalidDirectSample()
	}
	radiance := a.Radiance.Eval([2]float64{0.5, 0.5})
	weight := radiance.Scale(1 / pdfSolidAngle)
	return DirectSample{Wi: wi, Weight: weight, Distance: dist, PDF: pdfSolidAngle}
}
