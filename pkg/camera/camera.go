// Package camera implements the perspective and thin-lens camera models
// named in spec §2/§4.6: map pixel -> world-space ray. Grounded on
// pkg/renderer/camera.go's lower-left-corner/horizontal/vertical basis,
// generalized from its fixed 16:9/viewport-2.0 camera to a configurable
// field-of-view + aspect ratio, and extended with the thin-lens
// depth-of-field model it lacks (grounded on
// original_source/src/cameras/{perspective,thinlens}.cpp).
package camera

import (
	"math"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// RNG is the sample source a camera needs to jitter a pixel and, for
// thin-lens, sample the aperture.
type RNG interface {
	Next2D() (float64, float64)
}

// Camera maps an image coordinate normalized to [0,1] on each axis (and a
// lens sample, unused by Perspective) to a world-space ray.
type Camera interface {
	GenerateRay(pixelX, pixelY float64, rng RNG) pfmath.Ray
}

// basis is the shared origin/lower-left/horizontal/vertical viewport
// construction both camera variants build on.
type basis struct {
	origin                                     pfmath.Point3
	lowerLeft, horizontal, vertical            pfmath.Vec3
	forward, right, up                         pfmath.Vec3
}

func newBasis(origin, lookAt, up pfmath.Vec3, vfovDegrees, aspect float64) basis {
	theta := vfovDegrees * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	viewportWidth := aspect * viewportHeight

	w := origin.Sub(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Mul(viewportWidth)
	vertical := v.Mul(viewportHeight)
	lowerLeft := origin.Sub(horizontal.Mul(0.5)).Sub(vertical.Mul(0.5)).Sub(w)

	return basis{
		origin: origin, lowerLeft: lowerLeft, horizontal: horizontal, vertical: vertical,
		forward: w.Mul(-1), right: u, up: v,
	}
}

func (b basis) pointOnViewport(s, t float64) pfmath.Point3 {
	return b.lowerLeft.Add(b.horizontal.Mul(s)).Add(b.vertical.Mul(t))
}

// Perspective is a pinhole camera: every ray originates at a single point.
type Perspective struct {
	basis
}

// NewPerspective builds a pinhole camera. vfovDegrees is the vertical
// field of view; aspect is width/height.
func NewPerspective(origin, lookAt, up pfmath.Vec3, vfovDegrees, aspect float64) *Perspective {
	return &Perspective{basis: newBasis(origin, lookAt, up, vfovDegrees, aspect)}
}

func (c *Perspective) GenerateRay(s, t float64, rng RNG) pfmath.Ray {
	target := c.pointOnViewport(s, t)
	return pfmath.NewRay(c.origin, target.Sub(c.origin).Normalize())
}

// ThinLens adds a finite aperture and focus distance for depth of field:
// rays originate from a point sampled on a disk of radius LensRadius and
// are aimed through the same pinhole target scaled to the focus plane.
type ThinLens struct {
	basis
	LensRadius   float64
	FocusDistance float64
}

func NewThinLens(origin, lookAt, up pfmath.Vec3, vfovDegrees, aspect, aperture, focusDistance float64) *ThinLens {
	b := newBasis(origin, lookAt, up, vfovDegrees, aspect)
	// Re-derive the viewport at the focus plane instead of unit distance,
	// matching the thin-lens camera's focus-distance scaling.
	b.horizontal = b.horizontal.Mul(focusDistance)
	b.vertical = b.vertical.Mul(focusDistance)
	b.lowerLeft = origin.Sub(b.horizontal.Mul(0.5)).Sub(b.vertical.Mul(0.5)).Sub(b.forward.Mul(-focusDistance))
	return &ThinLens{basis: b, LensRadius: aperture / 2, FocusDistance: focusDistance}
}

func (c *ThinLens) GenerateRay(s, t float64, rng RNG) pfmath.Ray {
	u1, u2 := rng.Next2D()
	lx, ly := sampleUnitDisk(u1, u2)
	lensOffset := c.right.Mul(lx * c.LensRadius).Add(c.up.Mul(ly * c.LensRadius))
	origin := c.origin.Add(lensOffset)
	target := c.pointOnViewport(s, t)
	return pfmath.NewRay(origin, target.Sub(origin).Normalize())
}

func sampleUnitDisk(u1, u2 float64) (x, y float64) {
	r := math.Sqrt(u1)
	theta := 2 * math.Pi * u2
	return r * math.Cos(theta), r * math.Sin(theta)
}
