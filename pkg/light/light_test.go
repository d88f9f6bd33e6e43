package light

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/shape"
	"github.com/dlaurent/photonforge/pkg/texture"
)

type goRNG struct{ r *rand.Rand }

func (g goRNG) Next1D() float64            { return g.r.Float64() }
func (g goRNG) Next2D() (float64, float64) { return g.r.Float64(), g.r.Float64() }

func TestPoint_SampleDirectFallsOffWithSquaredDistance(t *testing.T) {
	p := NewPoint(pfmath.Point3{0, 0, 0}, pfmath.RGB{R: 1, G: 1, B: 1})

	near := p.SampleDirect(pfmath.Point3{1, 0, 0}, goRNG{rand.New(rand.NewSource(1))})
	far := p.SampleDirect(pfmath.Point3{2, 0, 0}, goRNG{rand.New(rand.NewSource(1))})

	if near.Weight.R <= far.Weight.R {
		t.Errorf("expected the nearer sample to be brighter: near=%v far=%v", near.Weight.R, far.Weight.R)
	}
	if math.Abs(near.Distance-1) > 1e-9 {
		t.Errorf("distance = %v, want 1", near.Distance)
	}
}

func TestPoint_SampleDirectAtOriginIsInvalid(t *testing.T) {
	p := NewPoint(pfmath.Point3{0, 0, 0}, pfmath.RGB{R: 1})
	s := p.SampleDirect(pfmath.Point3{0, 0, 0}, goRNG{rand.New(rand.NewSource(1))})
	if !s.IsZero() {
		t.Error("sampling a point light from its own position should be invalid")
	}
}

func TestPoint_CanBeIntersectedIsFalse(t *testing.T) {
	p := NewPoint(pfmath.Point3{}, pfmath.RGB{})
	if p.CanBeIntersected() {
		t.Error("point lights are not part of the geometry and cannot be hit by a ray")
	}
}

func TestDirectional_SampleDirectPointsOppositeTravelDirection(t *testing.T) {
	d := NewDirectional(pfmath.Vec3{0, -1, 0}, pfmath.RGB{R: 2, G: 2, B: 2})
	s := d.SampleDirect(pfmath.Point3{}, goRNG{rand.New(rand.NewSource(1))})
	want := pfmath.Vec3{0, 1, 0}
	if s.Wi.Sub(want).Len() > 1e-9 {
		t.Errorf("Wi = %v, want %v", s.Wi, want)
	}
	if !math.IsInf(s.Distance, 1) {
		t.Errorf("directional lights should report infinite distance, got %v", s.Distance)
	}
}

func TestEnvironmentMap_EvalMatchesConstantTexture(t *testing.T) {
	env := NewEnvironmentMap(texture.NewConstant(pfmath.RGB{R: 0.5, G: 0.25, B: 0.1}))
	c := env.Eval(pfmath.Vec3{0, 0, 1})
	if c != (pfmath.RGB{R: 0.5, G: 0.25, B: 0.1}) {
		t.Errorf("got %v", c)
	}
}

func TestEnvironmentMap_CanBeIntersectedIsTrue(t *testing.T) {
	env := NewEnvironmentMap(texture.NewConstant(pfmath.Black))
	if !env.CanBeIntersected() {
		t.Error("environment maps are hit by escaping rays and must not also be sampled twice")
	}
}

func TestArea_SampleDirectFacesAwayFromLightIsInvalid(t *testing.T) {
	inst := shape.NewInstance(shape.NewSphere(), nil)
	area, err := NewArea(inst, shape.NewSphere(), texture.NewConstant(pfmath.RGB{R: 1, G: 1, B: 1}))
	if err != nil {
		t.Fatalf("NewArea: %v", err)
	}

	// Querying from the sphere's own center: any sampled point's outward
	// normal points away from the origin, so cosLight <= 0 and the
	// direct sample must come back invalid for every random draw the
	// SampleArea stub might return. We only assert it never panics and,
	// when non-invalid, has a positive pdf.
	s := area.SampleDirect(pfmath.Point3{0, 0, 0}, goRNG{rand.New(rand.NewSource(7))})
	if !s.IsZero() && s.PDF <= 0 {
		t.Errorf("a non-invalid sample must have a positive pdf, got %v", s.PDF)
	}
}

func TestArea_CanBeIntersectedIsFalse(t *testing.T) {
	inst := shape.NewInstance(shape.NewSphere(), nil)
	area, err := NewArea(inst, shape.NewSphere(), texture.NewConstant(pfmath.Black))
	if err != nil {
		t.Fatalf("NewArea: %v", err)
	}
	if area.CanBeIntersected() {
		t.Error("only background lights report CanBeIntersected() == true; area lights are sampled via next-event estimation")
	}
}

func TestNewArea_AttachesLightToInstanceOnce(t *testing.T) {
	inst := shape.NewInstance(shape.NewSphere(), nil)
	if _, err := NewArea(inst, shape.NewSphere(), texture.NewConstant(pfmath.Black)); err != nil {
		t.Fatalf("first NewArea: %v", err)
	}
	if _, err := NewArea(inst, shape.NewSphere(), texture.NewConstant(pfmath.Black)); err == nil {
		t.Error("attaching a second light to the same instance should fail")
	}
}
