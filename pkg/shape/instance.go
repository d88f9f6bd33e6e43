package shape

import (
	"fmt"

	"github.com/dlaurent/photonforge/pkg/bsdf"
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// Light is implemented by pkg/light.Area; Instance holds a non-owning
// back-pointer to the Light that wraps it, set at most once during scene
// construction (spec §3's Instance↔Light back-edge, §9's design note).
type Light interface {
	CanBeIntersected() bool
}

// NormalMap samples a tangent-space normal perturbation at a uv, decoded
// to [-1,1]^3 by the caller (spec §4.3's normal-map frame transform).
type NormalMap interface {
	Sample(uv [2]float64) pfmath.Vec3
}

// Instance wraps one shape with an optional affine transform, BSDF,
// emission, normal map, and a flipNormal bit, per spec §3 and §4.3.
type Instance struct {
	Shape     Shape
	Transform *pfmath.Transform // nil means no transform work is performed
	BSDF      bsdf.BSDF
	Emission  texture.Texture
	NormalMap NormalMap
	Visible   bool

	flipNormal bool
	light      Light
}

func NewInstance(s Shape, transform *pfmath.Transform) *Instance {
	inst := &Instance{Shape: s, Transform: transform, Visible: true}
	if transform != nil {
		inst.flipNormal = transform.Det3 < 0
	}
	return inst
}

// AttachLight sets the instance's back-pointer to the Light that wraps it.
// Per spec §3, a second call is a construction-time error.
func (inst *Instance) AttachLight(l Light) error {
	if inst.light != nil {
		return fmt.Errorf("instance already has an owning light attached")
	}
	inst.light = l
	return nil
}

func (inst *Instance) OwningLight() Light { return inst.light }

// Intersect pushes the ray through M^-1 without renormalizing the local
// direction, scales its.T by the retained length s before recursing into
// the wrapped shape, and scales back by 1/s on return — the non-
// renormalized-ray contract from spec §4.3 that lets shape/BVH code stay
// oblivious to instance scale.
func (inst *Instance) Intersect(ray pfmath.Ray, its *Intersection) bool {
	if !inst.Visible {
		return false
	}
	if inst.Transform == nil {
		if !inst.Shape.Intersect(ray, its) {
			return false
		}
		its.Instance = inst
		return true
	}

	localOrigin := inst.Transform.Inverse().ApplyPoint(ray.Origin)
	localDir := inst.Transform.Inverse().ApplyVector(ray.Direction)
	s := localDir.Len()

	localRay := pfmath.Ray{Origin: localOrigin, Direction: localDir, Depth: ray.Depth}
	localT := its.T * s
	localIts := NewMiss(localT)
	localIts.Stats = its.Stats

	if !inst.Shape.Intersect(localRay, &localIts) {
		its.Stats = localIts.Stats
		return false
	}

	its.Stats = localIts.Stats
	its.T = localIts.T / s
	its.UV = localIts.UV
	its.PDFArea = localIts.PDFArea
	its.Instance = inst
	its.Position = inst.Transform.ApplyPoint(localIts.Position)
	its.Frame = inst.transformFrame(localIts)
	its.Hit = true
	return true
}

// transformFrame implements spec §4.3's frame-transform rule: transformed
// tangent/bitangent (renormalized), normal = tangent x bitangent, a
// normal-map override when present, and the flipNormal negation.
func (inst *Instance) transformFrame(localIts Intersection) pfmath.Frame {
	f := localIts.Frame
	tangent := inst.Transform.ApplyVector(f.Tangent).Normalize()
	bitangent := inst.Transform.ApplyVector(f.Bitangent).Normalize()

	if inst.NormalMap != nil {
		enc := inst.NormalMap.Sample(localIts.UV)
		mapped := pfmath.Vec3{enc.X()*2 - 1, enc.Y()*2 - 1, enc.Z()*2 - 1}
		worldN := f.Tangent.Mul(mapped.X()).Add(f.Bitangent.Mul(mapped.Y())).Add(f.Normal.Mul(mapped.Z())).Normalize()
		normal := inst.Transform.ApplyNormal(worldN).Normalize()
		newFrame := pfmath.FrameFromNormal(normal)
		if inst.flipNormal {
			newFrame.Bitangent = newFrame.Bitangent.Mul(-1)
			newFrame.Normal = newFrame.Tangent.Cross(newFrame.Bitangent)
		}
		return newFrame
	}

	normal := tangent.Cross(bitangent)
	if inst.flipNormal {
		bitangent = bitangent.Mul(-1)
		normal = tangent.Cross(bitangent)
	}
	return pfmath.Frame{Tangent: tangent, Bitangent: bitangent, Normal: normal}
}

func (inst *Instance) Bounds() pfmath.Bounds3 {
	b := inst.Shape.Bounds()
	if inst.Transform == nil {
		return b
	}
	return inst.Transform.ApplyBounds(b)
}

func (inst *Instance) Centroid() pfmath.Point3 {
	c := inst.Shape.Centroid()
	if inst.Transform == nil {
		return c
	}
	return inst.Transform.ApplyPoint(c)
}
