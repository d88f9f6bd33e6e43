package pfmath

import "github.com/go-gl/mathgl/mgl64"

// Transform is an affine transform with its inverse and 3x3 determinant
// cached at construction, matching the spec's Instance contract (§4.3):
// "stored with its inverse M^-1 and the 3x3 determinant".
type Transform struct {
	M, MInv mgl64.Mat4
	Det3    float64
}

func NewTransform(m mgl64.Mat4) Transform {
	return Transform{M: m, MInv: m.Inv(), Det3: m.Mat3().Det()}
}

func Identity() Transform { return NewTransform(mgl64.Ident4()) }

func Translate(v Vec3) Transform {
	return NewTransform(mgl64.Translate3D(v.X(), v.Y(), v.Z()))
}

func Scale(v Vec3) Transform {
	return NewTransform(mgl64.Scale3D(v.X(), v.Y(), v.Z()))
}

func RotateAxisAngle(axis Vec3, radians float64) Transform {
	return NewTransform(mgl64.HomogRotate3D(radians, axis.Normalize()))
}

func (t Transform) Compose(o Transform) Transform {
	return NewTransform(t.M.Mul4(o.M))
}

func (t Transform) Inverse() Transform {
	return Transform{M: t.MInv, MInv: t.M, Det3: 1 / t.Det3}
}

// ApplyPoint transforms a point (w=1, perspective divide applied).
func (t Transform) ApplyPoint(p Point3) Point3 {
	v := t.M.Mul4x1(mgl64.Vec4{p.X(), p.Y(), p.Z(), 1})
	if v.W() == 1 || v.W() == 0 {
		return Point3{v.X(), v.Y(), v.Z()}
	}
	return Point3{v.X() / v.W(), v.Y() / v.W(), v.Z() / v.W()}
}

// ApplyVector transforms a direction (w=0), deliberately NOT renormalized —
// callers that need the scale factor (Instance ray transform) read the
// result's length themselves.
func (t Transform) ApplyVector(v Vec3) Vec3 {
	r := t.M.Mul4x1(mgl64.Vec4{v.X(), v.Y(), v.Z(), 0})
	return Vec3{r.X(), r.Y(), r.Z()}
}

// ApplyNormal transforms a normal by the inverse-transpose, the standard
// rule for preserving perpendicularity under non-uniform scale.
func (t Transform) ApplyNormal(n Vec3) Vec3 {
	it := t.MInv.Transpose()
	r := it.Mul4x1(mgl64.Vec4{n.X(), n.Y(), n.Z(), 0})
	return Vec3{r.X(), r.Y(), r.Z()}
}

func (t Transform) ApplyBounds(b Bounds3) Bounds3 {
	out := EmptyBounds()
	for _, c := range b.Corners() {
		out = out.ExtendPoint(t.ApplyPoint(c))
	}
	return out
}
