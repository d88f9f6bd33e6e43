package pfmath

import "math"

// Frame is an orthonormal right-handed basis with Tangent x Bitangent ==
// Normal. BSDF and emission evaluation happen in the local frame where the
// normal is (0,0,1).
type Frame struct {
	Tangent, Bitangent, Normal Vec3
}

// FrameFromNormal builds an orthonormal frame around n using the
// Duff et al. branchless construction, stable even when n aligns with
// (0,0,1) or (0,0,-1) (the spec's requirement for the sphere's tangent
// rule generalizes to every shape that only has a normal to start from).
func FrameFromNormal(n Vec3) Frame {
	n = n.Normalize()
	sign := 1.0
	if n.Z() < 0 {
		sign = -1.0
	}
	a := -1 / (sign + n.Z())
	b := n.X() * n.Y() * a
	t := Vec3{1 + sign*n.X()*n.X()*a, sign * b, -sign * n.X()}
	bt := Vec3{b, sign + n.Y()*n.Y()*a, -n.Y()}
	return Frame{Tangent: t, Bitangent: bt, Normal: n}
}

func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.Tangent), v.Dot(f.Bitangent), v.Dot(f.Normal)}
}

func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.Tangent.Mul(v.X()).Add(f.Bitangent.Mul(v.Y())).Add(f.Normal.Mul(v.Z()))
}

// IsOrthonormal reports whether the frame's vectors are unit length and
// mutually orthogonal within tol, the invariant exercised directly by
// pkg/shape tests.
func (f Frame) IsOrthonormal(tol float64) bool {
	near1 := func(v Vec3) bool { return math.Abs(v.Len()-1) <= tol }
	if !near1(f.Tangent) || !near1(f.Bitangent) || !near1(f.Normal) {
		return false
	}
	if math.Abs(f.Tangent.Dot(f.Bitangent)) > tol {
		return false
	}
	if math.Abs(f.Tangent.Dot(f.Normal)) > tol {
		return false
	}
	if math.Abs(f.Bitangent.Dot(f.Normal)) > tol {
		return false
	}
	return f.Tangent.Cross(f.Bitangent).Dot(f.Normal) > 0
}

// CosTheta is the cosine of the angle between a local-frame direction and
// the frame's +z normal, i.e. simply the z component.
func CosTheta(wLocal Vec3) float64 { return wLocal.Z() }

func AbsCosTheta(wLocal Vec3) float64 { return math.Abs(wLocal.Z()) }

func SameHemisphere(a, b Vec3) bool { return a.Z()*b.Z() > 0 }
