package pfmath

// Ray is a parametric line origin + t*direction. Direction is expected
// unit-length for user-facing rays; rays transformed through an Instance
// may be non-unit (see pkg/shape.Instance).
type Ray struct {
	Origin    Point3
	Direction Vec3
	Depth     int
}

func NewRay(origin Point3, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

func (r Ray) At(t float64) Point3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Epsilon is the minimum valid intersection distance and the slab-test /
// self-intersection-avoidance tolerance used throughout the accel and
// shape packages.
const Epsilon = 1e-5
