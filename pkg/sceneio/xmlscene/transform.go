package xmlscene

import (
	"fmt"
	"math"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/go-gl/mathgl/mgl64"
)

// buildTransform composes a <transform> block's matrix|translate|scale|
// rotate|lookat children left-to-right, per spec §6's transform grammar.
func buildTransform(n node) (*pfmath.Transform, error) {
	t := pfmath.Identity()
	for _, child := range n.Children {
		var step pfmath.Transform
		var err error
		switch child.XMLName.Local {
		case "matrix":
			step, err = parseMatrix(child)
		case "translate":
			step, err = parseTranslate(child)
		case "scale":
			step, err = parseScale(child)
		case "rotate":
			step, err = parseRotate(child)
		case "lookat":
			step, err = parseLookAt(child)
		default:
			return nil, fmt.Errorf("xmlscene: unknown transform element %q", child.XMLName.Local)
		}
		if err != nil {
			return nil, err
		}
		t = t.Compose(step)
	}
	return &t, nil
}

func parseMatrix(n node) (pfmath.Transform, error) {
	v, ok := n.attr("value")
	if !ok {
		return pfmath.Transform{}, fmt.Errorf("xmlscene: <matrix> missing value attribute")
	}
	var m [16]float64
	floats, err := parseFloats(v)
	if err != nil {
		return pfmath.Transform{}, err
	}
	if len(floats) != 16 {
		return pfmath.Transform{}, fmt.Errorf("xmlscene: <matrix> expects 16 values, got %d", len(floats))
	}
	copy(m[:], floats)
	// Row-major input (the scene-file convention), mgl64.Mat4 is column-major.
	mat := mgl64.Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
	return pfmath.NewTransform(mat), nil
}

func parseTranslate(n node) (pfmath.Transform, error) {
	v, err := parseVec3Attrs(n)
	if err != nil {
		return pfmath.Transform{}, err
	}
	return pfmath.Translate(v), nil
}

func parseScale(n node) (pfmath.Transform, error) {
	if v, ok := n.attr("value"); ok {
		s, err := parseFloat(v)
		if err != nil {
			return pfmath.Transform{}, err
		}
		return pfmath.Scale(pfmath.Vec3{s, s, s}), nil
	}
	v, err := parseVec3Attrs(n)
	if err != nil {
		return pfmath.Transform{}, err
	}
	return pfmath.Scale(v), nil
}

func parseRotate(n node) (pfmath.Transform, error) {
	axis, err := parseVec3Attrs(n)
	if err != nil {
		return pfmath.Transform{}, err
	}
	angleStr, ok := n.attr("angle")
	if !ok {
		return pfmath.Transform{}, fmt.Errorf("xmlscene: <rotate> missing angle attribute")
	}
	angle, err := parseFloat(angleStr)
	if err != nil {
		return pfmath.Transform{}, err
	}
	return pfmath.RotateAxisAngle(axis, angle*math.Pi/180), nil
}

// parseLookAt builds a camera-space-to-world transform from origin/target/
// up, per spec §6's lookat transform; colinear origin-target-up is a
// scene-load error (spec §7).
func parseLookAt(n node) (pfmath.Transform, error) {
	origin, err := parseVec3Attr(n, "origin")
	if err != nil {
		return pfmath.Transform{}, err
	}
	target, err := parseVec3Attr(n, "target")
	if err != nil {
		return pfmath.Transform{}, err
	}
	up, err := parseVec3Attr(n, "up")
	if err != nil {
		return pfmath.Transform{}, err
	}

	forward := target.Sub(origin)
	if forward.Len() < pfmath.Epsilon {
		return pfmath.Transform{}, fmt.Errorf("xmlscene: <lookat> origin and target coincide")
	}
	forward = forward.Normalize()
	right := forward.Cross(up)
	if right.Len() < pfmath.Epsilon {
		return pfmath.Transform{}, fmt.Errorf("xmlscene: <lookat> origin/target/up are colinear")
	}
	right = right.Normalize()
	newUp := right.Cross(forward)

	m := mgl64.Mat4{
		right.X(), right.Y(), right.Z(), 0,
		newUp.X(), newUp.Y(), newUp.Z(), 0,
		forward.X(), forward.Y(), forward.Z(), 0,
		origin.X(), origin.Y(), origin.Z(), 1,
	}
	return pfmath.NewTransform(m), nil
}
