package xmlscene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("xmlscene: %q is not a number: %w", s, err)
	}
	return v, nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseVec3 parses a "x y z" space-separated triple, or a single scalar
// broadcast to all three components.
func parseVec3(s string) (pfmath.Vec3, error) {
	floats, err := parseFloats(s)
	if err != nil {
		return pfmath.Vec3{}, err
	}
	switch len(floats) {
	case 1:
		return pfmath.Vec3{floats[0], floats[0], floats[0]}, nil
	case 3:
		return pfmath.Vec3{floats[0], floats[1], floats[2]}, nil
	default:
		return pfmath.Vec3{}, fmt.Errorf("xmlscene: expected 1 or 3 components, got %d in %q", len(floats), s)
	}
}

// parseVec3Attrs reads a vector from either a single "value" attribute or
// separate x/y/z attributes, the two forms spec §6's <translate>/<scale>/
// <rotate> elements allow.
func parseVec3Attrs(n node) (pfmath.Vec3, error) {
	if v, ok := n.attr("value"); ok {
		return parseVec3(v)
	}
	x, xok := n.attr("x")
	y, yok := n.attr("y")
	z, zok := n.attr("z")
	if !xok && !yok && !zok {
		return pfmath.Vec3{}, fmt.Errorf("xmlscene: <%s> missing value/x/y/z attributes", n.XMLName.Local)
	}
	fx, err := parseFloat(firstNonEmpty(x, "0"))
	if err != nil {
		return pfmath.Vec3{}, err
	}
	fy, err := parseFloat(firstNonEmpty(y, "0"))
	if err != nil {
		return pfmath.Vec3{}, err
	}
	fz, err := parseFloat(firstNonEmpty(z, "0"))
	if err != nil {
		return pfmath.Vec3{}, err
	}
	return pfmath.Vec3{fx, fy, fz}, nil
}

func parseVec3Attr(n node, name string) (pfmath.Vec3, error) {
	v, ok := n.attr(name)
	if !ok {
		return pfmath.Vec3{}, fmt.Errorf("xmlscene: <%s> missing %q attribute", n.XMLName.Local, name)
	}
	return parseVec3(v)
}

func firstNonEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func parseColor(s string) (pfmath.RGB, error) {
	v, err := parseVec3(s)
	if err != nil {
		return pfmath.RGB{}, err
	}
	return pfmath.NewRGB(v.X(), v.Y(), v.Z()), nil
}
