package integrator

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/scene"
)

// Normals returns (n+1)/2 on a hit, the background color otherwise, per
// spec §4.7.
type Normals struct{}

func (Normals) Li(ray pfmath.Ray, sc *scene.Scene, rng RNG) pfmath.RGB {
	its := sc.Intersect(ray)
	if !its.Hit {
		return sc.EvaluateBackground(ray.Direction)
	}
	n := its.Frame.Normal
	return pfmath.NewRGB((n.X()+1)/2, (n.Y()+1)/2, (n.Z()+1)/2)
}
