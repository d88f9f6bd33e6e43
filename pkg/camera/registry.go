package camera

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/registry"
)

func init() {
	registry.Register(registry.CategoryCamera, "perspective", func(props *registry.Properties) (any, error) {
		origin := props.Vector("origin", pfmath.Point3{})
		lookAt := props.Vector("lookAt", pfmath.Point3{0, 0, -1})
		up := props.Vector("up", pfmath.Vec3{0, 1, 0})
		fov := props.Float("fov", 40)
		aspect := props.Float("aspect", 1)
		return NewPerspective(origin, lookAt, up, fov, aspect), nil
	})
	registry.Register(registry.CategoryCamera, "thinlens", func(props *registry.Properties) (any, error) {
		origin := props.Vector("origin", pfmath.Point3{})
		lookAt := props.Vector("lookAt", pfmath.Point3{0, 0, -1})
		up := props.Vector("up", pfmath.Vec3{0, 1, 0})
		fov := props.Float("fov", 40)
		aspect := props.Float("aspect", 1)
		aperture := props.Float("aperture", 0)
		focusDistance := props.Float("focusDistance", 1)
		return NewThinLens(origin, lookAt, up, fov, aspect, aperture, focusDistance), nil
	})
}
