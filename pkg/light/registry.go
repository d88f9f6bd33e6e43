package light

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/registry"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// Area is intentionally not registered here: it needs the Instance it
// wraps, which only exists once the scene graph around it has been built,
// so pkg/sceneio/xmlscene constructs it directly after building the owning
// Instance rather than going through the plugin table.
func init() {
	registry.Register(registry.CategoryLight, "point", func(props *registry.Properties) (any, error) {
		position := props.Vector("position", pfmath.Point3{})
		power := props.Color("power", pfmath.White)
		return NewPoint(position, power), nil
	})
	registry.Register(registry.CategoryLight, "directional", func(props *registry.Properties) (any, error) {
		direction := props.Vector("direction", pfmath.Vec3{0, -1, 0})
		irradiance := props.Color("irradiance", pfmath.White)
		return NewDirectional(direction, irradiance), nil
	})
	registry.Register(registry.CategoryLight, "envmap", func(props *registry.Properties) (any, error) {
		radiance := texture.AsTexture(props, "radiance", pfmath.White)
		return NewEnvironmentMap(radiance), nil
	})
}
