package texture

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/registry"
)

func init() {
	registry.Register(registry.CategoryTexture, "constant", func(props *registry.Properties) (any, error) {
		return NewConstant(props.Color("color", pfmath.White)), nil
	})
	registry.Register(registry.CategoryTexture, "checkerboard", func(props *registry.Properties) (any, error) {
		odd := props.Color("odd", pfmath.Black)
		even := props.Color("even", pfmath.White)
		scaleU := props.Float("scaleU", 1)
		scaleV := props.Float("scaleV", 1)
		return NewCheckerboard(odd, even, scaleU, scaleV), nil
	})
}

// AsTexture resolves a property that may be a nested texture object or a
// plain color, defaulting to a Constant wrapping colorFallback when
// neither is present — the common case for a BSDF's "reflectance"/
// "roughness" attribute in scene XML (spec §6's grammar allows either a
// `color` primitive or a nested `texture` object under the same name).
func AsTexture(props *registry.Properties, name string, colorFallback pfmath.RGB) Texture {
	if obj, ok := props.Object(name); ok {
		if tex, ok := obj.(Texture); ok {
			return tex
		}
	}
	return NewConstant(props.Color(name, colorFallback))
}
