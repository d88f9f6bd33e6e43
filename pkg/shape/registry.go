package shape

import (
	"github.com/dlaurent/photonforge/pkg/registry"
)

func init() {
	registry.Register(registry.CategoryShape, "sphere", func(props *registry.Properties) (any, error) {
		return NewSphere(), nil
	})
	registry.Register(registry.CategoryShape, "rectangle", func(props *registry.Properties) (any, error) {
		return NewRectangle(), nil
	})
}
