package bsdf

import (
	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/registry"
	"github.com/dlaurent/photonforge/pkg/texture"
)

func init() {
	registry.Register(registry.CategoryBSDF, "diffuse", func(props *registry.Properties) (any, error) {
		reflectance := texture.AsTexture(props, "reflectance", pfmath.NewRGB(0.5, 0.5, 0.5))
		return NewDiffuse(reflectance), nil
	})
	registry.Register(registry.CategoryBSDF, "dielectric", func(props *registry.Properties) (any, error) {
		return NewDielectric(props.Float("ior", 1.5)), nil
	})
	registry.Register(registry.CategoryBSDF, "roughconductor", func(props *registry.Properties) (any, error) {
		reflectance := texture.AsTexture(props, "reflectance", pfmath.NewRGB(0.9, 0.9, 0.9))
		roughness := texture.AsTexture(props, "roughness", pfmath.NewRGB(0.1, 0.1, 0.1))
		return NewRoughConductor(reflectance, roughness), nil
	})
	registry.Register(registry.CategoryBSDF, "roughdielectric", func(props *registry.Properties) (any, error) {
		roughness := texture.AsTexture(props, "roughness", pfmath.NewRGB(0.1, 0.1, 0.1))
		return NewRoughDielectric(props.Float("ior", 1.5), roughness), nil
	})
	registry.Register(registry.CategoryBSDF, "principled", func(props *registry.Properties) (any, error) {
		baseColor := texture.AsTexture(props, "baseColor", pfmath.NewRGB(0.8, 0.8, 0.8))
		metallic := texture.AsTexture(props, "metallic", pfmath.Black)
		roughness := texture.AsTexture(props, "roughness", pfmath.NewRGB(0.5, 0.5, 0.5))
		return NewPrincipled(baseColor, metallic, roughness, props.Float("specular", 0)), nil
	})
}
