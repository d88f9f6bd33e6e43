package xmlscene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/registry"
	"github.com/dlaurent/photonforge/pkg/sceneio/image"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// buildContext tracks objects tagged with an id= attribute so later
// <ref id="..."/> elements can reuse them, per spec §6.
type buildContext struct {
	byID map[string]any
}

func newBuildContext() *buildContext { return &buildContext{byID: map[string]any{}} }

// builtObject is the result of walking one <object> element: the
// constructed value plus its own <transform> child (nil if absent), which
// the caller applies rather than the registry constructor itself.
type builtObject struct {
	Value     any
	Transform *pfmath.Transform
	Props     *registry.Properties
}

// buildObject constructs one <object> element: its primitive/nested-
// object children become a Properties bag, then registry.Build invokes
// the matching category+type constructor (spec §6: "object tags mapped
// through the registry to a category+type").
func (ctx *buildContext) buildObject(n node) (builtObject, error) {
	category, ok := n.attr("category")
	if !ok {
		return builtObject{}, fmt.Errorf("xmlscene: <object> at %v missing category attribute", n.XMLName)
	}
	typeName, ok := n.attr("type")
	if !ok {
		return builtObject{}, fmt.Errorf("xmlscene: <object category=%q> missing type attribute", category)
	}

	props := registry.NewProperties()
	var transform *pfmath.Transform

	for _, child := range n.Children {
		switch child.XMLName.Local {
		case "transform":
			t, err := buildTransform(child)
			if err != nil {
				return builtObject{}, err
			}
			transform = t
		case "float", "int", "bool", "string", "color", "vector":
			if err := ctx.applyPrimitive(props, child); err != nil {
				return builtObject{}, err
			}
		case "object":
			nested, err := ctx.buildObject(child)
			if err != nil {
				return builtObject{}, err
			}
			name, ok := child.attr("name")
			if !ok {
				return builtObject{}, fmt.Errorf("xmlscene: nested <object> inside %q missing name attribute", typeName)
			}
			props.SetObject(name, nested.Value)
			if id, ok := child.attr("id"); ok {
				ctx.byID[id] = nested.Value
			}
		case "ref":
			id, ok := child.attr("id")
			if !ok {
				return builtObject{}, fmt.Errorf("xmlscene: <ref> missing id attribute")
			}
			name, ok := child.attr("name")
			if !ok {
				return builtObject{}, fmt.Errorf("xmlscene: <ref id=%q> missing name attribute", id)
			}
			v, ok := ctx.byID[id]
			if !ok {
				return builtObject{}, fmt.Errorf("xmlscene: <ref id=%q> refers to an unknown id", id)
			}
			props.SetObject(name, v)
		default:
			return builtObject{}, fmt.Errorf("xmlscene: unexpected element %q inside <object type=%q>", child.XMLName.Local, typeName)
		}
	}

	// The bitmap texture loads image data from a file; this needs
	// pkg/sceneio/image, which itself needs pkg/texture.NewImage, so it
	// cannot also sit behind pkg/texture's own registry without an
	// import cycle (the same reason light.Area bypasses the registry).
	// xmlscene is the one caller allowed to depend on both, so it builds
	// this one type directly instead of going through registry.Build.
	if category == "texture" && typeName == "bitmap" {
		tex, err := buildBitmapTexture(props)
		if err != nil {
			return builtObject{}, &SceneError{Category: category, Type: typeName, Err: err}
		}
		return builtObject{Value: tex, Transform: transform, Props: props}, nil
	}

	value, err := registry.Build(registry.Category(category), typeName, props)
	if err != nil {
		return builtObject{}, &SceneError{Category: category, Type: typeName, Err: err}
	}

	return builtObject{Value: value, Transform: transform, Props: props}, nil
}

// buildBitmapTexture loads the file named by the "filename" property,
// picking EXR or LDR decoding by extension, and honors an optional
// "linear" flag that skips the inverse-sRGB decode LDR files otherwise
// get (spec §6's texture-declared-linear rule).
func buildBitmapTexture(props *registry.Properties) (any, error) {
	filename := props.String("filename", "")
	if filename == "" {
		return nil, fmt.Errorf("<object category=\"texture\" type=\"bitmap\"> missing filename attribute")
	}

	if strings.EqualFold(filepath.Ext(filename), ".exr") {
		width, height, pixels, err := image.LoadEXR(filename)
		if err != nil {
			return nil, err
		}
		return texture.NewImage(width, height, pixels), nil
	}

	linear := props.Bool("linear", false)
	return image.LoadLDR(filename, linear)
}

func (ctx *buildContext) applyPrimitive(props *registry.Properties, n node) error {
	name, ok := n.attr("name")
	if !ok {
		return fmt.Errorf("xmlscene: <%s> missing name attribute", n.XMLName.Local)
	}
	value, ok := n.attr("value")
	if !ok {
		return fmt.Errorf("xmlscene: <%s name=%q> missing value attribute", n.XMLName.Local, name)
	}

	switch n.XMLName.Local {
	case "float":
		v, err := parseFloat(value)
		if err != nil {
			return err
		}
		props.SetFloat(name, v)
	case "int":
		var v int
		if _, err := fmt.Sscanf(value, "%d", &v); err != nil {
			return fmt.Errorf("xmlscene: <int name=%q> value %q is not an integer: %w", name, value, err)
		}
		props.SetInt(name, v)
	case "bool":
		props.SetBool(name, value == "true")
	case "string":
		props.SetString(name, value)
	case "color":
		c, err := parseColor(value)
		if err != nil {
			return err
		}
		props.SetColor(name, c)
	case "vector":
		v, err := parseVec3(value)
		if err != nil {
			return err
		}
		props.SetVector(name, v)
	}
	return nil
}
