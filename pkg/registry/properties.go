// Package registry implements the "plugin table" design note from spec
// §9/§6: a single explicit map from category+type name to a constructor
// taking a parsed property bag, built once at program start and invoked by
// the scene parser. No dynamic symbol registration or reflection is used.
package registry

import (
	"fmt"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// Properties is the typed configuration bag spec §9 names as the
// replacement for the source's reflection-based Properties class: each
// typed Get* accessor marks the key as read, so Unqueried can report
// attributes the constructor never looked at (spec §6's "nodes report
// warnings for attributes... that were never queried").
type Properties struct {
	floats  map[string]float64
	ints    map[string]int
	bools   map[string]bool
	strings map[string]string
	colors  map[string]pfmath.RGB
	vectors map[string]pfmath.Vec3
	objects map[string]any // nested constructed children, e.g. a texture under "reflectance"
	queried map[string]bool
}

func NewProperties() *Properties {
	return &Properties{
		floats:  map[string]float64{},
		ints:    map[string]int{},
		bools:   map[string]bool{},
		strings: map[string]string{},
		colors:  map[string]pfmath.RGB{},
		vectors: map[string]pfmath.Vec3{},
		objects: map[string]any{},
		queried: map[string]bool{},
	}
}

func (p *Properties) SetFloat(name string, v float64)     { p.floats[name] = v }
func (p *Properties) SetInt(name string, v int)           { p.ints[name] = v }
func (p *Properties) SetBool(name string, v bool)         { p.bools[name] = v }
func (p *Properties) SetString(name string, v string)     { p.strings[name] = v }
func (p *Properties) SetColor(name string, v pfmath.RGB)  { p.colors[name] = v }
func (p *Properties) SetVector(name string, v pfmath.Vec3) { p.vectors[name] = v }

func (p *Properties) Float(name string, fallback float64) float64 {
	p.queried[name] = true
	if v, ok := p.floats[name]; ok {
		return v
	}
	return fallback
}

func (p *Properties) Int(name string, fallback int) int {
	p.queried[name] = true
	if v, ok := p.ints[name]; ok {
		return v
	}
	return fallback
}

func (p *Properties) Bool(name string, fallback bool) bool {
	p.queried[name] = true
	if v, ok := p.bools[name]; ok {
		return v
	}
	return fallback
}

func (p *Properties) String(name string, fallback string) string {
	p.queried[name] = true
	if v, ok := p.strings[name]; ok {
		return v
	}
	return fallback
}

func (p *Properties) Color(name string, fallback pfmath.RGB) pfmath.RGB {
	p.queried[name] = true
	if v, ok := p.colors[name]; ok {
		return v
	}
	return fallback
}

func (p *Properties) Vector(name string, fallback pfmath.Vec3) pfmath.Vec3 {
	p.queried[name] = true
	if v, ok := p.vectors[name]; ok {
		return v
	}
	return fallback
}

func (p *Properties) SetObject(name string, v any) { p.objects[name] = v }

// Object returns a nested constructed child (e.g. a texture parsed from a
// child element) and whether it was set.
func (p *Properties) Object(name string) (any, bool) {
	p.queried[name] = true
	v, ok := p.objects[name]
	return v, ok
}

// RequireFloat/RequireString etc. would duplicate the above with an error
// return; scene.xml's required attributes (e.g. the bitmap texture's
// "filename") are
// expected to call Float/String with a sentinel fallback and check it,
// the "malformed scene data" error tier of spec §7 — the caller, not
// Properties, decides what's required.

// Unqueried returns every attribute name set on p that no Get* accessor
// ever read, the "attribute never used" warning from spec §6/§9.
func (p *Properties) Unqueried() []string {
	var out []string
	all := func(m map[string]bool) {
		for name := range m {
			if !p.queried[name] {
				out = append(out, name)
			}
		}
	}
	seen := map[string]bool{}
	for name := range p.floats {
		seen[name] = true
	}
	for name := range p.ints {
		seen[name] = true
	}
	for name := range p.bools {
		seen[name] = true
	}
	for name := range p.strings {
		seen[name] = true
	}
	for name := range p.colors {
		seen[name] = true
	}
	for name := range p.vectors {
		seen[name] = true
	}
	for name := range p.objects {
		seen[name] = true
	}
	all(seen)
	return out
}

// Category groups constructors by the kind of object they build (spec
// §9's "category+name" key).
type Category string

const (
	CategoryShape   Category = "shape"
	CategoryBSDF    Category = "bsdf"
	CategoryLight   Category = "light"
	CategoryTexture Category = "texture"
	CategoryCamera  Category = "camera"
)

// Constructor builds one object of a category+type from its parsed
// property bag.
type Constructor func(props *Properties) (any, error)

var table = map[Category]map[string]Constructor{}

// Register adds a constructor to the plugin table; called from each
// shape/bsdf/light/texture/camera package's init(), per spec §9's
// "populated once at program start" rule.
func Register(cat Category, typeName string, ctor Constructor) {
	m := table[cat]
	if m == nil {
		m = map[string]Constructor{}
		table[cat] = m
	}
	if _, exists := m[typeName]; exists {
		panic(fmt.Sprintf("registry: %s/%s registered twice", cat, typeName))
	}
	m[typeName] = ctor
}

// Build looks up and invokes the constructor for cat/typeName, the scene
// parser's only entry point into the plugin table.
func Build(cat Category, typeName string, props *Properties) (any, error) {
	m, ok := table[cat]
	if !ok {
		return nil, fmt.Errorf("registry: unknown category %q", cat)
	}
	ctor, ok := m[typeName]
	if !ok {
		return nil, fmt.Errorf("registry: unknown type %q in category %q", typeName, cat)
	}
	return ctor(props)
}
