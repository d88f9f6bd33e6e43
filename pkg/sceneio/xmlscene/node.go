// Package xmlscene implements the XML-flavored scene description reader
// from spec §6: object tags mapped through the registry to a category and
// type, primitive tags carrying name/value, transform blocks, include,
// and ref. This is explicitly named as glue/out-of-scope in spec §1 — it
// exists only so the registry and the CLI have a real file to load; see
// DESIGN.md for why its XML parsing uses only encoding/xml.
package xmlscene

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// node is a generic XML element: any attribute, any nested element, in
// document order. encoding/xml supports this self-referential shape
// directly via the ",any" tag on both the attribute and element fields.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
	CharData string     `xml:",chardata"`
}

func (n node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n node) attrOr(name, fallback string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return fallback
}

// loadNode parses path and resolves <include filename="..."/> elements at
// any depth relative to path's directory, recursively, so a loaded tree
// never contains an include tag by the time the builder walks it (spec
// §6: "include filename=... for file inclusion").
func loadNode(path string) (node, error) {
	f, err := os.Open(path)
	if err != nil {
		return node{}, fmt.Errorf("xmlscene: opening %s: %w", path, err)
	}
	defer f.Close()

	root, err := decodeNode(f)
	if err != nil {
		return node{}, fmt.Errorf("xmlscene: parsing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	resolved, err := resolveIncludes(root, dir)
	if err != nil {
		return node{}, err
	}
	return resolved, nil
}

func decodeNode(r io.Reader) (node, error) {
	var n node
	if err := xml.NewDecoder(r).Decode(&n); err != nil {
		return node{}, err
	}
	return n, nil
}

// resolveIncludes replaces every <include filename="..."/> child (at any
// depth) with the root element of the included file, parsed relative to
// dir.
func resolveIncludes(n node, dir string) (node, error) {
	var out []node
	for _, child := range n.Children {
		if child.XMLName.Local == "include" {
			filename, ok := child.attr("filename")
			if !ok {
				return node{}, fmt.Errorf("xmlscene: <include> missing filename attribute")
			}
			included, err := loadNode(filepath.Join(dir, filename))
			if err != nil {
				return node{}, err
			}
			out = append(out, included)
			continue
		}
		resolvedChild, err := resolveIncludes(child, dir)
		if err != nil {
			return node{}, err
		}
		out = append(out, resolvedChild)
	}
	n.Children = out
	return n, nil
}
