// Package ply implements the PLY mesh loader named in spec §6: ASCII and
// little/big-endian binary formats, vertex positions with optional
// normals and uv, and triangular faces. Grounded on
// pkg/loaders/ply.go's header/body split, extended to cover ASCII bodies
// and big-endian binary, which that loader left as explicit
// "not yet implemented" errors.
package ply

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/shape"
)

type property struct {
	name       string
	dataType   string
	isList     bool
	listType   string
	dataType2  string // element type for list properties
}

type header struct {
	format      string // "ascii", "binary_little_endian", "binary_big_endian"
	vertexCount int
	faceCount   int
	vertexProps []property
	faceProps   []property
}

type propertyIndices struct {
	x, y, z    int
	nx, ny, nz int
	u, v       int
}

func (idx propertyIndices) hasNormal() bool { return idx.nx >= 0 && idx.ny >= 0 && idx.nz >= 0 }
func (idx propertyIndices) hasUV() bool     { return idx.u >= 0 && idx.v >= 0 }

// Load reads a PLY mesh from path and builds a *shape.TriangleMesh. A face
// with a vertex count other than 3 is a load-time error (spec §6).
func Load(path string) (*shape.TriangleMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ply: opening %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	h, err := parseHeader(r)
	if err != nil {
		return nil, fmt.Errorf("ply: parsing %s: %w", path, err)
	}

	var vertices []shape.Vertex
	var triangles []shape.Triangle
	switch h.format {
	case "ascii":
		vertices, triangles, err = readASCII(r, h)
	case "binary_little_endian":
		vertices, triangles, err = readBinary(r, h, binary.LittleEndian)
	case "binary_big_endian":
		vertices, triangles, err = readBinary(r, h, binary.BigEndian)
	default:
		return nil, fmt.Errorf("ply: unsupported format %q", h.format)
	}
	if err != nil {
		return nil, fmt.Errorf("ply: reading %s: %w", path, err)
	}

	smoothNormal := false
	for _, v := range vertices {
		if v.Normal != (pfmath.Normal3{}) {
			smoothNormal = true
			break
		}
	}

	hasUV := vertexIndices(h.vertexProps).hasUV()
	mesh, err := shape.NewTriangleMesh(vertices, triangles, smoothNormal, hasUV)
	if err != nil {
		return nil, fmt.Errorf("ply: %s: %w", path, err)
	}
	return mesh, nil
}

func parseHeader(r *bufio.Reader) (header, error) {
	h := header{}
	var current string

	line, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "ply" {
		return header{}, fmt.Errorf("missing \"ply\" magic number")
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return header{}, fmt.Errorf("unexpected EOF in header: %w", err)
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return header{}, fmt.Errorf("malformed format line")
			}
			h.format = fields[1]
		case "comment":
			// ignored
		case "element":
			if len(fields) < 3 {
				return header{}, fmt.Errorf("malformed element line")
			}
			current = fields[1]
			count, err := strconv.Atoi(fields[2])
			if err != nil {
				return header{}, fmt.Errorf("malformed element count %q: %w", fields[2], err)
			}
			switch current {
			case "vertex":
				h.vertexCount = count
			case "face":
				h.faceCount = count
			}
		case "property":
			p, err := parseProperty(fields[1:])
			if err != nil {
				return header{}, err
			}
			switch current {
			case "vertex":
				h.vertexProps = append(h.vertexProps, p)
			case "face":
				h.faceProps = append(h.faceProps, p)
			}
		case "end_header":
			return h, nil
		}
	}
}

func parseProperty(fields []string) (property, error) {
	if len(fields) < 2 {
		return property{}, fmt.Errorf("malformed property line")
	}
	if fields[0] == "list" {
		if len(fields) < 4 {
			return property{}, fmt.Errorf("malformed list property line")
		}
		return property{isList: true, listType: fields[1], dataType2: fields[2], name: fields[3]}, nil
	}
	return property{dataType: fields[0], name: fields[1]}, nil
}

func vertexIndices(props []property) propertyIndices {
	idx := propertyIndices{x: -1, y: -1, z: -1, nx: -1, ny: -1, nz: -1, u: -1, v: -1}
	for i, p := range props {
		switch p.name {
		case "x":
			idx.x = i
		case "y":
			idx.y = i
		case "z":
			idx.z = i
		case "nx":
			idx.nx = i
		case "ny":
			idx.ny = i
		case "nz":
			idx.nz = i
		case "u", "s", "texture_u":
			idx.u = i
		case "v", "t", "texture_v":
			idx.v = i
		}
	}
	return idx
}

func typeSize(t string) int {
	switch t {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 4
	}
}

func readScalar(order binary.ByteOrder, b []byte, t string) float64 {
	switch t {
	case "float", "float32":
		return float64(math.Float32frombits(order.Uint32(b)))
	case "double", "float64":
		return math.Float64frombits(order.Uint64(b))
	case "int", "int32":
		return float64(int32(order.Uint32(b)))
	case "uint", "uint32":
		return float64(order.Uint32(b))
	case "short", "int16":
		return float64(int16(order.Uint16(b)))
	case "ushort", "uint16":
		return float64(order.Uint16(b))
	case "char", "int8":
		return float64(int8(b[0]))
	case "uchar", "uint8":
		return float64(b[0])
	default:
		return 0
	}
}

func readInt(order binary.ByteOrder, b []byte, t string) int {
	switch t {
	case "uchar", "uint8", "char", "int8":
		return int(b[0])
	case "short", "int16", "ushort", "uint16":
		return int(order.Uint16(b))
	default:
		return int(order.Uint32(b))
	}
}

func readBinary(r *bufio.Reader, h header, order binary.ByteOrder) ([]shape.Vertex, []shape.Triangle, error) {
	idx := vertexIndices(h.vertexProps)
	vertices := make([]shape.Vertex, 0, h.vertexCount)

	for i := 0; i < h.vertexCount; i++ {
		values, err := readBinaryRecord(r, h.vertexProps, order)
		if err != nil {
			return nil, nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		vertices = append(vertices, vertexFromValues(values, idx))
	}

	triangles := make([]shape.Triangle, 0, h.faceCount)
	for i := 0; i < h.faceCount; i++ {
		tri, err := readBinaryFace(r, h.faceProps, order)
		if err != nil {
			return nil, nil, fmt.Errorf("face %d: %w", i, err)
		}
		triangles = append(triangles, tri)
	}
	return vertices, triangles, nil
}

func readBinaryRecord(r io.Reader, props []property, order binary.ByteOrder) ([]float64, error) {
	values := make([]float64, len(props))
	for i, p := range props {
		if p.isList {
			return nil, fmt.Errorf("unexpected list property %q in vertex record", p.name)
		}
		buf := make([]byte, typeSize(p.dataType))
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		values[i] = readScalar(order, buf, p.dataType)
	}
	return values, nil
}

func readBinaryFace(r io.Reader, props []property, order binary.ByteOrder) (shape.Triangle, error) {
	var tri shape.Triangle
	found := false

	for _, p := range props {
		if !p.isList {
			buf := make([]byte, typeSize(p.dataType))
			if _, err := io.ReadFull(r, buf); err != nil {
				return shape.Triangle{}, err
			}
			continue
		}

		countBuf := make([]byte, typeSize(p.listType))
		if _, err := io.ReadFull(r, countBuf); err != nil {
			return shape.Triangle{}, err
		}
		count := readInt(order, countBuf, p.listType)

		if p.name != "vertex_indices" && p.name != "vertex_index" {
			for j := 0; j < count; j++ {
				buf := make([]byte, typeSize(p.dataType2))
				if _, err := io.ReadFull(r, buf); err != nil {
					return shape.Triangle{}, err
				}
			}
			continue
		}

		if count != 3 {
			return shape.Triangle{}, fmt.Errorf("only triangular faces are supported, got %d vertex indices", count)
		}
		for j := 0; j < 3; j++ {
			buf := make([]byte, typeSize(p.dataType2))
			if _, err := io.ReadFull(r, buf); err != nil {
				return shape.Triangle{}, err
			}
			tri[j] = readInt(order, buf, p.dataType2)
		}
		found = true
	}

	if !found {
		return shape.Triangle{}, fmt.Errorf("face record has no vertex_indices list property")
	}
	return tri, nil
}

func readASCII(r *bufio.Reader, h header) ([]shape.Vertex, []shape.Triangle, error) {
	idx := vertexIndices(h.vertexProps)
	vertices := make([]shape.Vertex, 0, h.vertexCount)

	for i := 0; i < h.vertexCount; i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < len(h.vertexProps) {
			return nil, nil, fmt.Errorf("vertex %d: expected %d fields, got %d", i, len(h.vertexProps), len(fields))
		}
		values := make([]float64, len(h.vertexProps))
		for j := range h.vertexProps {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("vertex %d field %d: %w", i, j, err)
			}
			values[j] = v
		}
		vertices = append(vertices, vertexFromValues(values, idx))
	}

	triangles := make([]shape.Triangle, 0, h.faceCount)
	for i := 0; i < h.faceCount; i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, nil, fmt.Errorf("face %d: %w", i, err)
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			return nil, nil, fmt.Errorf("face %d: empty line", i)
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("face %d: malformed vertex count: %w", i, err)
		}
		if count != 3 {
			return nil, nil, fmt.Errorf("face %d: only triangular faces are supported, got %d vertex indices", i, count)
		}
		if len(fields) < 4 {
			return nil, nil, fmt.Errorf("face %d: expected 3 vertex indices", i)
		}
		var tri shape.Triangle
		for j := 0; j < 3; j++ {
			v, err := strconv.Atoi(fields[1+j])
			if err != nil {
				return nil, nil, fmt.Errorf("face %d index %d: %w", i, j, err)
			}
			tri[j] = v
		}
		triangles = append(triangles, tri)
	}
	return vertices, triangles, nil
}

func vertexFromValues(values []float64, idx propertyIndices) shape.Vertex {
	v := shape.Vertex{}
	if idx.x >= 0 && idx.y >= 0 && idx.z >= 0 {
		v.Position = pfmath.Point3{values[idx.x], values[idx.y], values[idx.z]}
	}
	if idx.hasNormal() {
		v.Normal = pfmath.Normal3{values[idx.nx], values[idx.ny], values[idx.nz]}
	}
	if idx.hasUV() {
		v.UV = [2]float64{values[idx.u], values[idx.v]}
	}
	return v
}
