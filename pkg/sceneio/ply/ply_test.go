package ply

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeBinaryQuad(t *testing.T, path string, order binary.ByteOrder, formatName string) {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("ply\n")
	buf.WriteString("format " + formatName + " 1.0\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	buf.WriteString("property float nx\n")
	buf.WriteString("property float ny\n")
	buf.WriteString("property float nz\n")
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	verts := [][6]float32{
		{0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 1},
		{1, 1, 0, 0, 0, 1},
		{0, 1, 0, 0, 0, 1},
	}
	for _, v := range verts {
		for _, f := range v {
			binary.Write(&buf, order, f)
		}
	}

	faces := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	for _, f := range faces {
		binary.Write(&buf, order, uint8(3))
		binary.Write(&buf, order, f[0])
		binary.Write(&buf, order, f[1])
		binary.Write(&buf, order, f[2])
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

func TestLoad_BinaryLittleEndianQuad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.ply")
	writeBinaryQuad(t, path, binary.LittleEndian, "binary_little_endian")

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(mesh.Vertices) != 4 {
		t.Errorf("got %d vertices, want 4", len(mesh.Vertices))
	}
	if len(mesh.Triangles) != 2 {
		t.Errorf("got %d triangles, want 2", len(mesh.Triangles))
	}
	if !mesh.SmoothNormal {
		t.Error("expected smooth normals to be detected from nx/ny/nz properties")
	}
}

func TestLoad_BinaryBigEndianQuad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.ply")
	writeBinaryQuad(t, path, binary.BigEndian, "binary_big_endian")

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(mesh.Triangles) != 2 {
		t.Errorf("got %d triangles, want 2", len(mesh.Triangles))
	}
}

func TestLoad_ASCIITriangle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.ply")
	contents := "ply\n" +
		"format ascii 1.0\n" +
		"element vertex 3\n" +
		"property float x\n" +
		"property float y\n" +
		"property float z\n" +
		"element face 1\n" +
		"property list uchar int vertex_indices\n" +
		"end_header\n" +
		"0 0 0\n" +
		"1 0 0\n" +
		"0 1 0\n" +
		"3 0 1 2\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(mesh.Vertices) != 3 || len(mesh.Triangles) != 1 {
		t.Fatalf("got %d vertices / %d triangles, want 3/1", len(mesh.Vertices), len(mesh.Triangles))
	}
	if mesh.SmoothNormal {
		t.Error("no normal properties were declared, SmoothNormal should be false")
	}
}

func TestLoad_NonTriangularFaceErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad-face.ply")
	contents := "ply\n" +
		"format ascii 1.0\n" +
		"element vertex 4\n" +
		"property float x\n" +
		"property float y\n" +
		"property float z\n" +
		"element face 1\n" +
		"property list uchar int vertex_indices\n" +
		"end_header\n" +
		"0 0 0\n1 0 0\n1 1 0\n0 1 0\n" +
		"4 0 1 2 3\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error loading a quad face")
	}
}
