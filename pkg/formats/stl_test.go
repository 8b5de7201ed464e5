package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// makeBinarySTL builds a binary STL with the given header and triangles.
func makeBinarySTL(header string, tris ...[3][3]float32) []byte {
	var buf bytes.Buffer
	h := make([]byte, 80)
	copy(h, header)
	buf.Write(h)
	binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	for _, tri := range tris {
		binary.Write(&buf, binary.LittleEndian, [3]float32{}) // normal
		binary.Write(&buf, binary.LittleEndian, tri)
		binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

var unitTriangle = [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

const asciiTriangle = `solid part
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid part
`

func TestParseSTL_Binary(t *testing.T) {
	data := makeBinarySTL("exporter", unitTriangle, unitTriangle)

	stl, err := ParseSTL(data)
	if err != nil {
		t.Fatalf("ParseSTL() error = %v", err)
	}
	if stl.Format != STLBinary {
		t.Errorf("format = %v, want binary", stl.Format)
	}
	if stl.Header != "exporter" {
		t.Errorf("header = %q, want %q", stl.Header, "exporter")
	}
	if len(stl.Triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(stl.Triangles))
	}
	if stl.Triangles[1].Vertices != unitTriangle {
		t.Errorf("vertices = %v, want %v", stl.Triangles[1].Vertices, unitTriangle)
	}
}

func TestParseSTL_BinaryWithSolidHeader(t *testing.T) {
	// Binary files whose header starts with "solid" must not be read as ASCII.
	data := makeBinarySTL("solid exported by cad", unitTriangle)

	stl, err := ParseSTL(data)
	if err != nil {
		t.Fatalf("ParseSTL() error = %v", err)
	}
	if stl.Format != STLBinary {
		t.Errorf("format = %v, want binary", stl.Format)
	}
	if len(stl.Triangles) != 1 {
		t.Errorf("got %d triangles, want 1", len(stl.Triangles))
	}
}

func TestParseSTL_BinaryWithSolidHeaderAndTrailingBytes(t *testing.T) {
	data := makeBinarySTL("solid exported by cad", unitTriangle, unitTriangle)
	data = append(data, make([]byte, 16)...)

	stl, err := ParseSTL(data)
	if err != nil {
		t.Fatalf("ParseSTL() error = %v", err)
	}
	if stl.Format != STLBinary {
		t.Errorf("format = %v, want binary", stl.Format)
	}
	if len(stl.Triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(stl.Triangles))
	}
	if stl.Triangles[1].Vertices != unitTriangle {
		t.Errorf("vertices = %v, want %v", stl.Triangles[1].Vertices, unitTriangle)
	}
}

func TestParseSTL_LargeDeclaredCount(t *testing.T) {
	// Declared count at the cap: the required length exceeds 32-bit int range.
	data := makeBinarySTL("x")
	binary.LittleEndian.PutUint32(data[80:], maxSTLTriangles)

	_, err := ParseSTL(data)
	if !errors.Is(err, ErrTruncatedSTLData) {
		t.Errorf("ParseSTL() error = %v, want %v", err, ErrTruncatedSTLData)
	}

	binary.LittleEndian.PutUint32(data[80:], maxSTLTriangles+1)
	_, err = ParseSTL(data)
	if !errors.Is(err, ErrInvalidSTLData) {
		t.Errorf("ParseSTL() error = %v, want %v", err, ErrInvalidSTLData)
	}
}

func TestParseSTL_ASCII(t *testing.T) {
	stl, err := ParseSTL([]byte(asciiTriangle))
	if err != nil {
		t.Fatalf("ParseSTL() error = %v", err)
	}
	if stl.Format != STLASCII {
		t.Errorf("format = %v, want ascii", stl.Format)
	}
	if stl.Header != "part" {
		t.Errorf("header = %q, want %q", stl.Header, "part")
	}
	if len(stl.Triangles) != 1 {
		t.Fatalf("got %d triangles, want 1", len(stl.Triangles))
	}
	if stl.Triangles[0].Vertices != unitTriangle {
		t.Errorf("vertices = %v, want %v", stl.Triangles[0].Vertices, unitTriangle)
	}
	if stl.Triangles[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("normal = %v, want [0 0 1]", stl.Triangles[0].Normal)
	}
}

func TestParseSTL_Errors(t *testing.T) {
	truncated := makeBinarySTL("x", unitTriangle, unitTriangle)
	truncated = truncated[:len(truncated)-10]

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty data", []byte{}, ErrTruncatedSTLData},
		{"short header", make([]byte, 40), ErrTruncatedSTLData},
		{"truncated triangles", truncated, ErrTruncatedSTLData},
		{"ascii bad number", []byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex a b c\n"), ErrInvalidSTLData},
		{"ascii too few vertices", []byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nendloop\nendfacet\n"), ErrInvalidSTLData},
		{"ascii unterminated facet", []byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\n"), ErrTruncatedSTLData},
		{"ascii unknown keyword", []byte("solid x\nbogus\n"), ErrInvalidSTLData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSTL(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseSTL() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteBinarySTL(t *testing.T) {
	in := &STL{
		Header: "round trip",
		Triangles: []STLTriangle{
			{Vertices: unitTriangle, Attribute: 7},
		},
	}

	var buf bytes.Buffer
	if err := WriteBinarySTL(&buf, in); err != nil {
		t.Fatalf("WriteBinarySTL() error = %v", err)
	}
	if buf.Len() != 84+50 {
		t.Fatalf("encoded length = %d, want %d", buf.Len(), 84+50)
	}

	out, err := ParseSTL(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseSTL() error = %v", err)
	}
	if out.Header != in.Header || out.Triangles[0] != in.Triangles[0] {
		t.Errorf("decoded %+v, want %+v", out, in)
	}
}

func TestParseSTLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stl")
	if err := os.WriteFile(path, []byte(asciiTriangle), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	stl, err := ParseSTLFile(path)
	if err != nil {
		t.Fatalf("ParseSTLFile() error = %v", err)
	}
	if len(stl.Triangles) != 1 {
		t.Errorf("got %d triangles, want 1", len(stl.Triangles))
	}

	if _, err := ParseSTLFile(filepath.Join(t.TempDir(), "missing.stl")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestSTLFormat_String(t *testing.T) {
	tests := []struct {
		format STLFormat
		want   string
	}{
		{STLBinary, "binary"},
		{STLASCII, "ascii"},
		{STLFormat(9), "Unknown(9)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.format.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
