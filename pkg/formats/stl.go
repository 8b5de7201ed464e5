// Package formats provides parsers for 3D mesh file formats.
// STL (stereolithography) parser for triangle soups.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrInvalidSTLData   = errors.New("invalid STL data")
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal + 3 vertices + attribute byte count
	maxSTLTriangles = 50_000_000
)

// STLFormat is the encoding an STL file was stored in.
type STLFormat int

const (
	STLBinary STLFormat = iota
	STLASCII
)

// String returns a human-readable format name.
func (f STLFormat) String() string {
	switch f {
	case STLBinary:
		return "binary"
	case STLASCII:
		return "ascii"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// STLTriangle is a single facet.
type STLTriangle struct {
	Normal    [3]float32    // Facet normal as stored (often zero)
	Vertices  [3][3]float32 // Counter-clockwise seen from outside
	Attribute uint16        // Attribute byte count (binary only)
}

// STL represents a parsed STL file.
type STL struct {
	Format    STLFormat
	Header    string // Binary header or ASCII solid name
	Triangles []STLTriangle
}

// ParseSTL parses STL data from a byte slice, detecting binary or ASCII encoding.
func ParseSTL(data []byte) (*STL, error) {
	if isBinarySTL(data) {
		return parseBinarySTL(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		stl, err := parseASCIISTL(data)
		if (err != nil || len(stl.Triangles) == 0) && fitsBinarySTL(data) {
			// Binary with a "solid" header and trailing bytes.
			return parseBinarySTL(data)
		}
		return stl, err
	}
	if len(data) < stlHeaderSize+4 {
		return nil, ErrTruncatedSTLData
	}
	return parseBinarySTL(data)
}

// isBinarySTL checks the declared triangle count against the data length.
// Many binary exporters start the header with "solid", so the prefix alone
// is not enough to tell the encodings apart.
func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	return uint64(len(data)) == stlHeaderSize+4+uint64(count)*stlTriangleSize
}

// fitsBinarySTL reports whether data declares at least one triangle and
// holds all declared triangles.
func fitsBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	return count > 0 && count <= maxSTLTriangles && uint64(len(data)) >= stlHeaderSize+4+uint64(count)*stlTriangleSize
}

func parseBinarySTL(data []byte) (*STL, error) {
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	if count > maxSTLTriangles {
		return nil, fmt.Errorf("%w: triangle count %d", ErrInvalidSTLData, count)
	}
	need := stlHeaderSize + 4 + uint64(count)*stlTriangleSize
	if uint64(len(data)) < need {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedSTLData, need, len(data))
	}

	stl := &STL{
		Format:    STLBinary,
		Header:    strings.TrimRight(string(data[:stlHeaderSize]), "\x00 "),
		Triangles: make([]STLTriangle, count),
	}

	off := stlHeaderSize + 4
	for i := range stl.Triangles {
		tri := &stl.Triangles[i]
		tri.Normal = readVec(data[off:])
		for v := 0; v < 3; v++ {
			tri.Vertices[v] = readVec(data[off+12*(v+1):])
		}
		tri.Attribute = binary.LittleEndian.Uint16(data[off+48:])
		off += stlTriangleSize
	}

	return stl, nil
}

func readVec(b []byte) [3]float32 {
	return [3]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

func parseASCIISTL(data []byte) (*STL, error) {
	stl := &STL{Format: STLASCII}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		cur     STLTriangle
		inFacet bool
		nVerts  int
		line    int
	)

	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			stl.Header = strings.Join(fields[1:], " ")
		case "facet":
			if inFacet {
				return nil, fmt.Errorf("%w: line %d: nested facet", ErrInvalidSTLData, line)
			}
			inFacet, nVerts = true, 0
			cur = STLTriangle{}
			if len(fields) == 5 && fields[1] == "normal" {
				n, err := parseFloats(fields[2:])
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidSTLData, line, err)
				}
				cur.Normal = n
			}
		case "vertex":
			if !inFacet || nVerts >= 3 || len(fields) != 4 {
				return nil, fmt.Errorf("%w: line %d: unexpected vertex", ErrInvalidSTLData, line)
			}
			v, err := parseFloats(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidSTLData, line, err)
			}
			cur.Vertices[nVerts] = v
			nVerts++
		case "endfacet":
			if !inFacet || nVerts != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrInvalidSTLData, line, nVerts)
			}
			stl.Triangles = append(stl.Triangles, cur)
			inFacet = false
		case "outer", "endloop", "endsolid":
			// structural keywords carry no data
		default:
			return nil, fmt.Errorf("%w: line %d: unknown keyword %q", ErrInvalidSTLData, line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ASCII STL: %w", err)
	}
	if inFacet {
		return nil, ErrTruncatedSTLData
	}

	return stl, nil
}

func parseFloats(fields []string) ([3]float32, error) {
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// ParseSTLFile parses an STL file from disk.
func ParseSTLFile(path string) (*STL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return ParseSTL(data)
}
