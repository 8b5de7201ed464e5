package formats

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteBinarySTL encodes stl in the binary STL layout.
func WriteBinarySTL(w io.Writer, stl *STL) error {
	buf := make([]byte, stlHeaderSize+4, stlHeaderSize+4+len(stl.Triangles)*stlTriangleSize)
	copy(buf[:stlHeaderSize], stl.Header)
	binary.LittleEndian.PutUint32(buf[stlHeaderSize:], uint32(len(stl.Triangles)))

	var rec [stlTriangleSize]byte
	for _, tri := range stl.Triangles {
		putVec(rec[0:], tri.Normal)
		for v := 0; v < 3; v++ {
			putVec(rec[12*(v+1):], tri.Vertices[v])
		}
		binary.LittleEndian.PutUint16(rec[48:], tri.Attribute)
		buf = append(buf, rec[:]...)
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing binary STL: %w", err)
	}
	return nil
}

func putVec(b []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v[2]))
}
