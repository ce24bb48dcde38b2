package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const stlHeaderSize = 80

// STLSize returns the byte length of the binary STL encoding of m.
func STLSize(m *Mesh) int {
	return stlHeaderSize + 4 + 50*m.TriangleCount()
}

// WriteSTL encodes m as binary STL. Faces are written outward facing, with
// normals computed from the vertex order. name is stored in the header and
// truncated to 80 bytes.
func WriteSTL(w io.Writer, m *Mesh, name string) error {
	out := m.Outward()
	tris := out.Triangles()

	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("writing STL header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tris))); err != nil {
		return fmt.Errorf("writing STL triangle count: %w", err)
	}

	var rec [50]byte
	for _, t := range tris {
		a, b, c := out.Points[t[0]], out.Points[t[1]], out.Points[t[2]]
		n := normal(a, b, c)
		values := [12]float64{n.X, n.Y, n.Z, a.X, a.Y, a.Z, b.X, b.Y, b.Z, c.X, c.Y, c.Z}
		for i, v := range values {
			binary.LittleEndian.PutUint32(rec[i*4:], math.Float32bits(float32(v)))
		}
		// attribute byte count stays zero
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("writing STL facet: %w", err)
		}
	}

	return bw.Flush()
}

// WriteASCIISTL encodes m as ASCII STL, outward facing.
func WriteASCIISTL(w io.Writer, m *Mesh, name string) error {
	out := m.Outward()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range out.Triangles() {
		a, b, c := out.Points[t[0]], out.Points[t[1]], out.Points[t[2]]
		n := normal(a, b, c)
		fmt.Fprintf(bw, "facet normal %g %g %g\n", n.X, n.Y, n.Z)
		fmt.Fprintf(bw, "  outer loop\n")
		for _, p := range [3]Point{a, b, c} {
			fmt.Fprintf(bw, "    vertex %f %f %f\n", p.X, p.Y, p.Z)
		}
		fmt.Fprintf(bw, "  endloop\n")
		fmt.Fprintf(bw, "endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing ASCII STL: %w", err)
	}
	return nil
}

// normal returns the unit right-hand normal of triangle a, b, c, or the zero
// vector for a degenerate triangle.
func normal(a, b, c Point) Point {
	ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	vx, vy, vz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	n := Point{X: uy*vz - uz*vy, Y: uz*vx - ux*vz, Z: ux*vy - uy*vx}
	l := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if l == 0 {
		return Point{}
	}
	return Point{X: n.X / l, Y: n.Y / l, Z: n.Z / l}
}
