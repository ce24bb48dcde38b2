package mesh

import (
	"fmt"
	"slices"
)

// Point is a mesh vertex.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Orientation is the face winding convention of a mesh.
type Orientation string

const (
	// Inward faces have right-hand normals pointing into the solid.
	Inward Orientation = "inward"
	// Outward faces have right-hand normals pointing out of the solid.
	Outward Orientation = "outward"
)

// Mesh is an indexed polygon mesh. Faces are triangles (caps) or quads
// (walls) indexing into Points.
type Mesh struct {
	Points      []Point     `json:"points"`
	Faces       [][]int     `json:"faces"`
	Orientation Orientation `json:"orientation"`
}

// IsEmpty reports whether the mesh has no faces.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Faces) == 0
}

// VertexCount returns the number of points.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Points)
}

// TriangleCount returns the number of triangles after fanning every face.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	count := 0
	for _, f := range m.Faces {
		if len(f) >= 3 {
			count += len(f) - 2
		}
	}
	return count
}

// Triangles fans every face into triangles, keeping the face winding.
func (m *Mesh) Triangles() [][3]int {
	if m == nil {
		return nil
	}
	tris := make([][3]int, 0, m.TriangleCount())
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			tris = append(tris, [3]int{f[0], f[i], f[i+1]})
		}
	}
	return tris
}

// Flipped returns a copy of the mesh with every face reversed and the
// orientation toggled.
func (m *Mesh) Flipped() *Mesh {
	out := &Mesh{
		Points: slices.Clone(m.Points),
		Faces:  make([][]int, len(m.Faces)),
	}
	for i, f := range m.Faces {
		r := slices.Clone(f)
		slices.Reverse(r)
		out.Faces[i] = r
	}
	switch m.Orientation {
	case Outward:
		out.Orientation = Inward
	default:
		out.Orientation = Outward
	}
	return out
}

// Outward returns the mesh with outward facing faces. A mesh that is
// already outward is returned as is.
func (m *Mesh) Outward() *Mesh {
	if m.Orientation == Outward {
		return m
	}
	return m.Flipped()
}

// SignedVolume returns the volume enclosed by the mesh, positive for an
// outward mesh and negative for an inward one.
func (m *Mesh) SignedVolume() float64 {
	var sum float64
	for _, t := range m.Triangles() {
		a, b, c := m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
		sum += a.X*(b.Y*c.Z-b.Z*c.Y) - a.Y*(b.X*c.Z-b.Z*c.X) + a.Z*(b.X*c.Y-b.Y*c.X)
	}
	return sum / 6
}

type edge struct{ from, to int }

// Validate checks that every face index is in range and that every directed
// edge is matched by exactly one reversed edge, i.e. the mesh is a closed,
// consistently wound 2-manifold. An empty mesh is valid.
func (m *Mesh) Validate() error {
	if m.IsEmpty() {
		return nil
	}

	edges := make(map[edge]int)
	for fi, f := range m.Faces {
		if len(f) < 3 {
			return fmt.Errorf("%w: face %d has %d vertices", ErrNotManifold, fi, len(f))
		}
		for i, a := range f {
			b := f[(i+1)%len(f)]
			if a < 0 || a >= len(m.Points) {
				return fmt.Errorf("%w: face %d index %d out of range", ErrNotManifold, fi, a)
			}
			edges[edge{a, b}]++
		}
	}

	for e, count := range edges {
		if count != 1 {
			return fmt.Errorf("%w: edge %d->%d used %d times", ErrNotManifold, e.from, e.to, count)
		}
		if edges[edge{e.to, e.from}] != 1 {
			return fmt.Errorf("%w: edge %d->%d has no reverse", ErrNotManifold, e.from, e.to)
		}
	}
	return nil
}
