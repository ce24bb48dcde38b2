package mesh

import "slices"

// Scale returns a copy of m with every point scaled per axis.
func (m *Mesh) Scale(sx, sy, sz float64) *Mesh {
	out := m.clone()
	for i := range out.Points {
		p := &out.Points[i]
		p.X *= sx
		p.Y *= sy
		p.Z *= sz
	}
	return out
}

// Translate returns a copy of m moved by (dx, dy, dz).
func (m *Mesh) Translate(dx, dy, dz float64) *Mesh {
	out := m.clone()
	for i := range out.Points {
		p := &out.Points[i]
		p.X += dx
		p.Y += dy
		p.Z += dz
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the points. ok is false
// for a mesh without points.
func (m *Mesh) Bounds() (lo, hi Point, ok bool) {
	if m == nil || len(m.Points) == 0 {
		return Point{}, Point{}, false
	}
	lo, hi = m.Points[0], m.Points[0]
	for _, p := range m.Points[1:] {
		lo = Point{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = Point{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi, true
}

// Combine concatenates meshes into one, re-indexing faces. The inputs are
// assumed disjoint; overlapping solids are not merged. Meshes wound against
// the first non-empty mesh are flipped to match. Nil and empty meshes are
// skipped.
func Combine(meshes ...*Mesh) *Mesh {
	out := &Mesh{Orientation: Inward}
	first := true
	for _, m := range meshes {
		if m.IsEmpty() {
			continue
		}
		if first {
			out.Orientation = m.Orientation
			first = false
		} else if m.Orientation != out.Orientation {
			m = m.Flipped()
		}

		base := len(out.Points)
		out.Points = append(out.Points, m.Points...)
		for _, f := range m.Faces {
			g := make([]int, len(f))
			for i, idx := range f {
				g[i] = idx + base
			}
			out.Faces = append(out.Faces, g)
		}
	}
	return out
}

func (m *Mesh) clone() *Mesh {
	out := &Mesh{
		Points:      slices.Clone(m.Points),
		Faces:       make([][]int, len(m.Faces)),
		Orientation: m.Orientation,
	}
	for i, f := range m.Faces {
		out.Faces[i] = slices.Clone(f)
	}
	return out
}
