package mesh

import (
	"fmt"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
)

// pointKey identifies a mesh point by exact coordinates and cap.
type pointKey struct {
	x, y float64
	top  bool
}

// Build extrudes one traced outline and its traced holes into a closed
// prism between z=0 and z=1.
//
// The point list holds the outline's bottom ring, then its top ring, then a
// bottom and top ring per hole, all in traced order. Faces are emitted as
// outline walls, hole walls, bottom cap and top cap. The caps come from one
// triangulation of the outline with the holes bridged in; the top cap
// reuses it with reversed winding.
//
// Parameters:
//   - shape: outline as returned by blockmap.Trace (positive orientation).
//   - holes: hole outlines, also as returned by blockmap.Trace. They are
//     reversed internally before bridging.
//
// Returns:
//   - *Mesh: inward wound mesh; empty when shape is empty.
//   - error: ErrHoleBridge, ErrTriangulate or ErrUnmatchedVertex.
func Build(shape blockmap.Shape, holes []blockmap.Shape) (*Mesh, error) {
	m := &Mesh{Orientation: Inward}
	if len(shape) == 0 {
		return m, nil
	}

	rings := make([]blockmap.Shape, 0, len(holes)+1)
	rings = append(rings, shape)
	reversed := make([]blockmap.Shape, 0, len(holes))
	for _, h := range holes {
		if len(h) == 0 {
			continue
		}
		rings = append(rings, h)
		reversed = append(reversed, h.Reversed())
	}

	index := make(map[pointKey]int)
	offsets := make([]int, len(rings))
	for r, ring := range rings {
		offsets[r] = len(m.Points)
		for _, top := range []bool{false, true} {
			z := 0.0
			if top {
				z = 1
			}
			for _, v := range ring {
				key := pointKey{v.X, v.Y, top}
				if _, ok := index[key]; !ok {
					index[key] = len(m.Points)
				}
				m.Points = append(m.Points, Point{X: v.X, Y: v.Y, Z: z})
			}
		}
	}

	n := len(shape)
	for i := range n {
		j := (i + 1) % n
		m.Faces = append(m.Faces, []int{i, i + n, j + n, j})
	}
	for r := 1; r < len(rings); r++ {
		o, k := offsets[r], len(rings[r])
		for i := range k {
			j := (i + 1) % k
			m.Faces = append(m.Faces, []int{j + o, j + k + o, i + k + o, i + o})
		}
	}

	merged, err := RemoveHoles(shape, reversed)
	if err != nil {
		return nil, fmt.Errorf("bridging holes: %w", err)
	}
	triangles, err := Triangulate(merged)
	if err != nil {
		return nil, fmt.Errorf("triangulating %d vertices: %w", len(merged), err)
	}

	bottom := make([][]int, 0, len(triangles))
	top := make([][]int, 0, len(triangles))
	for _, t := range triangles {
		var b, u [3]int
		for c, v := range t {
			bi, ok := index[pointKey{v.X, v.Y, false}]
			if !ok {
				return nil, fmt.Errorf("%w: (%g,%g)", ErrUnmatchedVertex, v.X, v.Y)
			}
			ti := index[pointKey{v.X, v.Y, true}]
			b[c], u[2-c] = bi, ti
		}
		bottom = append(bottom, b[:])
		top = append(top, u[:])
	}
	m.Faces = append(m.Faces, bottom...)
	m.Faces = append(m.Faces, top...)

	return m, nil
}
