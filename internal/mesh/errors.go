package mesh

import "errors"

var (
	// ErrTriangulate indicates ear clipping found no ear to remove.
	ErrTriangulate = errors.New("mesh: polygon cannot be triangulated")
	// ErrHoleBridge indicates no outline vertex is visible from a hole.
	ErrHoleBridge = errors.New("mesh: no bridge from hole to outline")
	// ErrUnmatchedVertex indicates a triangulated point is missing from the point list.
	ErrUnmatchedVertex = errors.New("mesh: triangulated vertex not in point list")
	// ErrNotManifold indicates a mesh edge is not shared by exactly two faces.
	ErrNotManifold = errors.New("mesh: mesh is not a closed 2-manifold")
)
