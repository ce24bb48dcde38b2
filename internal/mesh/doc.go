// Package mesh extrudes traced motif shapes into closed triangle meshes.
//
// A motif component arrives as one outline plus zero or more hole outlines
// (see package blockmap). Build merges the holes into the outline through
// bridge edges, ear-clips the resulting simple polygon, and extrudes it into
// a prism one unit high: bottom cap at z=0, top cap at z=1, and quad side
// walls for the outline and for every hole.
//
// # Winding
//
// Built meshes use the "inward" convention of the CAD collaborator that
// consumes them: caps and walls are wound so that their right-hand normals
// point into the solid. Outward returns the flipped mesh; the STL encoders
// always write outward facets.
//
// # Vertex Matching
//
// Triangulation output is matched back to the mesh's point list by exact
// coordinate equality. Outlines and holes are traced with different small
// offsets so that points of independently traced shapes never collide.
//
// # Output
//
// WriteSTL and WriteASCIISTL encode a mesh as binary or ASCII STL. Combine
// concatenates the meshes of disjoint components; it does not perform a
// boolean union.
package mesh
