package motif

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
	"github.com/ironsheep/stamp-motif-mcp/internal/imaging"
	"github.com/ironsheep/stamp-motif-mcp/internal/mesh"
)

// Component is one connected chunk of a clipped grid together with its
// traced outline and hole outlines.
type Component struct {
	Cells      blockmap.Chunk   `json:"-"`
	Holes      []blockmap.Chunk `json:"-"`
	Shape      blockmap.Shape   `json:"shape"`
	HoleShapes []blockmap.Shape `json:"holes"`
}

// CellCount returns the number of on-cells in the component.
func (c Component) CellCount() int {
	return len(c.Cells)
}

// Stats summarises a generated motif.
type Stats struct {
	Cells      int     `json:"cells"`
	Components int     `json:"components"`
	Holes      int     `json:"holes"`
	Vertices   int     `json:"vertices"`
	Triangles  int     `json:"triangles"`
	Volume     float64 `json:"volume"`
}

// Result holds every intermediate of one generation.
type Result struct {
	HeightMap  *imaging.HeightMap
	Grid       *blockmap.Grid
	Components []Component
	// Mesh is the scaled, centred solid. It is empty when the grid has no
	// on-cells.
	Mesh  *mesh.Mesh
	Stats Stats
}

// Empty reports whether the result carries no motif.
func (r *Result) Empty() bool {
	return r == nil || r.Mesh.IsEmpty()
}

func polygonize(grid *blockmap.Grid, chunk blockmap.Chunk, outerOffset, holeOffset float64) (Component, error) {
	shape, err := blockmap.Trace(chunk, outerOffset)
	if err != nil {
		return Component{}, fmt.Errorf("tracing outline: %w", err)
	}
	c := Component{Cells: chunk, Shape: shape}
	var cells map[blockmap.Cell]struct{}
	for i, hole := range blockmap.Holes(chunk) {
		offset := holeOffset
		if offset >= outerOffset {
			if cells == nil {
				cells = chunk.Set()
			}
			if cornerTouch(grid, cells, hole) {
				offset = outerOffset / 2
			}
		}
		hs, err := blockmap.Trace(hole, offset)
		if err != nil {
			return Component{}, fmt.Errorf("tracing hole %d: %w", i, err)
		}
		c.Holes = append(c.Holes, hole)
		c.HoleShapes = append(c.HoleShapes, hs)
	}
	return c, nil
}

var diagonals = [4]blockmap.Cell{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}}

// cornerTouch reports whether an on-cell inside hole touches the chunk at a
// corner. Such a cell belongs to a nested component whose outline would
// overlap the hole wall unless the hole is traced tighter than the outline.
func cornerTouch(grid *blockmap.Grid, cells map[blockmap.Cell]struct{}, hole blockmap.Chunk) bool {
	for _, h := range hole {
		if grid.At(h.X, h.Y) == 0 {
			continue
		}
		for _, d := range diagonals {
			if _, ok := cells[blockmap.Cell{X: h.X + d.X, Y: h.Y + d.Y}]; ok {
				return true
			}
		}
	}
	return false
}

// Polygonize labels the grid, groups it into chunks and traces each
// chunk's outline and holes. Components are returned in label order.
//
// Holes are traced with holeOffset, except a hole holding a component that
// touches the surrounding chunk at a corner: it is traced at half of
// outerOffset so the two solids do not overlap.
func Polygonize(grid *blockmap.Grid, outerOffset, holeOffset float64) ([]Component, error) {
	if grid == nil {
		return nil, nil
	}
	var out []Component
	for i, chunk := range blockmap.Group(blockmap.Label(grid), grid.Width) {
		if len(chunk) == 0 {
			continue
		}
		c, err := polygonize(grid, chunk, outerOffset, holeOffset)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// BuildMeshes extrudes every component into a unit-height solid in grid
// coordinates.
func BuildMeshes(components []Component) ([]*mesh.Mesh, error) {
	meshes := make([]*mesh.Mesh, 0, len(components))
	for i, c := range components {
		m, err := mesh.Build(c.Shape, c.HoleShapes)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// Generate samples img, clips it and builds the motif solid.
//
// The solid spans Size[0] x Size[1] centred on the origin in X and Y and
// sits between Size[2]/2 and 3*Size[2]/2 in Z. A result whose Mesh is
// empty means the image produced no motif.
func Generate(ctx context.Context, img image.Image, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	hm, err := imaging.SampleHeightMap(img, opts.HeightMapOptions())
	if err != nil {
		return nil, fmt.Errorf("sampling height map: %w", err)
	}
	Logger().Debug("height map sampled",
		"width", hm.Width, "length", hm.Length, "channel", opts.Channel,
		"elapsed", time.Since(start))

	grid, err := imaging.Clip(hm, opts.ClipBottom, opts.ClipTop)
	if err != nil {
		return nil, err
	}

	res, err := generate(ctx, grid, opts)
	if err != nil {
		return nil, err
	}
	res.HeightMap = hm
	return res, nil
}

// GenerateFromGrid builds the motif solid from an already clipped grid.
func GenerateFromGrid(ctx context.Context, grid *blockmap.Grid, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return generate(ctx, grid, opts)
}

func generate(ctx context.Context, grid *blockmap.Grid, opts Options) (*Result, error) {
	if grid == nil {
		grid = &blockmap.Grid{}
	}
	res := &Result{Grid: grid, Mesh: &mesh.Mesh{Orientation: mesh.Inward}}
	res.Stats.Cells = grid.Count()

	start := time.Now()
	labels := blockmap.Label(grid)
	chunks := blockmap.Group(labels, grid.Width)
	Logger().Debug("grid labelled",
		"width", grid.Width, "height", grid.Height,
		"cells", res.Stats.Cells, "chunks", len(chunks),
		"elapsed", time.Since(start))

	meshes := make([]*mesh.Mesh, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(chunk) == 0 {
			continue
		}
		c, err := polygonize(grid, chunk, opts.OuterOffset, opts.HoleOffset)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		m, err := mesh.Build(c.Shape, c.HoleShapes)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		res.Components = append(res.Components, c)
		res.Stats.Holes += len(c.HoleShapes)
		meshes = append(meshes, m)
	}
	res.Stats.Components = len(res.Components)

	if len(meshes) == 0 || grid.Width == 0 || grid.Height == 0 {
		Logger().Debug("empty motif")
		return res, nil
	}

	width, depth, height := opts.Size[0], opts.Size[1], opts.Size[2]
	res.Mesh = mesh.Combine(meshes...).
		Scale(width/float64(grid.Width), depth/float64(grid.Height), height).
		Translate(-width/2, -depth/2, height/2)

	res.Stats.Vertices = res.Mesh.VertexCount()
	res.Stats.Triangles = res.Mesh.TriangleCount()
	res.Stats.Volume = res.Mesh.Outward().SignedVolume()

	Logger().Debug("motif built",
		"components", res.Stats.Components, "holes", res.Stats.Holes,
		"vertices", res.Stats.Vertices, "triangles", res.Stats.Triangles,
		"elapsed", time.Since(start))
	return res, nil
}
