package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
	"github.com/ironsheep/stamp-motif-mcp/internal/imaging"
	"github.com/ironsheep/stamp-motif-mcp/internal/mesh"
	"github.com/ironsheep/stamp-motif-mcp/internal/motif"
	"github.com/ironsheep/stamp-motif-mcp/internal/ocr"
	"github.com/ironsheep/stamp-motif-mcp/internal/preview"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "motif_load", "motif_mesh").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ErrNoMotif is returned by tools that need a solid when the clipped image
// has no on-cells.
var ErrNoMotif = errors.New("image produced no motif; check channel and clip settings")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(s.ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads and samples the image through the cache
//  4. Calls the appropriate blockmap/mesh/motif/preview/ocr function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Source Image
	case "motif_load":
		return s.handleMotifLoad(args)
	case "motif_heightmap":
		return s.handleMotifHeightmap(args)

	// Binary Mask
	case "motif_mask":
		return s.handleMotifMask(args)

	// Geometry
	case "motif_polygonize":
		return s.handleMotifPolygonize(args)
	case "motif_mesh":
		return s.handleMotifMesh(ctx, args)
	case "motif_export_stl":
		return s.handleMotifExportSTL(ctx, args)

	// Verification
	case "motif_preview":
		return s.handleMotifPreview(args)
	case "motif_legibility":
		return s.handleMotifLegibility(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared Argument Handling ===

// sourceArgs select the image region and how it is sampled.
type sourceArgs struct {
	Path       string  `json:"path"`
	Region     string  `json:"region"`
	Crop       []int   `json:"crop"`
	Channel    string  `json:"channel"`
	MaxSize    []int   `json:"max_size"`
	BlurRadius float64 `json:"blur_radius"`
}

// motifArgs add clip thresholds and the physical size. Clip values are
// pointers because zero is a meaningful threshold.
type motifArgs struct {
	sourceArgs
	ClipBottom *float64  `json:"clip_bottom"`
	ClipTop    *float64  `json:"clip_top"`
	Size       []float64 `json:"size"`
}

// options merges the arguments over motif.DefaultOptions and validates
// the result.
func (a motifArgs) options() (motif.Options, error) {
	opts := motif.DefaultOptions()
	if err := a.sourceArgs.apply(&opts); err != nil {
		return opts, err
	}
	if a.ClipBottom != nil {
		opts.ClipBottom = *a.ClipBottom
	}
	if a.ClipTop != nil {
		opts.ClipTop = *a.ClipTop
	}
	if a.Size != nil {
		if len(a.Size) != 3 {
			return opts, fmt.Errorf("size must have 3 values, got %d", len(a.Size))
		}
		copy(opts.Size[:], a.Size)
	}
	return opts, opts.Validate()
}

func (a sourceArgs) apply(opts *motif.Options) error {
	if a.Channel != "" {
		ch, err := imaging.ParseChannel(a.Channel)
		if err != nil {
			return err
		}
		opts.Channel = ch
	}
	if a.MaxSize != nil {
		if len(a.MaxSize) != 2 {
			return fmt.Errorf("max_size must have 2 values, got %d", len(a.MaxSize))
		}
		copy(opts.MaxSize[:], a.MaxSize)
	}
	opts.BlurRadius = a.BlurRadius
	return nil
}

// loadSource loads the image through the cache and cuts out the requested
// region.
func (s *Server) loadSource(a sourceArgs) (image.Image, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	if a.Crop != nil {
		if len(a.Crop) != 4 {
			return nil, fmt.Errorf("crop must have 4 values, got %d", len(a.Crop))
		}
		return imaging.CropRegion(img, a.Crop[0], a.Crop[1], a.Crop[2], a.Crop[3])
	}

	if a.Region == "" || a.Region == "full" {
		return img, nil
	}
	r, err := imaging.NamedRegion(img.Bounds(), a.Region)
	if err != nil {
		return nil, err
	}
	return imaging.CropRegion(img, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// sampleGrid loads, samples and clips the motif grid.
func (s *Server) sampleGrid(a motifArgs) (*imaging.HeightMap, *blockmap.Grid, motif.Options, error) {
	opts, err := a.options()
	if err != nil {
		return nil, nil, opts, err
	}
	img, err := s.loadSource(a.sourceArgs)
	if err != nil {
		return nil, nil, opts, err
	}
	hm, err := imaging.SampleHeightMap(img, opts.HeightMapOptions())
	if err != nil {
		return nil, nil, opts, err
	}
	grid, err := imaging.Clip(hm, opts.ClipBottom, opts.ClipTop)
	if err != nil {
		return nil, nil, opts, err
	}
	return hm, grid, opts, nil
}

// generate builds the motif solid through the dispatcher so that a newer
// request under the same key cancels this one.
func (s *Server) generate(ctx context.Context, key string, a motifArgs) (*motif.Result, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	img, err := s.loadSource(a.sourceArgs)
	if err != nil {
		return nil, err
	}
	if key == "" {
		key = "default"
	}
	return s.jobs.Run(ctx, key, func(ctx context.Context) (*motif.Result, error) {
		return motif.Generate(ctx, img, opts)
	})
}

// === Source Image Handlers ===

type motifLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleMotifLoad(args json.RawMessage) (interface{}, error) {
	var a motifLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// Height bands reported by motif_heightmap.
const (
	heightBandWidth = 16
	heightBandCount = 8
)

type motifHeightmapArgs struct {
	sourceArgs
	CutAt *float64 `json:"cut_at"`
}

// HeightmapResult describes a sampled height map.
type HeightmapResult struct {
	Width   int                   `json:"width"`
	Length  int                   `json:"length"`
	Channel imaging.Channel       `json:"channel"`
	Min     uint8                 `json:"min"`
	Max     uint8                 `json:"max"`
	Mean    float64               `json:"mean"`
	Levels  *imaging.LevelsResult `json:"levels"`
	Image   *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleMotifHeightmap(args json.RawMessage) (interface{}, error) {
	var a motifHeightmapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := motif.DefaultOptions()
	if err := a.sourceArgs.apply(&opts); err != nil {
		return nil, err
	}
	img, err := s.loadSource(a.sourceArgs)
	if err != nil {
		return nil, err
	}
	hm, err := imaging.SampleHeightMap(img, opts.HeightMapOptions())
	if err != nil {
		return nil, err
	}

	result := &HeightmapResult{
		Width:   hm.Width,
		Length:  hm.Length,
		Channel: opts.Channel,
		Min:     255,
		Levels:  imaging.HeightLevels(hm, heightBandWidth, heightBandCount),
	}
	var sum int
	for _, v := range hm.Data {
		result.Min = min(result.Min, v)
		result.Max = max(result.Max, v)
		sum += int(v)
	}
	if len(hm.Data) > 0 {
		result.Mean = float64(sum) / float64(len(hm.Data))
	}

	var out image.Image = hm.Gray()
	if a.CutAt != nil {
		out, err = imaging.CutPreview(hm, *a.CutAt, *a.CutAt)
		if err != nil {
			return nil, err
		}
	}
	if result.Image, err = imaging.EncodePNG(out); err != nil {
		return nil, err
	}
	return result, nil
}

// === Binary Mask Handlers ===

type motifMaskArgs struct {
	motifArgs
	Scale float64 `json:"scale"`
}

// MaskResult describes a clipped motif grid.
type MaskResult struct {
	Width    int                   `json:"width"`
	Height   int                   `json:"height"`
	OnCells  int                   `json:"on_cells"`
	Coverage float64               `json:"coverage"`
	CutLevel int                   `json:"cut_level"`
	Image    *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleMotifMask(args json.RawMessage) (interface{}, error) {
	var a motifMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, grid, opts, err := s.sampleGrid(a.motifArgs)
	if err != nil {
		return nil, err
	}

	img, err := preview.RenderMask(grid, preview.Options{Scale: a.Scale})
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	result := &MaskResult{
		Width:    grid.Width,
		Height:   grid.Height,
		OnCells:  grid.Count(),
		CutLevel: imaging.CutLevel(opts.ClipBottom, opts.ClipTop),
		Image:    encoded,
	}
	if n := grid.Width * grid.Height; n > 0 {
		result.Coverage = float64(result.OnCells) / float64(n)
	}
	return result, nil
}

// === Geometry Handlers ===

type motifPolygonizeArgs struct {
	motifArgs
	IncludeShapes bool `json:"include_shapes"`
}

// ComponentSummary describes one traced component in grid coordinates.
type ComponentSummary struct {
	Index           int              `json:"index"`
	Cells           int              `json:"cells"`
	Bounds          [4]int           `json:"bounds"`
	OutlineVertices int              `json:"outline_vertices"`
	HoleVertices    []int            `json:"hole_vertices"`
	Area            float64          `json:"area"`
	Outline         blockmap.Shape   `json:"outline,omitempty"`
	Holes           []blockmap.Shape `json:"holes,omitempty"`
}

// PolygonizeResult lists the traced components of a motif grid.
type PolygonizeResult struct {
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Holes      int                `json:"holes"`
	Components []ComponentSummary `json:"components"`
}

func (s *Server) handleMotifPolygonize(args json.RawMessage) (interface{}, error) {
	var a motifPolygonizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, grid, opts, err := s.sampleGrid(a.motifArgs)
	if err != nil {
		return nil, err
	}
	comps, err := motif.Polygonize(grid, opts.OuterOffset, opts.HoleOffset)
	if err != nil {
		return nil, err
	}

	result := &PolygonizeResult{
		Width:      grid.Width,
		Height:     grid.Height,
		Components: make([]ComponentSummary, 0, len(comps)),
	}
	for i, c := range comps {
		lo, hi, _ := c.Cells.Bounds()
		summary := ComponentSummary{
			Index:           i,
			Cells:           c.CellCount(),
			Bounds:          [4]int{lo.X, lo.Y, hi.X + 1, hi.Y + 1},
			OutlineVertices: len(c.Shape),
			HoleVertices:    make([]int, len(c.HoleShapes)),
			Area:            c.Shape.Area(),
		}
		for j, h := range c.HoleShapes {
			summary.HoleVertices[j] = len(h)
			summary.Area -= h.Area()
		}
		if a.IncludeShapes {
			summary.Outline = c.Shape
			summary.Holes = c.HoleShapes
		}
		result.Holes += len(c.HoleShapes)
		result.Components = append(result.Components, summary)
	}
	return result, nil
}

type motifMeshArgs struct {
	motifArgs
	Key string `json:"key"`
}

// MeshResult summarises a generated motif solid.
type MeshResult struct {
	Empty       bool             `json:"empty"`
	Stats       motif.Stats      `json:"stats"`
	Orientation mesh.Orientation `json:"orientation"`
	Min         mesh.Point       `json:"min"`
	Max         mesh.Point       `json:"max"`
	Watertight  bool             `json:"watertight"`
	Problem     string           `json:"problem,omitempty"`
}

func (s *Server) handleMotifMesh(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a motifMeshArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.generate(ctx, a.Key, a.motifArgs)
	if err != nil {
		return nil, err
	}

	result := &MeshResult{
		Empty:       res.Empty(),
		Stats:       res.Stats,
		Orientation: res.Mesh.Orientation,
	}
	if result.Empty {
		return result, nil
	}
	result.Min, result.Max, _ = res.Mesh.Bounds()
	if err := res.Mesh.Validate(); err != nil {
		result.Problem = err.Error()
	} else {
		result.Watertight = true
	}
	return result, nil
}

type motifExportSTLArgs struct {
	motifArgs
	Output string `json:"output"`
	Format string `json:"format"`
	Name   string `json:"name"`
}

// ExportResult describes a written STL file.
type ExportResult struct {
	Output    string `json:"output"`
	Format    string `json:"format"`
	Triangles int    `json:"triangles"`
	Bytes     int64  `json:"bytes"`
}

func (s *Server) handleMotifExportSTL(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a motifExportSTLArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if a.Format == "" {
		a.Format = "binary"
	}
	if a.Format != "binary" && a.Format != "ascii" {
		return nil, fmt.Errorf("unknown format: %s", a.Format)
	}
	if a.Name == "" {
		a.Name = "motif"
	}

	res, err := s.generate(ctx, "export:"+a.Output, a.motifArgs)
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, ErrNoMotif
	}

	size, err := writeSTLFile(a.Output, a.Format, res.Mesh, a.Name)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Output:    a.Output,
		Format:    a.Format,
		Triangles: res.Mesh.TriangleCount(),
		Bytes:     size,
	}, nil
}

// writeSTLFile writes m to a temporary file next to output and renames it
// into place, so output is either the previous file or a complete STL. It
// returns the size of the written file.
func writeSTLFile(output, format string, m *mesh.Mesh, name string) (int64, error) {
	output = filepath.Clean(output)
	f, err := os.CreateTemp(filepath.Dir(output), "."+filepath.Base(output)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create output: %w", err)
	}
	tmp := f.Name()

	err = f.Chmod(0o644)
	if err == nil {
		if format == "ascii" {
			err = mesh.WriteASCIISTL(f, m, name)
		} else {
			err = mesh.WriteSTL(f, m, name)
		}
	}
	var size int64
	if err == nil {
		var stat os.FileInfo
		if stat, err = f.Stat(); err == nil {
			size = stat.Size()
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, output)
	}
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to write STL: %w", err)
	}
	return size, nil
}

// === Verification Handlers ===

type motifPreviewArgs struct {
	motifArgs
	Scale    float64 `json:"scale"`
	Contours bool    `json:"contours"`
}

func (s *Server) handleMotifPreview(args json.RawMessage) (interface{}, error) {
	var a motifPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, grid, opts, err := s.sampleGrid(a.motifArgs)
	if err != nil {
		return nil, err
	}
	comps, err := motif.Polygonize(grid, opts.OuterOffset, opts.HoleOffset)
	if err != nil {
		return nil, err
	}
	img, err := preview.RenderShapes(grid.Width, grid.Height, comps, preview.Options{
		Scale:    a.Scale,
		Contours: a.Contours,
	})
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(img)
}

type motifLegibilityArgs struct {
	motifArgs
	Expected string `json:"expected"`
	Language string `json:"language"`
	Scale    int    `json:"scale"`
}

// LegibilityResult is the OCR reading of a motif mask.
type LegibilityResult struct {
	*ocr.Legibility
	Expected string `json:"expected,omitempty"`
	Matches  *bool  `json:"matches,omitempty"`
}

func (s *Server) handleMotifLegibility(args json.RawMessage) (interface{}, error) {
	var a motifLegibilityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, grid, _, err := s.sampleGrid(a.motifArgs)
	if err != nil {
		return nil, err
	}
	reading, err := ocr.ReadMask(grid, ocr.Options{Language: a.Language, Scale: a.Scale})
	if err != nil {
		return nil, err
	}

	result := &LegibilityResult{Legibility: reading, Expected: a.Expected}
	if a.Expected != "" {
		matches := reading.Matches(a.Expected)
		result.Matches = &matches
	}
	return result, nil
}
