package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is shared by every tool.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the motif image file",
}

// sourceProperties select and sample the image region a motif is built from.
func sourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"region": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"full", "top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
			"description": "Named region of the image to use. Default full",
		},
		"crop": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "integer"},
			"minItems":    4,
			"maxItems":    4,
			"description": "Optional pixel rectangle [x1, y1, x2, y2] (x2/y2 exclusive). Overrides region",
		},
		"channel": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"alpha", "luminance", "lightness"},
			"description": "Pixel property read as height. Default alpha",
		},
		"max_size": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "integer"},
			"minItems":    2,
			"maxItems":    2,
			"description": "Maximum grid width and depth in cells. Default [150, 150]",
		},
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur radius applied before sampling. Default 0 (off)",
		},
	}
}

// motifProperties extend sourceProperties with clip and size settings.
func motifProperties() map[string]interface{} {
	p := sourceProperties()
	p["clip_bottom"] = map[string]interface{}{
		"type":        "number",
		"description": "Normalised height below which cells are off. Default 0.49",
	}
	p["clip_top"] = map[string]interface{}{
		"type":        "number",
		"description": "Normalised height above which cells are on. Must be >= clip_bottom. Default 0.51",
	}
	p["size"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "number"},
		"minItems":    3,
		"maxItems":    3,
		"description": "Motif width, depth and height in millimetres. Default [40, 40, 1]",
	}
	return p
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source Image
		{
			Name:        "motif_load",
			Description: "Load a motif image and return its dimensions, format and whether it has transparency. Suggests the height channel to use: alpha for translucent images, luminance for opaque ones.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProperty,
			}, "path"),
		},
		{
			Name:        "motif_heightmap",
			Description: "Sample the image into a height map (at most max_size cells) and return height statistics with a grayscale PNG. Optionally shows where a clip level cuts the heights.",
			InputSchema: objectSchema(withProperties(sourceProperties(), map[string]interface{}{
				"cut_at": map[string]interface{}{
					"type":        "number",
					"description": "Optional normalised level (0-1). If set, the returned image is the height map thresholded at this level instead of the raw heights",
				},
			}), "path"),
		},

		// Binary Mask
		{
			Name:        "motif_mask",
			Description: "Clip the height map into the binary motif grid and return it as a PNG with cell counts. Use this to tune clip_bottom and clip_top.",
			InputSchema: objectSchema(withProperties(motifProperties(), map[string]interface{}{
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Pixels per grid cell in the returned image. Default 4",
				},
			}), "path"),
		},

		// Geometry
		{
			Name:        "motif_polygonize",
			Description: "Split the motif grid into connected components, find their holes and trace outline polygons in grid coordinates.",
			InputSchema: objectSchema(withProperties(motifProperties(), map[string]interface{}{
				"include_shapes": map[string]interface{}{
					"type":        "boolean",
					"description": "Include outline and hole vertex lists. Default false (counts only)",
				},
			}), "path"),
		},
		{
			Name:        "motif_mesh",
			Description: "Build the motif solid: every component extruded to the motif height, scaled to size and centred on the origin. Returns vertex and triangle counts, volume, bounds and a watertightness check. A newer request with the same key cancels an unfinished one.",
			InputSchema: objectSchema(withProperties(motifProperties(), map[string]interface{}{
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Request key. A newer request with the same key supersedes an unfinished one. Default \"default\"",
				},
			}), "path"),
		},
		{
			Name:        "motif_export_stl",
			Description: "Build the motif solid and write it to an STL file.",
			InputSchema: objectSchema(withProperties(motifProperties(), map[string]interface{}{
				"output": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of the STL file to write",
				},
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"binary", "ascii"},
					"description": "STL encoding. Default binary",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Solid name stored in the file. Default motif",
				},
			}), "path", "output"),
		},

		// Verification
		{
			Name:        "motif_preview",
			Description: "Render the traced outlines, with holes cut out, as a PNG. Compare with motif_mask to check the tracing.",
			InputSchema: objectSchema(withProperties(motifProperties(), map[string]interface{}{
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Pixels per grid cell. Default 4",
				},
				"contours": map[string]interface{}{
					"type":        "boolean",
					"description": "Stroke outlines (red) and holes (blue) over the fill. Default false",
				},
			}), "path"),
		},
		{
			Name:        "motif_legibility",
			Description: "Read the binary motif mask with OCR to check that lettering survives the clip settings. Requires Tesseract.",
			InputSchema: objectSchema(withProperties(motifProperties(), map[string]interface{}{
				"expected": map[string]interface{}{
					"type":        "string",
					"description": "Text the motif should read as. Compared ignoring case and whitespace",
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "Tesseract language code. Default eng",
				},
				"scale": map[string]interface{}{
					"type":        "integer",
					"description": "Pixels per grid cell in the image given to OCR. Default 8",
				},
			}), "path"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
