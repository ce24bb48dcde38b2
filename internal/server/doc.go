// Package server implements the MCP (Model Context Protocol) server for stamp motifs.
//
// The server exposes the motif pipeline (height map, binary mask, traced
// components, extruded solid) as MCP tools so that a client can tune clip
// settings, inspect the geometry and export an STL for a stamp mold.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Tool calls run concurrently and may be answered out of order.
//
// # Available Tools
//
// Source Image:
//   - motif_load: Load an image, report size and suggested height channel
//   - motif_heightmap: Sampled heights as statistics and a grayscale PNG
//
// Binary Mask:
//   - motif_mask: Clipped grid as a PNG with cell counts
//
// Geometry:
//   - motif_polygonize: Components, holes and traced outlines
//   - motif_mesh: Extruded solid statistics and watertightness
//   - motif_export_stl: Write the solid as binary or ASCII STL
//
// Verification:
//   - motif_preview: Traced outlines rendered as a PNG
//   - motif_legibility: OCR reading of the mask
//
// Every tool takes the image path plus optional region, crop, channel,
// max_size and blur_radius. Tools past the height map also take
// clip_bottom, clip_top and size. Omitted arguments take the motif
// defaults.
//
// # Supersession
//
// motif_mesh and motif_export_stl build the solid through a
// motif.Dispatcher. A motif_mesh call with the same key as an unfinished
// one cancels it; the older call fails with "request superseded".
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (invalid params) or
//     -32601 (unknown method)
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New()
//	defer srv.Close()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
