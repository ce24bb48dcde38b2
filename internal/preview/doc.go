// Package preview rasterises motif grids and traced shapes with gg.
//
// RenderMask shows what the clip thresholds kept; RenderShapes shows what
// the tracer produced. Comparing the two is the quickest way to spot a
// component whose outline or holes went astray. Both draw black ink on
// white paper at Options.Scale pixels per cell.
package preview
