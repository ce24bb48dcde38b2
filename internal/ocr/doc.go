// Package ocr checks that lettering survives motif thresholding.
//
// Most stamp motifs are text. After an image has been clipped into a binary
// grid, ReadMask renders the grid as black ink on white paper and reads it
// back with Tesseract (via gosseract/v2). Comparing the recognised text with
// the intended one catches clip settings that break thin strokes or fill in
// letter counters before a mold is printed.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Rendering
//
// MaskImage draws every cell as a square block (8 pixels by default) with
// a paper margin around the motif. Tesseract is tuned for glyphs tens of
// pixels high; the 150-cell grids produced by package imaging read much
// better scaled up.
//
// # Error Handling
//
// An empty grid is reported as empty text without starting Tesseract. If
// word boxes cannot be extracted, the text is still returned with no words.
package ocr
