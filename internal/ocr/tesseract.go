package ocr

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
)

// Bounds is a word bounding box in mask image pixels.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Word is one recognised word.
type Word struct {
	Text string `json:"text"`
	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`
	Bounds     Bounds  `json:"bounds"`
}

// Legibility is the OCR reading of a motif mask.
type Legibility struct {
	Text  string `json:"text"`
	Words []Word `json:"words"`
	// MeanConfidence averages word confidences; 0 when no word was read.
	MeanConfidence float64 `json:"mean_confidence"`
	// Scale is the cell size in pixels the mask was rendered at.
	Scale int `json:"scale"`
}

// Options controls ReadMask.
type Options struct {
	// Language is a Tesseract language code. Empty means "eng".
	Language string
	// Scale is the rendered cell size in pixels. Zero means 8.
	Scale int
}

const (
	defaultLanguage = "eng"
	defaultScale    = 8
	maskMargin      = 4
)

// ReadMask runs Tesseract on the rendered mask of grid.
//
// Stamps are mostly lettering, and thresholding can break thin strokes or
// merge counters. Reading the mask back tells whether the text survived
// the clip settings before a mold is printed.
//
// A grid without on-cells is reported as empty without starting Tesseract.
//
// Parameters:
//   - grid: The binary motif grid.
//   - opts: Language and render scale.
//
// Returns:
//   - *Legibility: Recognised text and per-word confidence. If word boxes
//     cannot be read the text is still returned with no words.
//   - error: Non-nil if Tesseract cannot be initialised or fails.
func ReadMask(grid *blockmap.Grid, opts Options) (*Legibility, error) {
	if opts.Language == "" {
		opts.Language = defaultLanguage
	}
	if opts.Scale <= 0 {
		opts.Scale = defaultScale
	}

	result := &Legibility{Words: []Word{}, Scale: opts.Scale}
	if grid == nil || grid.Count() == 0 {
		return result, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, MaskImage(grid, opts.Scale, maskMargin)); err != nil {
		return nil, fmt.Errorf("failed to encode mask: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(opts.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	result.Text = strings.TrimSpace(text)

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}

	var sum float64
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		w := Word{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		}
		result.Words = append(result.Words, w)
		sum += w.Confidence
	}
	if len(result.Words) > 0 {
		result.MeanConfidence = sum / float64(len(result.Words))
	}

	return result, nil
}

// Matches reports whether the recognised text equals expected, ignoring
// case and whitespace.
func (l *Legibility) Matches(expected string) bool {
	return normalizeText(l.Text) == normalizeText(expected)
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// Info reports whether Tesseract can be used.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
}

// GetInfo returns the linked Tesseract version.
func GetInfo() Info {
	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	return Info{Available: version != "", Version: version}
}
