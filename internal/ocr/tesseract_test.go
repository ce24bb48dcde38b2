package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
)

// textGrid renders text with basicfont and thresholds it into a grid, the
// way a lettering motif reaches this package.
func textGrid(t *testing.T, text string) *blockmap.Grid {
	t.Helper()

	width, height := len(text)*7+4, 17
	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(2), Y: fixed.I(13)},
	}
	d.DrawString(text)

	cells := make([]uint8, width*height)
	for i, v := range img.Pix {
		if v < 128 {
			cells[i] = 1
		}
	}
	g, err := blockmap.NewGrid(width, height, cells)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return g
}

func TestMaskImage(t *testing.T) {
	g, err := blockmap.FromRows([][]uint8{
		{1, 0},
		{0, 1},
	})
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}

	img := MaskImage(g, 3, 1)
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 12 {
		t.Fatalf("dimensions: got %dx%d, want 12x12", b.Dx(), b.Dy())
	}

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, Paper},   // margin
		{3, 3, Ink},     // cell (0,0)
		{5, 5, Ink},     // cell (0,0), last pixel
		{6, 3, Paper},   // cell (1,0)
		{6, 6, Ink},     // cell (1,1)
		{8, 8, Ink},     // cell (1,1), last pixel
		{11, 11, Paper}, // margin
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMaskImage_Empty(t *testing.T) {
	img := MaskImage(&blockmap.Grid{}, 0, 2)
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("dimensions: got %dx%d, want 4x4", b.Dx(), b.Dy())
	}
}

func TestReadMask_EmptyGrid(t *testing.T) {
	g, err := blockmap.NewGrid(3, 2, make([]uint8, 6))
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	result, err := ReadMask(g, Options{})
	if err != nil {
		t.Fatalf("ReadMask failed: %v", err)
	}
	if result.Text != "" || len(result.Words) != 0 || result.MeanConfidence != 0 {
		t.Errorf("empty grid should read as nothing, got %+v", result)
	}
	if result.Scale != defaultScale {
		t.Errorf("Scale: got %d, want %d", result.Scale, defaultScale)
	}
}

func TestReadMask_Lettering(t *testing.T) {
	if !GetInfo().Available {
		t.Skip("Tesseract not available")
	}

	result, err := ReadMask(textGrid(t, "STAMP"), Options{Scale: 6})
	if err != nil {
		t.Skipf("Tesseract not usable: %v", err)
	}

	for _, w := range result.Words {
		if w.Confidence < 0 || w.Confidence > 1 {
			t.Errorf("confidence of %q out of range: %f", w.Text, w.Confidence)
		}
		if w.Bounds.X2 <= w.Bounds.X1 || w.Bounds.Y2 <= w.Bounds.Y1 {
			t.Errorf("degenerate bounds for %q: %+v", w.Text, w.Bounds)
		}
	}
	if result.MeanConfidence < 0 || result.MeanConfidence > 1 {
		t.Errorf("MeanConfidence out of range: %f", result.MeanConfidence)
	}
}

func TestLegibility_Matches(t *testing.T) {
	l := &Legibility{Text: "Hello\n World "}
	tests := []struct {
		expected string
		want     bool
	}{
		{"hello world", true},
		{"HELLOWORLD", true},
		{"hello", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := l.Matches(tt.expected); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.expected, got, tt.want)
		}
	}
}
