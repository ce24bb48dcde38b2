package imaging

import (
	"errors"
	"testing"
)

func TestClipValue(t *testing.T) {
	tests := []struct {
		v    uint8
		want uint8
	}{
		{0, 0},
		{124, 0}, // 0.486 < clipBottom
		{125, 1}, // 0.490, inside the band
		{128, 1}, // 0.502, inside the band
		{131, 1}, // 0.514 > clipTop
		{255, 1},
	}
	for _, tt := range tests {
		if got := ClipValue(tt.v, 0.49, 0.51); got != tt.want {
			t.Errorf("ClipValue(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestValidateClip(t *testing.T) {
	tests := []struct {
		name          string
		bottom, top   float64
		expectFailure bool
	}{
		{"defaults", 0.49, 0.51, false},
		{"equal", 0.5, 0.5, false},
		{"full range", 0, 1, false},
		{"inverted", 0.6, 0.4, true},
		{"negative bottom", -0.1, 0.5, true},
		{"top above one", 0.5, 1.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClip(tt.bottom, tt.top)
			if tt.expectFailure && !errors.Is(err, ErrClipRange) {
				t.Errorf("got %v, want ErrClipRange", err)
			}
			if !tt.expectFailure && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestClip(t *testing.T) {
	hm := &HeightMap{Width: 3, Length: 2, Data: []uint8{0, 200, 0, 255, 10, 130}}

	g, err := Clip(hm, 0.49, 0.51)
	if err != nil {
		t.Fatalf("Clip failed: %v", err)
	}
	if g.Width != 3 || g.Height != 2 {
		t.Fatalf("dimensions: got %dx%d, want 3x2", g.Width, g.Height)
	}
	want := []uint8{0, 1, 0, 1, 0, 1}
	for i, v := range want {
		if g.Cells[i] != v {
			t.Errorf("Cells[%d] = %d, want %d", i, g.Cells[i], v)
		}
	}
}

func TestClip_ValidatesFirst(t *testing.T) {
	if _, err := Clip(nil, 0.7, 0.3); !errors.Is(err, ErrClipRange) {
		t.Errorf("got %v, want ErrClipRange", err)
	}

	g, err := Clip(nil, 0.3, 0.7)
	if err != nil {
		t.Fatalf("Clip(nil) failed: %v", err)
	}
	if g.Width != 0 || len(g.Cells) != 0 {
		t.Errorf("Clip(nil) should yield an empty grid, got %+v", g)
	}
}

func TestCutLevel(t *testing.T) {
	if got := CutLevel(0.49, 0.51); got != 125 {
		t.Errorf("CutLevel(0.49, 0.51) = %d, want 125", got)
	}
	if got := CutLevel(0, 0); got != 0 {
		t.Errorf("CutLevel(0, 0) = %d, want 0", got)
	}
	if got := CutLevel(1, 1); got != 255 {
		t.Errorf("CutLevel(1, 1) = %d, want 255", got)
	}
}

func TestCutPreview(t *testing.T) {
	hm := &HeightMap{Width: 2, Length: 2, Data: []uint8{0, 255, 255, 0}}

	img, err := CutPreview(hm, 0.49, 0.51)
	if err != nil {
		t.Fatalf("CutPreview failed: %v", err)
	}
	want := []uint8{0, 255, 255, 0}
	for i, v := range want {
		x, y := i%2, i/2
		if got := img.GrayAt(x, y).Y; got != v {
			t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, v)
		}
	}

	if _, err := CutPreview(hm, 0.9, 0.1); !errors.Is(err, ErrClipRange) {
		t.Errorf("got %v, want ErrClipRange", err)
	}
}

func TestCutPreview_NilHeightMap(t *testing.T) {
	img, err := CutPreview(nil, 0.49, 0.51)
	if err != nil {
		t.Fatalf("CutPreview failed: %v", err)
	}
	if !img.Bounds().Empty() {
		t.Errorf("expected empty image, got bounds %v", img.Bounds())
	}

	if _, err := CutPreview(nil, 0.9, 0.1); !errors.Is(err, ErrClipRange) {
		t.Errorf("got %v, want ErrClipRange", err)
	}
}
