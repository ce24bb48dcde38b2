package imaging

import (
	"math"
	"testing"
)

func heightMapOf(data ...uint8) *HeightMap {
	return &HeightMap{Width: len(data), Length: 1, Data: data}
}

func TestHistogram(t *testing.T) {
	hist := heightMapOf(0, 0, 7, 255).Histogram()
	if hist[0] != 2 || hist[7] != 1 || hist[255] != 1 {
		t.Errorf("unexpected histogram counts: 0=%d 7=%d 255=%d", hist[0], hist[7], hist[255])
	}

	var nilMap *HeightMap
	if hist := nilMap.Histogram(); hist[0] != 0 {
		t.Error("nil height map should have an empty histogram")
	}
}

func TestHeightLevels_Bands(t *testing.T) {
	hm := heightMapOf(0, 5, 15, 16, 200, 200, 201, 255)

	result := HeightLevels(hm, 16, 0)

	want := []LevelFrequency{
		{Low: 0, High: 15, Percentage: 37.5},
		{Low: 192, High: 207, Percentage: 37.5},
		{Low: 16, High: 31, Percentage: 12.5},
		{Low: 240, High: 255, Percentage: 12.5},
	}
	if len(result.Levels) != len(want) {
		t.Fatalf("got %d levels, want %d: %+v", len(result.Levels), len(want), result.Levels)
	}
	for i, w := range want {
		if result.Levels[i] != w {
			t.Errorf("Levels[%d] = %+v, want %+v", i, result.Levels[i], w)
		}
	}

	limited := HeightLevels(hm, 16, 2)
	if len(limited.Levels) != 2 {
		t.Errorf("count limit: got %d levels, want 2", len(limited.Levels))
	}

	exact := HeightLevels(hm, 0, 0)
	if len(exact.Levels) != 7 {
		t.Errorf("band width 0: got %d levels, want 7 distinct heights", len(exact.Levels))
	}
}

func TestHeightLevels_SuggestedCut(t *testing.T) {
	tests := []struct {
		name    string
		hm      *HeightMap
		bimodal bool
		cut     float64
	}{
		{"black and white", heightMapOf(0, 0, 255, 255, 255), true, 127.5 / 255},
		{"two grays", heightMapOf(50, 50, 200, 200), true, 124.5 / 255},
		{"uniform", heightMapOf(90, 90, 90), false, 0},
		{"empty", heightMapOf(), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HeightLevels(tt.hm, 16, 0)
			if result.Bimodal != tt.bimodal {
				t.Fatalf("Bimodal = %v, want %v", result.Bimodal, tt.bimodal)
			}
			if math.Abs(result.SuggestedCut-tt.cut) > 1e-9 {
				t.Errorf("SuggestedCut = %f, want %f", result.SuggestedCut, tt.cut)
			}
		})
	}
}

// The suggested cut, used as both clip thresholds, separates the two
// populations it was computed from.
func TestHeightLevels_CutSeparates(t *testing.T) {
	hm := heightMapOf(10, 20, 30, 180, 190, 240)
	result := HeightLevels(hm, 1, 0)
	if !result.Bimodal {
		t.Fatal("expected a cut")
	}

	grid, err := Clip(hm, result.SuggestedCut, result.SuggestedCut)
	if err != nil {
		t.Fatalf("Clip failed: %v", err)
	}
	want := []uint8{0, 0, 0, 1, 1, 1}
	for i, w := range want {
		if grid.Cells[i] != w {
			t.Errorf("cell %d = %d, want %d", i, grid.Cells[i], w)
		}
	}
}
