package imaging

import (
	"sort"
)

// LevelFrequency is one quantised height band.
type LevelFrequency struct {
	// Low and High are the inclusive height range of the band.
	Low  uint8 `json:"low"`
	High uint8 `json:"high"`
	// Percentage of cells in the band, 0-100.
	Percentage float64 `json:"percentage"`
}

// LevelsResult summarises the height distribution of a height map.
type LevelsResult struct {
	// Levels are the populated bands, most frequent first.
	Levels []LevelFrequency `json:"levels"`

	// SuggestedCut is the normalised clip level separating the two main
	// height populations (Otsu's method). Valid only when Bimodal is true.
	SuggestedCut float64 `json:"suggested_cut"`
	Bimodal      bool    `json:"bimodal"`
}

// Histogram counts the cells of each height.
func (h *HeightMap) Histogram() [256]int {
	var hist [256]int
	if h == nil {
		return hist
	}
	for _, v := range h.Data {
		hist[v]++
	}
	return hist
}

// HeightLevels groups heights into bands of the given width and reports the
// populated bands by frequency, along with a suggested cut level.
//
// Heights are quantised by integer division, so with a band width of 16 the
// heights 0xF0 through 0xFF fall into one band. A band width of 0 or 1
// reports every distinct height.
//
// Parameters:
//   - hm: The sampled height map.
//   - bandWidth: Heights per band.
//   - count: Maximum number of bands to return; 0 returns all.
func HeightLevels(hm *HeightMap, bandWidth, count int) *LevelsResult {
	if bandWidth < 1 {
		bandWidth = 1
	}
	hist := hm.Histogram()
	total := 0
	bands := make(map[int]int)
	for v, n := range hist {
		if n == 0 {
			continue
		}
		bands[v/bandWidth] += n
		total += n
	}

	result := &LevelsResult{Levels: make([]LevelFrequency, 0, len(bands))}
	for b, n := range bands {
		high := min((b+1)*bandWidth-1, 255)
		result.Levels = append(result.Levels, LevelFrequency{
			Low:        uint8(b * bandWidth),
			High:       uint8(high),
			Percentage: float64(n) / float64(total) * 100,
		})
	}
	sort.Slice(result.Levels, func(i, j int) bool {
		if result.Levels[i].Percentage != result.Levels[j].Percentage {
			return result.Levels[i].Percentage > result.Levels[j].Percentage
		}
		return result.Levels[i].Low < result.Levels[j].Low
	})
	if count > 0 && len(result.Levels) > count {
		result.Levels = result.Levels[:count]
	}

	if t, ok := otsu(hist); ok {
		result.Bimodal = true
		result.SuggestedCut = (float64(t) + 0.5) / 255
	}
	return result
}

// otsu returns the height t that maximises the between-class variance of
// the split {<= t} / {> t}, taking the middle of a tied range. ok is false
// when all cells share one height.
func otsu(hist [256]int) (t int, ok bool) {
	var total, sum float64
	for v, n := range hist {
		total += float64(n)
		sum += float64(v * n)
	}
	if total == 0 {
		return 0, false
	}

	var weightLow, sumLow, best float64
	var lo, hi int
	for v := 0; v < 255; v++ {
		weightLow += float64(hist[v])
		if weightLow == 0 {
			continue
		}
		weightHigh := total - weightLow
		if weightHigh == 0 {
			break
		}
		sumLow += float64(v * hist[v])
		meanLow := sumLow / weightLow
		meanHigh := (sum - sumLow) / weightHigh
		between := weightLow * weightHigh * (meanLow - meanHigh) * (meanLow - meanHigh)
		switch {
		case between > best:
			best = between
			lo, hi = v, v
			ok = true
		case ok && between == best:
			// empty heights between two populations leave a plateau
			hi = v
		}
	}
	return (lo + hi) / 2, ok
}
