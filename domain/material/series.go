package material

import "math"

// Series is a paired sequence of measurements: Y recorded against X.
// Depending on the standard X is strain (mm/mm) or time (s) and Y is
// stress (MPa), but nothing in here assumes units.
type Series struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

func (s Series) Len() int { return len(s.Y) }

// MaxY returns the index and value of the largest Y. Index is -1 for an
// empty series.
func (s Series) MaxY() (int, float64) {
	if len(s.Y) == 0 {
		return -1, 0
	}
	idx, max := 0, s.Y[0]
	for i, v := range s.Y {
		if v > max {
			idx, max = i, v
		}
	}
	return idx, max
}

// TrimAtPeak returns the series up to and including its Y maximum.
// Post-rupture noise past the peak carries no information for modulus
// fitting or plotting.
func (s Series) TrimAtPeak() Series {
	idx, _ := s.MaxY()
	if idx < 0 {
		return s
	}
	return Series{X: s.X[:idx+1], Y: s.Y[:idx+1]}
}

// NearestIndex returns the index whose X is closest to x. Nearest recorded
// sample, no interpolation. Returns -1 for an empty series.
func (s Series) NearestIndex(x float64) int {
	if len(s.X) == 0 {
		return -1
	}
	idx, best := 0, math.Abs(s.X[0]-x)
	for i, v := range s.X {
		if d := math.Abs(v - x); d < best {
			idx, best = i, d
		}
	}
	return idx
}

// AverageSeries computes the pointwise average curve of a set of series of
// possibly unequal lengths. At each index the average runs over the series
// that still have a point there, so the curve extends to the longest sample
// instead of being cut at the shortest.
func AverageSeries(set []Series) Series {
	xs := make([][]float64, 0, len(set))
	ys := make([][]float64, 0, len(set))
	for _, s := range set {
		xs = append(xs, s.X)
		ys = append(ys, s.Y)
	}
	return Series{X: averageColumns(xs), Y: averageColumns(ys)}
}

func averageColumns(vectors [][]float64) []float64 {
	maxLen := 0
	for _, v := range vectors {
		if len(v) > maxLen {
			maxLen = len(v)
		}
	}
	out := make([]float64, maxLen)
	for i := 0; i < maxLen; i++ {
		sum, n := 0.0, 0
		for _, v := range vectors {
			if i < len(v) {
				sum += v[i]
				n++
			}
		}
		out[i] = sum / float64(n)
	}
	return out
}
