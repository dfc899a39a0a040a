package chart

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	minBins       = 10
	maxBins       = 100
	envelopePoint = 200
)

// finiteSorted copies the finite values of a sample in ascending order
func finiteSorted(sample []float64) []float64 {
	out := make([]float64, 0, len(sample))
	for _, v := range sample {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// plottable rejects empty samples and ranges too wide to subdivide
func plottable(x []float64) bool {
	return len(x) > 0 && !math.IsInf(x[len(x)-1]-x[0], 0)
}

// Bins histograms a sample as percent of total. Widths follow Freedman-Diaconis,
// clamped to [10, 100] bins; discrete samples get unit bins centered on integers
// whenever their range fits in 100 bins.
func Bins(sample []float64, discrete bool) []Bin {
	x := finiteSorted(sample)
	if !plottable(x) {
		return nil
	}

	edges := binEdges(x, discrete)
	counts := stat.Histogram(nil, edges, x, nil)

	total := float64(len(x))
	bins := make([]Bin, len(counts))
	for i, c := range counts {
		bins[i] = Bin{Lower: edges[i], Upper: edges[i+1], Percent: 100 * c / total}
	}
	return bins
}

func binEdges(x []float64, discrete bool) []float64 {
	lo, hi := x[0], x[len(x)-1]

	if discrete && hi-lo+1 <= maxBins {
		n := int(hi-lo) + 1
		edges := make([]float64, n+1)
		floats.Span(edges, lo-0.5, hi+0.5)
		// far from zero the half-unit offsets round away and the edges collapse onto the sample
		if edges[0] < lo && edges[n] > hi {
			return edges
		}
	}

	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}

	n := freedmanDiaconis(x, lo, hi)
	edges := make([]float64, n+1)
	floats.Span(edges, lo, hi)
	// the top edge is exclusive, nudge it past the maximum
	edges[n] = math.Nextafter(hi, math.Inf(1))
	return edges
}

func freedmanDiaconis(x []float64, lo, hi float64) int {
	iqr := stat.Quantile(0.75, stat.LinInterp, x, nil) - stat.Quantile(0.25, stat.LinInterp, x, nil)
	if iqr <= 0 {
		return minBins
	}

	width := 2 * iqr / math.Cbrt(float64(len(x)))
	n := math.Ceil((hi - lo) / width)
	switch {
	case math.IsNaN(n) || n < minBins:
		return minBins
	case n > maxBins:
		return maxBins
	}
	return int(n)
}

// Envelope estimates the sample density with a Gaussian kernel and Silverman's
// bandwidth on an evenly spaced grid between the sample extremes
func Envelope(sample []float64) []Point {
	x := finiteSorted(sample)
	if !plottable(x) {
		return nil
	}

	lo, hi := x[0], x[len(x)-1]
	h := silverman(x)
	if hi == lo {
		lo, hi = lo-3*h, hi+3*h
	}

	grid := make([]float64, envelopePoint)
	floats.Span(grid, lo, hi)

	kernel := distuv.UnitNormal
	n := float64(len(x))
	points := make([]Point, len(grid))
	for i, g := range grid {
		var sum float64
		for _, v := range x {
			sum += kernel.Prob((g - v) / h)
		}
		points[i] = Point{X: g, Density: sum / (n * h)}
	}
	return points
}

func silverman(x []float64) float64 {
	sd := stat.StdDev(x, nil)
	iqr := stat.Quantile(0.75, stat.LinInterp, x, nil) - stat.Quantile(0.25, stat.LinInterp, x, nil)

	spread := sd
	if iqr > 0 && iqr/1.34 < spread {
		spread = iqr / 1.34
	}
	if !(spread > 0) || math.IsInf(spread, 0) {
		spread = math.Max(math.Abs(x[0]), 1) * 0.1
	}
	return 0.9 * spread * math.Pow(float64(len(x)), -0.2)
}
