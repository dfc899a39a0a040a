package chart

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/adapters/catalog"
	"distviz/domain/distribution"
	"distviz/internal/engine"
)

func lookup(t *testing.T, class distribution.Class, name string) *distribution.Descriptor {
	t.Helper()
	d, err := catalog.MustNew().Lookup(class, name)
	require.NoError(t, err)
	return d
}

func TestBuildNormal(t *testing.T) {
	d := lookup(t, distribution.Continuous, "norm")
	values := []float64{0, 1}
	res := engine.New(rand.NewPCG(1, 1)).Evaluate(d, values)

	hist, violin := Build(res, d, values)

	assert.Equal(t, "norm distribution histogram | loc:0 | scale:1", hist.Title)
	assert.Equal(t, Dark, hist.Style)
	assert.Equal(t, "Value", hist.XLabel)
	assert.Equal(t, "Percent", hist.YLabel)
	assert.False(t, hist.Empty())

	var total float64
	for _, b := range hist.Bins {
		total += b.Percent
	}
	assert.InDelta(t, 100, total, 1e-9)
	assert.GreaterOrEqual(t, len(hist.Bins), 10)
	assert.LessOrEqual(t, len(hist.Bins), 100)

	assert.Equal(t, Violin, violin.Kind)
	assert.Equal(t, "norm", violin.YLabel)
	assert.Equal(t, ViolinTitle(res.Quantiles), violin.Title)
	assert.Len(t, violin.Envelope, envelopePoint)
	assert.Equal(t, res.Quantiles, violin.Quantiles)
}

func TestBuildInvalid(t *testing.T) {
	d := lookup(t, distribution.Continuous, "gamma")
	values := []float64{-1, 0, 1}
	res := engine.New(nil).Evaluate(d, values)

	hist, violin := Build(res, d, values)

	for _, fig := range []Figure{hist, violin} {
		assert.Equal(t, Alert, fig.Style)
		assert.Equal(t, "Invalid shape parameters for gamma distribution", fig.Title)
		assert.True(t, fig.Empty())
	}
}

func TestPlaceholders(t *testing.T) {
	hist, violin := Placeholders()

	assert.Equal(t, Placeholder, hist.Style)
	assert.Equal(t, Placeholder, violin.Style)
	assert.Empty(t, hist.Title)
	assert.True(t, hist.Empty())
	assert.True(t, violin.Empty())
}

func TestViolinTitle(t *testing.T) {
	q := engine.Quantiles{Min: -3.2, Q1: -0.67, Median: 0, Q3: 0.68, Max: 3.5}
	assert.Equal(t, "min -3.2 | q1 -0.67 | median 0 | q3 0.68 | max 3.5", ViolinTitle(q))
}

func TestHistogramTitleWithShape(t *testing.T) {
	d := lookup(t, distribution.Continuous, "gamma")
	assert.Equal(t, "gamma distribution histogram | a:2.5 | loc:0 | scale:1", HistogramTitle(d, []float64{2.5, 0, 1}))
}

func TestBinsDiscreteUnitWidth(t *testing.T) {
	sample := []float64{0, 1, 1, 2, 2, 2, 3}

	bins := Bins(sample, true)

	require.Len(t, bins, 4)
	for i, b := range bins {
		assert.InDelta(t, float64(i), b.Center(), 1e-9)
		assert.InDelta(t, 1, b.Upper-b.Lower, 1e-9)
	}
	assert.InDelta(t, 300.0/7, bins[2].Percent, 1e-9)
}

func TestBuildDiscreteFarFromZero(t *testing.T) {
	d := lookup(t, distribution.Discrete, "poisson")
	values := []float64{5, 1e17}
	res := engine.New(rand.NewPCG(3, 5)).Evaluate(d, values)
	require.True(t, res.Valid())

	var hist Figure
	require.NotPanics(t, func() { hist, _ = Build(res, d, values) })

	require.NotEmpty(t, hist.Bins)
	var total float64
	for _, b := range hist.Bins {
		total += b.Percent
	}
	assert.InDelta(t, 100, total, 1e-9)
	assert.Greater(t, hist.Bins[len(hist.Bins)-1].Upper, res.Quantiles.Max-1)
}

func TestBinsDiscreteCollapsedEdges(t *testing.T) {
	sample := []float64{1e17, 1e17 + 16, 1e17 + 32}

	bins := Bins(sample, true)

	require.Len(t, bins, minBins)
	assert.Equal(t, 1e17, bins[0].Lower)
	assert.Greater(t, bins[len(bins)-1].Upper, 1e17+32)
}

func TestBinsDropsNonFinite(t *testing.T) {
	bins := Bins([]float64{1, 2, math.Inf(1), math.NaN(), 3}, false)

	var total float64
	for _, b := range bins {
		total += b.Percent
	}
	assert.InDelta(t, 100, total, 1e-9)
	assert.Len(t, bins, minBins)
}

func TestBinsConstantSample(t *testing.T) {
	bins := Bins([]float64{4, 4, 4}, false)

	require.NotEmpty(t, bins)
	assert.Equal(t, 4.0-0.5, bins[0].Lower)
}

func TestEnvelopeIntegratesToOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 2))
	sample := make([]float64, 2000)
	for i := range sample {
		sample[i] = rng.NormFloat64()
	}

	points := Envelope(sample)
	require.Len(t, points, envelopePoint)

	var area float64
	for i := 1; i < len(points); i++ {
		area += (points[i].X - points[i-1].X) * (points[i].Density + points[i-1].Density) / 2
	}
	assert.InDelta(t, 1, area, 0.05)
}

func TestEmptySample(t *testing.T) {
	assert.Nil(t, Bins(nil, false))
	assert.Nil(t, Envelope(nil))
}
