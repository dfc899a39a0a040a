package view

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/adapters/catalog"
	"distviz/domain/distribution"
	"distviz/internal/chart"
	"distviz/internal/engine"
	"distviz/internal/errors"
)

func newCoordinator() *Coordinator {
	return NewCoordinator(catalog.MustNew(), engine.New(rand.NewPCG(2, 3)), nil)
}

func TestPlaceholderState(t *testing.T) {
	s := NewState()

	assert.False(t, s.HasSelection())
	assert.Empty(t, s.Header())
	assert.Empty(t, s.Description().Notes)
	assert.Empty(t, s.Parameters())
	assert.Zero(t, s.Evaluations())

	hist, violin := s.Figures()
	assert.Equal(t, chart.Placeholder, hist.Style)
	assert.Equal(t, chart.Placeholder, violin.Style)
}

func TestSelectNormal(t *testing.T) {
	c := newCoordinator()
	s := NewState()

	require.NoError(t, c.Select(s, distribution.Continuous, "norm"))

	assert.Equal(t, "norm | -inf to inf", s.Header())
	assert.Equal(t, []float64{0, 1}, s.Values())
	assert.Equal(t, 1, s.Evaluations())

	hist, _ := s.Figures()
	assert.Equal(t, "norm distribution histogram | loc:0 | scale:1", hist.Title)
	assert.True(t, s.Result().Valid())
}

func TestSelectClearsOtherClass(t *testing.T) {
	c := newCoordinator()
	s := NewState()

	require.NoError(t, c.Select(s, distribution.Continuous, "gamma"))
	require.NoError(t, c.Select(s, distribution.Discrete, "poisson"))

	assert.Empty(t, s.Selected(distribution.Continuous))
	assert.Equal(t, "poisson", s.Selected(distribution.Discrete))
	assert.Equal(t, "poisson", s.Descriptor().Name)
	assert.Equal(t, 2, s.Evaluations())
}

func TestSelectResetsValues(t *testing.T) {
	c := newCoordinator()
	s := NewState()

	require.NoError(t, c.Select(s, distribution.Continuous, "gamma"))
	_, err := c.SetParameter(s, "a", 3, SurfaceInput)
	require.NoError(t, err)

	require.NoError(t, c.Select(s, distribution.Continuous, "gamma"))
	assert.Equal(t, []float64{50, 0, 1}, s.Values())
}

func TestSelectUnknown(t *testing.T) {
	c := newCoordinator()
	s := NewState()
	require.NoError(t, c.Select(s, distribution.Continuous, "norm"))

	err := c.Select(s, distribution.Continuous, "nope")

	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	assert.Equal(t, "norm", s.Descriptor().Name)
	assert.Equal(t, 1, s.Evaluations())
}

func TestDeselectReturnsToPlaceholder(t *testing.T) {
	c := newCoordinator()
	s := NewState()
	require.NoError(t, c.Select(s, distribution.Continuous, "norm"))

	require.NoError(t, c.Select(s, distribution.Discrete, ""))
	assert.True(t, s.HasSelection())

	require.NoError(t, c.Select(s, distribution.Continuous, ""))
	assert.False(t, s.HasSelection())
	assert.Empty(t, s.Header())
	assert.Empty(t, s.Parameters())
}

func TestSetParameterRefreshesOtherSurface(t *testing.T) {
	c := newCoordinator()
	s := NewState()
	require.NoError(t, c.Select(s, distribution.Continuous, "norm"))

	tests := []struct {
		source Surface
		want   []Surface
	}{
		{SurfaceSlider, []Surface{SurfaceInput}},
		{SurfaceInput, []Surface{SurfaceSlider}},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			before := s.Evaluations()

			refresh, err := c.SetParameter(s, "loc", 7, tt.source)

			require.NoError(t, err)
			assert.Equal(t, tt.want, refresh)
			assert.Equal(t, before+1, s.Evaluations())

			p, ok := s.Parameter("loc")
			require.True(t, ok)
			assert.Equal(t, 7.0, p.Value)
		})
	}
}

func TestSetParameterClampsSliderOnly(t *testing.T) {
	c := newCoordinator()
	s := NewState()
	require.NoError(t, c.Select(s, distribution.Continuous, "norm"))

	_, err := c.SetParameter(s, "loc", 250, SurfaceInput)
	require.NoError(t, err)

	p, _ := s.Parameter("loc")
	assert.Equal(t, 250.0, p.Value)
	assert.Equal(t, "250", p.InputValue())
	assert.Equal(t, 100.0, p.SliderValue())
}

func TestSetParameterInvalidShape(t *testing.T) {
	c := newCoordinator()
	s := NewState()
	require.NoError(t, c.Select(s, distribution.Continuous, "gamma"))

	_, err := c.SetParameter(s, "a", -1, SurfaceSlider)
	require.NoError(t, err)

	assert.Equal(t, engine.InvalidParameters, s.Result().Status)
	hist, violin := s.Figures()
	assert.Equal(t, chart.Alert, hist.Style)
	assert.Equal(t, "Invalid shape parameters for gamma distribution", violin.Title)
}

func TestSetParameterErrors(t *testing.T) {
	c := newCoordinator()
	s := NewState()

	_, err := c.SetParameter(s, "loc", 1, SurfaceInput)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	require.NoError(t, c.Select(s, distribution.Continuous, "norm"))
	before := s.Evaluations()

	_, err = c.SetParameter(s, "shape", 1, SurfaceInput)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = c.SetParameter(s, "loc", 1, Surface("knob"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	assert.Equal(t, before, s.Evaluations())
	assert.Equal(t, []float64{0, 1}, s.Values())
}

func TestParseSurface(t *testing.T) {
	got, ok := ParseSurface("slider")
	assert.True(t, ok)
	assert.Equal(t, SurfaceSlider, got)

	_, ok = ParseSurface("dial")
	assert.False(t, ok)
}
