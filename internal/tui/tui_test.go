package tui

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/adapters/catalog"
	"distviz/domain/distribution"
	"distviz/internal/chart"
	"distviz/internal/engine"
	"distviz/internal/errors"
	"distviz/internal/schema"
	"distviz/internal/view"
)

func newExplorer() Explorer {
	coord := view.NewCoordinator(catalog.MustNew(), engine.New(rand.NewPCG(7, 11)), nil)
	return NewExplorer(coord)
}

func press(t *testing.T, m Explorer, keys ...tea.KeyMsg) Explorer {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Explorer)
		require.True(t, ok)
	}
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"loc=1.5", " scale = 2 "})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"loc": 1.5, "scale": 2}, got)

	_, err = ParseAssignments([]string{"loc"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = ParseAssignments([]string{"loc=abc"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestResolveValues(t *testing.T) {
	d, err := catalog.MustNew().Lookup(distribution.Continuous, "norm")
	require.NoError(t, err)
	widgets := schema.Derive(d).Widgets

	values, err := ResolveValues(d, widgets, map[string]float64{"scale": 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3}, values)

	_, err = ResolveValues(d, widgets, map[string]float64{"mu": 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loc, scale")
}

func TestPlotAndReport(t *testing.T) {
	d, err := catalog.MustNew().Lookup(distribution.Continuous, "norm")
	require.NoError(t, err)
	values := []float64{0, 1}
	res := engine.New(rand.NewPCG(1, 2)).Evaluate(d, values)
	hist, _ := chart.Build(res, d, values)

	plot := Plot(hist)
	assert.Contains(t, plot, "% per bin over")

	report := Report(hist, res)
	assert.Contains(t, report, "norm distribution histogram | loc:0 | scale:1")
	assert.Contains(t, report, "median")
	assert.Contains(t, report, "mean")
}

func TestReportInvalid(t *testing.T) {
	d, err := catalog.MustNew().Lookup(distribution.Continuous, "norm")
	require.NoError(t, err)
	values := []float64{0, -1}
	res := engine.New(rand.NewPCG(1, 2)).Evaluate(d, values)
	hist, _ := chart.Build(res, d, values)

	assert.Equal(t, "Invalid scale parameter for norm distribution\n", Report(hist, res))
	assert.Equal(t, hist.Title, Plot(hist))
}

func TestDescribe(t *testing.T) {
	d, err := catalog.MustNew().Lookup(distribution.Continuous, "norm")
	require.NoError(t, err)

	out := Describe(d, schema.Derive(d))
	assert.True(t, strings.HasPrefix(out, "norm | -inf to inf"))
	assert.Contains(t, out, "scale")
	assert.Contains(t, out, "scipy.stats.norm.html")
}

func TestExplorerSelectsFamily(t *testing.T) {
	m := newExplorer()
	assert.Contains(t, m.View(), "continuous")

	m = press(t, m, key(tea.KeyEnter))
	s := m.State()
	require.True(t, s.HasSelection())
	assert.Equal(t, m.names[distribution.Continuous][0], s.Selected(distribution.Continuous))
	assert.Equal(t, 1, s.Evaluations())
	assert.Contains(t, m.View(), s.Header())
}

func TestExplorerTabSwitchesClass(t *testing.T) {
	m := newExplorer()
	m = press(t, m, key(tea.KeyTab), key(tea.KeyEnter))

	s := m.State()
	assert.Equal(t, distribution.Discrete, s.Descriptor().Class)
	assert.Empty(t, s.Selected(distribution.Continuous))
}

func TestExplorerSliderRefreshesInputOnly(t *testing.T) {
	m := newExplorer()
	m = press(t, m, key(tea.KeyEnter))
	before := m.State().Parameters()[0]

	m = press(t, m, key(tea.KeyRight))
	after := m.State().Parameters()[0]

	assert.InDelta(t, before.Value+before.Step, after.Value, 1e-9)
	assert.Equal(t, []view.Surface{view.SurfaceInput}, m.lastRefresh)
	assert.Equal(t, 2, m.State().Evaluations())
}

func TestExplorerTypedValueBeyondSlider(t *testing.T) {
	m := newExplorer()
	m = press(t, m, key(tea.KeyEnter))

	// first parameter, clear the prefilled buffer and type an out-of-range value
	m = press(t, m, key(tea.KeyEnter))
	require.True(t, m.editing)
	for range len(m.editBuf) {
		m = press(t, m, key(tea.KeyBackspace))
	}
	m = press(t, m, runes("250"), key(tea.KeyEnter))

	p := m.State().Parameters()[0]
	assert.Equal(t, 250.0, p.Value)
	assert.Equal(t, p.SliderDomain.Upper, p.SliderValue())
	assert.Equal(t, []view.Surface{view.SurfaceSlider}, m.lastRefresh)
}

func TestExplorerEmptyInputIgnored(t *testing.T) {
	m := newExplorer()
	m = press(t, m, key(tea.KeyEnter))
	evaluations := m.State().Evaluations()

	m = press(t, m, key(tea.KeyEnter))
	for range len(m.editBuf) {
		m = press(t, m, key(tea.KeyBackspace))
	}
	m = press(t, m, key(tea.KeyEnter))

	assert.False(t, m.editing)
	assert.Equal(t, evaluations, m.State().Evaluations())
	assert.Empty(t, m.err)
}

func TestExplorerInvalidParametersShowAlert(t *testing.T) {
	m := newExplorer()
	// norm lives in the continuous list; walk to it
	for i, name := range m.names[distribution.Continuous] {
		if name == "norm" {
			m.cursor = i
		}
	}
	m = press(t, m, key(tea.KeyEnter), key(tea.KeyDown), key(tea.KeyEnter))
	for range len(m.editBuf) {
		m = press(t, m, key(tea.KeyBackspace))
	}
	m = press(t, m, runes("-1"), key(tea.KeyEnter))

	assert.False(t, m.State().Result().Valid())
	assert.Contains(t, m.View(), "Invalid scale parameter for norm distribution")
}

func TestExplorerBackToMenu(t *testing.T) {
	m := newExplorer()
	m = press(t, m, key(tea.KeyEnter), key(tea.KeyEsc))
	assert.Equal(t, screenMenu, m.screen)
	assert.True(t, m.State().HasSelection())
}
