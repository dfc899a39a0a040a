package schema

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/adapters/catalog"
	"distviz/domain/distribution"
)

func TestDeriveNorm(t *testing.T) {
	cat := catalog.MustNew()
	d, err := cat.Lookup(distribution.Continuous, "norm")
	require.NoError(t, err)

	got := Derive(d)

	assert.Equal(t, "norm | -inf to inf", got.Header)
	assert.Equal(t, "https://docs.scipy.org/doc/scipy/reference/generated/scipy.stats.norm.html", got.Description.DocsURL)
	assert.Equal(t, "scipy.stats.norm", got.Description.DocsText)
	assert.Equal(t, HelpText, got.Help)
	assert.Contains(t, got.Description.Notes, "for a real number `x`.")
	assert.Contains(t, string(got.Description.HTML), "<code>x</code>")

	require.Len(t, got.Widgets, 2)
	loc, scale := got.Widgets[0], got.Widgets[1]

	assert.Equal(t, "loc", loc.Name)
	assert.Equal(t, "loc [-inf, inf]", loc.Label)
	assert.Equal(t, 0.0, loc.Default)
	assert.Equal(t, distribution.Bounds{Lower: -100, Upper: 100}, loc.SliderDomain)
	assert.True(t, math.IsInf(loc.InputDomain.Lower, -1))

	assert.Equal(t, "scale", scale.Name)
	assert.Equal(t, "scale [0, inf]", scale.Label)
	assert.Equal(t, 1.0, scale.Default)
	assert.Equal(t, distribution.Bounds{Lower: 0, Upper: 100}, scale.SliderDomain)
	assert.Equal(t, []float64{0, 100}, scale.Marks)
}

func TestDeriveGamma(t *testing.T) {
	cat := catalog.MustNew()
	d, err := cat.Lookup(distribution.Continuous, "gamma")
	require.NoError(t, err)

	got := Derive(d)

	assert.True(t, strings.HasPrefix(got.Header, "gamma | 0 to inf"))
	require.Len(t, got.Widgets, 3)
	assert.Equal(t, []string{"a", "loc", "scale"}, []string{got.Widgets[0].Name, got.Widgets[1].Name, got.Widgets[2].Name})
	assert.Equal(t, []float64{50, 0, 1}, Defaults(got.Widgets))
	assert.Equal(t, 1.0, got.Widgets[0].Step)
}

func TestDeriveDiscrete(t *testing.T) {
	cat := catalog.MustNew()
	d, err := cat.Lookup(distribution.Discrete, "poisson")
	require.NoError(t, err)

	got := Derive(d)

	names := make([]string, len(got.Widgets))
	for i, w := range got.Widgets {
		names[i] = w.Name
	}
	assert.Equal(t, []string{"mu", "loc"}, names)
	assert.Equal(t, 1.0, got.Widgets[1].Step)
}

func TestDeriveEveryFamily(t *testing.T) {
	cat := catalog.MustNew()
	for _, class := range distribution.Classes {
		for _, d := range cat.All(class) {
			got := Derive(d)
			assert.True(t, strings.HasPrefix(got.Header, d.Name+" | "), d.Name)
			assert.NotEmpty(t, got.Description.Notes, d.Name)
			assert.Len(t, got.Widgets, len(d.Params), d.Name)
			for _, w := range got.Widgets {
				assert.True(t, w.SliderDomain.IsFinite(), "%s.%s", d.Name, w.Name)
				assert.LessOrEqual(t, w.SliderDomain.Lower, w.SliderDomain.Upper, "%s.%s", d.Name, w.Name)
			}
		}
	}
}

func TestClampToSlider(t *testing.T) {
	w := deriveWidget(distribution.ParameterSpec{Name: "loc", Domain: distribution.Unbounded()})

	assert.Equal(t, 100.0, w.ClampToSlider(250))
	assert.Equal(t, -100.0, w.ClampToSlider(-1e9))
	assert.Equal(t, 3.5, w.ClampToSlider(3.5))
}

func TestLabelFiniteDomain(t *testing.T) {
	p := distribution.ParameterSpec{Name: "p", Domain: distribution.Unit()}
	assert.Equal(t, "p [0, 1]", Label(p))
}

func TestFind(t *testing.T) {
	widgets := []Widget{{Name: "a"}, {Name: "loc"}}

	w, ok := Find(widgets, "loc")
	assert.True(t, ok)
	assert.Equal(t, "loc", w.Name)

	_, ok = Find(widgets, "scale")
	assert.False(t, ok)
}

func TestDefaultIsSliderMidpoint(t *testing.T) {
	tests := []struct {
		name string
		spec distribution.ParameterSpec
		want float64
	}{
		{"loc", distribution.ParameterSpec{Name: "loc", Domain: distribution.Unbounded()}, 0},
		{"scale", distribution.ParameterSpec{Name: "scale", Domain: distribution.NonNegative()}, 1},
		{"half line", distribution.ParameterSpec{Name: "a", Domain: distribution.NonNegative()}, 50},
		{"unit", distribution.ParameterSpec{Name: "p", Domain: distribution.Unit()}, 0.5},
		{"real line", distribution.ParameterSpec{Name: "c", Domain: distribution.Unbounded()}, 0},
		{"integral", distribution.ParameterSpec{Name: "n", Domain: distribution.Bounds{Lower: 1, Upper: 100}, Integral: true}, 51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveWidget(tt.spec).Default)
		})
	}
}
