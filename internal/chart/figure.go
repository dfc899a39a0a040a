// Package chart turns an evaluation into histogram and violin figures and renders
// them as echarts pages.
package chart

import (
	"fmt"
	"strings"

	"distviz/domain/distribution"
	"distviz/internal/engine"
)

// Kind of figure
type Kind int

const (
	Histogram Kind = iota
	Violin
)

func (k Kind) String() string {
	if k == Violin {
		return "violin"
	}
	return "histogram"
}

// Style selects the figure's palette
type Style int

const (
	// Placeholder is the neutral look shown before any selection
	Placeholder Style = iota
	// Dark is the regular look of a sampled figure
	Dark
	// Alert marks an invalid parameter combination
	Alert
)

// Bin is one histogram bar over [Lower, Upper)
type Bin struct {
	Lower   float64
	Upper   float64
	Percent float64
}

// Center of the bin
func (b Bin) Center() float64 {
	return (b.Lower + b.Upper) / 2
}

// Point on the violin envelope
type Point struct {
	X       float64
	Density float64
}

// Figure is a renderable chart description. It holds no rendering state.
type Figure struct {
	Kind      Kind
	Style     Style
	Title     string
	XLabel    string
	YLabel    string
	Bins      []Bin
	Envelope  []Point
	Quantiles engine.Quantiles
}

// Empty reports whether the figure carries no series
func (f Figure) Empty() bool {
	return len(f.Bins) == 0 && len(f.Envelope) == 0
}

// Placeholders returns the neutral histogram and violin figures
func Placeholders() (Figure, Figure) {
	return Figure{Kind: Histogram, Style: Placeholder}, Figure{Kind: Violin, Style: Placeholder}
}

// Build converts an evaluation into its histogram and violin figures
func Build(res engine.Result, d *distribution.Descriptor, values []float64) (Figure, Figure) {
	if !res.Valid() {
		return Figure{Kind: Histogram, Style: Alert, Title: res.Message},
			Figure{Kind: Violin, Style: Alert, Title: res.Message}
	}

	hist := Figure{
		Kind:   Histogram,
		Style:  Dark,
		Title:  HistogramTitle(d, values),
		XLabel: "Value",
		YLabel: "Percent",
		Bins:   Bins(res.Values, d.Class == distribution.Discrete),
	}

	violin := Figure{
		Kind:      Violin,
		Style:     Dark,
		Title:     ViolinTitle(res.Quantiles),
		XLabel:    "Value",
		YLabel:    d.Name,
		Envelope:  Envelope(res.Values),
		Quantiles: res.Quantiles,
	}

	return hist, violin
}

// HistogramTitle is "<name> distribution histogram | <p1>:<v1> | <p2>:<v2> ..."
func HistogramTitle(d *distribution.Descriptor, values []float64) string {
	parts := []string{d.Name + " distribution histogram"}
	for i, p := range d.Params {
		if i >= len(values) {
			break
		}
		parts = append(parts, fmt.Sprintf("%s:%s", p.Name, distribution.FormatNumber(values[i])))
	}
	return strings.Join(parts, " | ")
}

// ViolinTitle is "min <v> | q1 <v> | median <v> | q3 <v> | max <v>"
func ViolinTitle(q engine.Quantiles) string {
	labeled := q.Labeled()
	parts := make([]string, len(labeled))
	for i, lv := range labeled {
		parts[i] = fmt.Sprintf("%s %s", lv.Label, distribution.FormatNumber(lv.Value))
	}
	return strings.Join(parts, " | ")
}
