package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Palette of the dark figure style
const (
	Background = "black"
	TextColor  = "khaki"
	GridColor  = "blueviolet"
	AlertColor = "red"
)

const (
	figureWidth  = "100%"
	figureHeight = "420px"
)

// Render writes fig as a standalone echarts page: a bar chart for histograms,
// a mirrored area line chart for violins
func Render(fig Figure, w io.Writer) error {
	if fig.Kind == Violin && !fig.Empty() {
		return newViolinChart(fig).Render(w)
	}
	return newHistogramChart(fig).Render(w)
}

func globalOpts(fig Figure) []charts.GlobalOpts {
	init := opts.Initialization{
		PageTitle: fig.Kind.String(),
		Width:     figureWidth,
		Height:    figureHeight,
		Theme:     types.ThemeChalk,
	}
	title := opts.Title{Title: fig.Title}

	switch fig.Style {
	case Placeholder:
		init.Theme = types.ThemeWesteros
	case Alert:
		init.BackgroundColor = Background
		title.TitleStyle = &opts.TextStyle{Color: AlertColor}
	default:
		init.BackgroundColor = Background
		title.TitleStyle = &opts.TextStyle{Color: TextColor}
	}

	grid := &opts.SplitLine{Show: true, LineStyle: &opts.LineStyle{Color: GridColor}}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(title),
		charts.WithLegendOpts(opts.Legend{Show: false}),
		charts.WithTooltipOpts(opts.Tooltip{Show: !fig.Empty(), Trigger: "axis"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: !fig.Empty(),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XLabel, SplitLine: grid}),
		charts.WithYAxisOpts(opts.YAxis{Name: fig.YLabel, SplitLine: grid}),
	}
}

// convertBins produces the bar heights and their center labels
func convertBins(bins []Bin) ([]string, []opts.BarData) {
	labels := make([]string, len(bins))
	items := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = fmt.Sprintf("%.4g", b.Center())
		items[i] = opts.BarData{Value: b.Percent}
	}
	return labels, items
}

func newHistogramChart(fig Figure) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(fig)...)

	if fig.Empty() {
		return bar
	}

	labels, items := convertBins(fig.Bins)
	bar.SetXAxis(labels).AddSeries("Percent", items,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: GridColor}),
		charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "1%"}),
	)
	return bar
}

// convertEnvelope mirrors the density around zero
func convertEnvelope(points []Point) (upper, lower []opts.LineData) {
	upper = make([]opts.LineData, len(points))
	lower = make([]opts.LineData, len(points))
	for i, p := range points {
		upper[i] = opts.LineData{Value: [2]float64{p.X, p.Density}}
		lower[i] = opts.LineData{Value: [2]float64{p.X, -p.Density}}
	}
	return upper, lower
}

func newViolinChart(fig Figure) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(fig)...)
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{
			Name:      fig.XLabel,
			Type:      "value",
			SplitLine: &opts.SplitLine{Show: true, LineStyle: &opts.LineStyle{Color: GridColor}},
		}),
	)

	upper, lower := convertEnvelope(fig.Envelope)
	series := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: true, ShowSymbol: false}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: GridColor, Opacity: 0.6}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: TextColor}),
	}

	q := fig.Quantiles
	line.AddSeries("density", upper, append(series,
		charts.WithMarkLineNameXAxisItemOpts(
			opts.MarkLineNameXAxisItem{Name: "q1", XAxis: q.Q1},
			opts.MarkLineNameXAxisItem{Name: "median", XAxis: q.Median},
			opts.MarkLineNameXAxisItem{Name: "q3", XAxis: q.Q3},
		),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{Symbol: []string{"none"}}),
	)...)
	line.AddSeries("mirror", lower, series...)
	return line
}
