// Package tui renders evaluations for the terminal: plain-text reports for the CLI and an
// interactive explorer built on bubbletea.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"

	"distviz/domain/distribution"
	"distviz/internal/chart"
	"distviz/internal/engine"
	"distviz/internal/errors"
	"distviz/internal/schema"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// ParseAssignments reads "name=value" pairs as given on the command line
func ParseAssignments(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("parameter %q must look like name=value", pair))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("parameter %s: %q is not a number", name, raw))
		}
		out[name] = v
	}
	return out, nil
}

// ResolveValues fills the widget defaults and overrides them with the given assignments.
// Names the family does not declare are rejected.
func ResolveValues(d *distribution.Descriptor, widgets []schema.Widget, assigned map[string]float64) ([]float64, error) {
	values := schema.Defaults(widgets)
	for name, v := range assigned {
		i := d.Index(name)
		if i < 0 {
			return nil, errors.InvalidInput(fmt.Sprintf("%s has no parameter %q (have %s)",
				d.Name, name, strings.Join(d.ParamNames(), ", ")))
		}
		values[i] = v
	}
	return values, nil
}

// Plot draws the histogram bar heights as an ascii line graph. Empty figures yield the title only.
func Plot(fig chart.Figure) string {
	if len(fig.Bins) == 0 {
		return fig.Title
	}
	data := make([]float64, len(fig.Bins))
	for i, b := range fig.Bins {
		data[i] = b.Percent
	}
	// asciigraph needs at least two points to draw a line
	if len(data) == 1 {
		data = append(data, data[0])
	}

	lo, hi := fig.Bins[0].Lower, fig.Bins[len(fig.Bins)-1].Upper
	caption := fmt.Sprintf("%% per bin over [%s, %s]", distribution.FormatNumber(lo), distribution.FormatNumber(hi))
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// Summary is the one-line quantile and moment report of an evaluation
func Summary(res engine.Result) string {
	if !res.Valid() {
		return res.Message
	}
	return fmt.Sprintf("%s | mean %s | std %s",
		chart.ViolinTitle(res.Quantiles),
		distribution.FormatNumber(res.Mean),
		distribution.FormatNumber(res.StdDev))
}

// Report is the full text block printed by the sample command
func Report(hist chart.Figure, res engine.Result) string {
	var b strings.Builder
	if res.Valid() {
		b.WriteString(hist.Title)
		b.WriteString("\n\n")
		b.WriteString(Plot(hist))
		b.WriteString("\n\n")
	}
	b.WriteString(Summary(res))
	b.WriteString("\n")
	return b.String()
}

// Describe lists a family's header, parameters and documentation notes
func Describe(d *distribution.Descriptor, derivation schema.Derivation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", derivation.Header)
	fmt.Fprintf(&b, "support: %s\n\n", formatBounds(d.Support))
	for _, w := range derivation.Widgets {
		fmt.Fprintf(&b, "  %-10s domain %-18s slider %-16s default %s step %s\n",
			w.Name,
			formatBounds(w.InputDomain),
			formatBounds(w.SliderDomain),
			distribution.FormatNumber(w.Default),
			distribution.FormatNumber(w.Step))
	}
	if derivation.Description.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", derivation.Description.Notes)
	}
	fmt.Fprintf(&b, "\ndocs: %s\n", derivation.Description.DocsURL)
	return b.String()
}

func formatBounds(b distribution.Bounds) string {
	return fmt.Sprintf("[%s, %s]", distribution.FormatNumber(b.Lower), distribution.FormatNumber(b.Upper))
}
