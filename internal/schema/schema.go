// Package schema derives the parameter-panel layout of a distribution family:
// its header line, description text and one widget per parameter.
package schema

import (
	"fmt"
	"html/template"
	"math"

	"distviz/domain/distribution"
)

const (
	// SliderLimit replaces infinite parameter bounds on sliders
	SliderLimit = 100.0
	sliderSteps = 100

	docsBaseURL = "https://docs.scipy.org/doc/scipy/reference/generated/scipy.stats."
)

// Docs link decoration: the rendered notes lose their LaTeX, the reference page keeps it
const (
	DocsLogoURL   = "https://docs.scipy.org/doc/scipy/_static/logo.svg"
	DocsLogoTitle = "open scipy docs to see properly formatted LaTeX"
)

// HelpText is shown above the parameter widgets
const HelpText = "vary parameters with sliders or text boxes (full range allowed)"

// Widget is one parameter's slider + numeric input pair
type Widget struct {
	Name         string
	Label        string
	InputDomain  distribution.Bounds
	SliderDomain distribution.Bounds
	Default      float64
	Step         float64
	Marks        []float64
}

// Description holds the documentation shown beside the charts
type Description struct {
	Notes    string
	HTML     template.HTML
	DocsURL  string
	DocsText string
}

// Derivation is the full panel layout for one family
type Derivation struct {
	Header      string
	Description Description
	Widgets     []Widget
	Help        string
}

// Derive builds the header, description and widgets of a family
func Derive(d *distribution.Descriptor) Derivation {
	widgets := make([]Widget, len(d.Params))
	for i, p := range d.Params {
		widgets[i] = deriveWidget(p)
	}

	notes := ExtractNotes(d.Doc)

	return Derivation{
		Header: Header(d),
		Description: Description{
			Notes:    notes,
			HTML:     RenderNotes(notes),
			DocsURL:  DocsURL(d.Name),
			DocsText: DocsText(d.Name),
		},
		Widgets: widgets,
		Help:    HelpText,
	}
}

// Header is "<name> | <low> to <high>" followed by " | <long name>" when one exists
func Header(d *distribution.Descriptor) string {
	header := fmt.Sprintf("%s | %s to %s",
		d.Name,
		distribution.FormatNumber(d.Support.Lower),
		distribution.FormatNumber(d.Support.Upper))
	if d.LongName != "" {
		header += " | " + d.LongName
	}
	return header
}

// DocsURL links a family name to its reference page
func DocsURL(name string) string {
	return docsBaseURL + name + ".html"
}

// DocsText is the visible text of the reference link, "scipy.stats.<name>"
func DocsText(name string) string {
	return "scipy.stats." + name
}

// Defaults returns the initial value of every widget, in schema order
func Defaults(widgets []Widget) []float64 {
	values := make([]float64, len(widgets))
	for i, w := range widgets {
		values[i] = w.Default
	}
	return values
}

// Label is "<name> [<low>, <high>]" over the unclamped domain
func Label(p distribution.ParameterSpec) string {
	return fmt.Sprintf("%s [%s, %s]",
		p.Name,
		distribution.FormatNumber(p.Domain.Lower),
		distribution.FormatNumber(p.Domain.Upper))
}

func deriveWidget(p distribution.ParameterSpec) Widget {
	slider := p.Domain.Clamp(SliderLimit)

	step := 1.0
	if !p.Integral {
		step = (slider.Upper - slider.Lower) / sliderSteps
	}

	return Widget{
		Name:         p.Name,
		Label:        Label(p),
		InputDomain:  p.Domain,
		SliderDomain: slider,
		Default:      defaultValue(p, slider),
		Step:         step,
		Marks:        []float64{slider.Lower, slider.Upper},
	}
}

// defaultValue is 0 for loc, 1 for scale, otherwise the slider midpoint.
// Integral parameters round the midpoint so the default stays admissible.
func defaultValue(p distribution.ParameterSpec, slider distribution.Bounds) float64 {
	switch p.Name {
	case distribution.ParamLoc:
		return 0
	case distribution.ParamScale:
		return 1
	}
	mid := slider.Midpoint()
	if p.Integral {
		return math.Round(mid)
	}
	return mid
}

// ClampToSlider pins a value to the slider range; the numeric input keeps the exact value
func (w Widget) ClampToSlider(v float64) float64 {
	if v < w.SliderDomain.Lower {
		return w.SliderDomain.Lower
	}
	if v > w.SliderDomain.Upper {
		return w.SliderDomain.Upper
	}
	return v
}

// Find returns the widget with the given name
func Find(widgets []Widget, name string) (Widget, bool) {
	for _, w := range widgets {
		if w.Name == name {
			return w, true
		}
	}
	return Widget{}, false
}
