// Package view keeps one browser's selection, parameter values and figures, and
// decides which widget surfaces must be refreshed after each change.
package view

import (
	"distviz/domain/distribution"
	"distviz/internal/chart"
	"distviz/internal/engine"
	"distviz/internal/schema"
)

// Surface is one of the two widgets editing a parameter
type Surface string

const (
	SurfaceSlider Surface = "slider"
	SurfaceInput  Surface = "input"
)

// Surfaces lists every surface of a parameter
var Surfaces = []Surface{SurfaceSlider, SurfaceInput}

// ParseSurface converts a form value into a Surface
func ParseSurface(s string) (Surface, bool) {
	switch Surface(s) {
	case SurfaceSlider, SurfaceInput:
		return Surface(s), true
	}
	return "", false
}

// Parameter is a widget with its current value. Value is the single source of truth;
// the slider shows it clamped, the input shows it exactly.
type Parameter struct {
	schema.Widget
	Value float64
}

// SliderValue is the value as displayed by the slider
func (p Parameter) SliderValue() float64 {
	return p.ClampToSlider(p.Value)
}

// InputValue is the value as displayed by the numeric input
func (p Parameter) InputValue() string {
	return distribution.FormatNumber(p.Value)
}

// State is the view of one session. Create it with NewState.
type State struct {
	selected    map[distribution.Class]string
	descriptor  *distribution.Descriptor
	derivation  schema.Derivation
	values      []float64
	result      engine.Result
	histogram   chart.Figure
	violin      chart.Figure
	evaluations int
}

// NewState returns a state with no selection and placeholder figures
func NewState() *State {
	s := &State{}
	s.reset()
	return s
}

func (s *State) reset() {
	s.selected = make(map[distribution.Class]string, len(distribution.Classes))
	s.descriptor = nil
	s.derivation = schema.Derivation{}
	s.values = nil
	s.result = engine.Result{}
	s.histogram, s.violin = chart.Placeholders()
}

// HasSelection reports whether a family is selected
func (s *State) HasSelection() bool {
	return s.descriptor != nil
}

// Selected returns the selected family name of a class, or ""
func (s *State) Selected(class distribution.Class) string {
	return s.selected[class]
}

// Descriptor of the selected family, nil when nothing is selected
func (s *State) Descriptor() *distribution.Descriptor {
	return s.descriptor
}

// Header line of the selected family, "" in the placeholder state
func (s *State) Header() string {
	return s.derivation.Header
}

// Description of the selected family
func (s *State) Description() schema.Description {
	return s.derivation.Description
}

// Help text shown above the widgets; "" when nothing is selected
func (s *State) Help() string {
	return s.derivation.Help
}

// Parameters returns the widgets with their current values, in schema order
func (s *State) Parameters() []Parameter {
	out := make([]Parameter, len(s.derivation.Widgets))
	for i, w := range s.derivation.Widgets {
		out[i] = Parameter{Widget: w, Value: s.values[i]}
	}
	return out
}

// Parameter returns one widget with its current value
func (s *State) Parameter(name string) (Parameter, bool) {
	for i, w := range s.derivation.Widgets {
		if w.Name == name {
			return Parameter{Widget: w, Value: s.values[i]}, true
		}
	}
	return Parameter{}, false
}

// Values returns a copy of the current parameter values in schema order
func (s *State) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Result of the latest evaluation
func (s *State) Result() engine.Result {
	return s.result
}

// Figures returns the latest histogram and violin figures
func (s *State) Figures() (chart.Figure, chart.Figure) {
	return s.histogram, s.violin
}

// Evaluations counts the evaluate-and-build passes run for this state
func (s *State) Evaluations() int {
	return s.evaluations
}
