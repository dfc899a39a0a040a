package view

import (
	"fmt"
	"math"

	"github.com/op/go-logging"

	"distviz/domain/distribution"
	"distviz/internal/chart"
	"distviz/internal/engine"
	"distviz/internal/errors"
	"distviz/internal/schema"
	"distviz/ports"
)

// Coordinator applies selection and parameter changes to a State. Every change that
// alters the view runs exactly one evaluate-and-build pass.
type Coordinator struct {
	catalog ports.Catalog
	engine  *engine.Engine
	log     *logging.Logger
}

// NewCoordinator wires the catalog and sampling engine; log may be nil
func NewCoordinator(catalog ports.Catalog, eng *engine.Engine, log *logging.Logger) *Coordinator {
	if log == nil {
		log = logging.MustGetLogger("View")
	}
	return &Coordinator{catalog: catalog, engine: eng, log: log}
}

// Catalog exposes the registry the coordinator resolves names against
func (c *Coordinator) Catalog() ports.Catalog {
	return c.catalog
}

// Select chooses a family, clearing the selection of the other class and resetting
// every parameter to its default. An empty name deselects the class.
func (c *Coordinator) Select(s *State, class distribution.Class, name string) error {
	if name == "" {
		if s.selected[class] != "" {
			c.log.Debugf("[Select] cleared %s selection", class)
			s.reset()
		}
		return nil
	}

	d, err := c.catalog.Lookup(class, name)
	if err != nil {
		return err
	}

	s.reset()
	s.selected[class] = name
	s.descriptor = d
	s.derivation = schema.Derive(d)
	s.values = schema.Defaults(s.derivation.Widgets)

	c.log.Debugf("[Select] %s/%s with %d parameters", class, name, len(s.values))
	c.evaluate(s)
	return nil
}

// SetParameter stores a new value for one parameter and returns the surfaces that must be
// redrawn: every surface except source, which already shows the value.
func (c *Coordinator) SetParameter(s *State, name string, value float64, source Surface) ([]Surface, error) {
	if !s.HasSelection() {
		return nil, errors.InvalidInput("no distribution selected")
	}
	if _, ok := ParseSurface(string(source)); !ok {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown surface %q", source))
	}
	if math.IsNaN(value) {
		return nil, errors.InvalidInput(fmt.Sprintf("parameter %s is not a number", name))
	}

	i := s.descriptor.Index(name)
	if i < 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s has no parameter %q", s.descriptor.Name, name))
	}

	s.values[i] = value
	c.evaluate(s)

	return refreshTargets(source), nil
}

// Reevaluate draws a fresh sample for the current values
func (c *Coordinator) Reevaluate(s *State) {
	if s.HasSelection() {
		c.evaluate(s)
	}
}

func (c *Coordinator) evaluate(s *State) {
	s.result = c.engine.Evaluate(s.descriptor, s.values)
	s.histogram, s.violin = chart.Build(s.result, s.descriptor, s.values)
	s.evaluations++

	if !s.result.Valid() {
		c.log.Infof("[Evaluate] %s: %s", s.descriptor.Name, s.result.Message)
		return
	}
	c.log.Debugf("[Evaluate] %s: %d values, median %v", s.descriptor.Name, len(s.result.Values), s.result.Quantiles.Median)
}

func refreshTargets(source Surface) []Surface {
	out := make([]Surface, 0, len(Surfaces)-1)
	for _, surface := range Surfaces {
		if surface != source {
			out = append(out, surface)
		}
	}
	return out
}
