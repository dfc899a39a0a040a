package distribution

import (
	"math"
	"math/rand/v2"
)

// Definition is the declarative form of a catalog entry. Shapes lists only the shape
// parameters; loc (and scale for continuous families) are appended by NewDescriptor.
type Definition struct {
	Name     string
	LongName string
	Class    Class
	Support  Bounds
	Shapes   []ParameterSpec
	Check    ShapeCheck
	Draw     Variate
	Prepare  func(shape []float64) Variate
}

// NewDescriptor builds a Descriptor with the conventional trailing loc/scale parameters
func NewDescriptor(def Definition) *Descriptor {
	params := make([]ParameterSpec, 0, len(def.Shapes)+2)
	params = append(params, def.Shapes...)
	params = append(params, ParameterSpec{Name: ParamLoc, Domain: Unbounded(), Integral: def.Class == Discrete})
	if def.Class == Continuous {
		params = append(params, ParameterSpec{Name: ParamScale, Domain: NonNegative()})
	}

	return &Descriptor{
		Name:     def.Name,
		Class:    def.Class,
		Support:  def.Support,
		Params:   params,
		LongName: def.LongName,
		check:    def.Check,
		draw:     def.Draw,
		prepare:  def.Prepare,
	}
}

// ParamNames returns parameter names in schema order
func (d *Descriptor) ParamNames() []string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}
	return names
}

// Index returns the schema position of a parameter, or -1
func (d *Descriptor) Index(name string) int {
	for i, p := range d.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// ShapeCount is the number of shape parameters
func (d *Descriptor) ShapeCount() int {
	n := 0
	for _, p := range d.Params {
		if !p.IsLocScale() {
			n++
		}
	}
	return n
}

// ShapeArgs drops the entries positionally matching loc and scale
func (d *Descriptor) ShapeArgs(values []float64) []float64 {
	shape := make([]float64, 0, len(values))
	for i, v := range values {
		if i < len(d.Params) && d.Params[i].IsLocScale() {
			continue
		}
		shape = append(shape, v)
	}
	return shape
}

// Validate reports whether the shape arguments are admissible for this family
func (d *Descriptor) Validate(shape []float64) bool {
	if len(shape) != d.ShapeCount() {
		return false
	}

	i := 0
	for _, p := range d.Params {
		if p.IsLocScale() {
			continue
		}
		v := shape[i]
		i++
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if p.Integral && v != math.Trunc(v) {
			return false
		}
	}

	if d.check == nil {
		return true
	}
	return d.check(shape)
}

// locScale extracts loc and scale from a full value vector; scale defaults to 1
func (d *Descriptor) locScale(values []float64) (loc, scale float64) {
	scale = 1
	for i, p := range d.Params {
		if i >= len(values) {
			break
		}
		switch p.Name {
		case ParamLoc:
			loc = values[i]
		case ParamScale:
			scale = values[i]
		}
	}
	return loc, scale
}

// Sample draws count i.i.d. values for the full parameter vector. Callers validate first.
func (d *Descriptor) Sample(values []float64, count int, src rand.Source) []float64 {
	rng := rand.New(src)
	shape := d.ShapeArgs(values)
	loc, scale := d.locScale(values)

	draw := d.draw
	if d.prepare != nil {
		draw = d.prepare(shape)
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = loc + scale*draw(rng, shape)
	}
	return out
}
