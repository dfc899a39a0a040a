package distribution

import (
	"math"
	"math/rand/v2"
	"strconv"
)

// Class separates continuous families from discrete ones
type Class string

const (
	Continuous Class = "continuous"
	Discrete   Class = "discrete"
)

// Classes lists every class in display order
var Classes = []Class{Continuous, Discrete}

// ParseClass converts a form or path value into a Class
func ParseClass(s string) (Class, bool) {
	switch Class(s) {
	case Continuous, Discrete:
		return Class(s), true
	}
	return "", false
}

// Conventional names of the location and scale parameters
const (
	ParamLoc   = "loc"
	ParamScale = "scale"
)

// Bounds is a closed interval whose ends may be infinite
type Bounds struct {
	Lower float64
	Upper float64
}

// Unbounded returns (-inf, inf)
func Unbounded() Bounds {
	return Bounds{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// NonNegative returns [0, inf)
func NonNegative() Bounds {
	return Bounds{Lower: 0, Upper: math.Inf(1)}
}

// Unit returns [0, 1]
func Unit() Bounds {
	return Bounds{Lower: 0, Upper: 1}
}

// IsFinite reports whether both ends are finite
func (b Bounds) IsFinite() bool {
	return !math.IsInf(b.Lower, 0) && !math.IsInf(b.Upper, 0)
}

// Midpoint of the interval
func (b Bounds) Midpoint() float64 {
	return (b.Lower + b.Upper) / 2
}

// Contains reports whether x lies within the interval
func (b Bounds) Contains(x float64) bool {
	return x >= b.Lower && x <= b.Upper
}

// Clamp replaces infinite ends with -limit / +limit
func (b Bounds) Clamp(limit float64) Bounds {
	out := b
	if math.IsInf(out.Lower, -1) {
		out.Lower = -limit
	}
	if math.IsInf(out.Upper, 1) {
		out.Upper = limit
	}
	return out
}

// ParameterSpec describes one named parameter of a family
type ParameterSpec struct {
	Name     string
	Domain   Bounds
	Integral bool
}

// IsLocScale reports whether the parameter is loc or scale rather than a shape parameter
func (p ParameterSpec) IsLocScale() bool {
	return p.Name == ParamLoc || p.Name == ParamScale
}

// ShapeCheck reports whether a shape argument vector is admissible
type ShapeCheck func(shape []float64) bool

// Variate draws one standardized variate (loc 0, scale 1) for the given shape arguments
type Variate func(rng *rand.Rand, shape []float64) float64

// Descriptor is one distribution family of the catalog.
//
// Params holds shape parameters first, then loc and, for continuous families, scale.
// Validate and Sample both consume values in exactly that order.
type Descriptor struct {
	Name     string
	Class    Class
	Support  Bounds
	Params   []ParameterSpec
	LongName string
	Doc      string

	check ShapeCheck
	draw  Variate
	// prepare optionally precomputes a variate for a fixed shape vector, e.g. a pmf table
	prepare func(shape []float64) Variate
}

// FormatNumber renders a bound or parameter value: integers without a fraction,
// infinities as inf / -inf, very large magnitudes in exponent form
func FormatNumber(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	case math.IsNaN(x):
		return "nan"
	case x == 0:
		// covers -0
		return "0"
	case math.Abs(x) >= 1e21:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
