// Package engine validates parameter vectors and draws fresh samples with their
// summary statistics. Results are never cached.
package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"distviz/domain/distribution"
)

// SampleSize is the number of draws per evaluation
const SampleSize = 5000

// Status is the outcome of one evaluation
type Status int

const (
	Sampled Status = iota
	InvalidParameters
)

func (s Status) String() string {
	switch s {
	case Sampled:
		return "sampled"
	case InvalidParameters:
		return "invalid_parameters"
	}
	return "unknown"
}

// MarshalText lets JSON encoders emit the status name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "sampled":
		*s = Sampled
	case "invalid_parameters":
		*s = InvalidParameters
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// Quantiles of a sample at p = 0, .25, .5, .75, 1, rounded to two decimals
type Quantiles struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Labeled returns the quantiles in display order with their labels
func (q Quantiles) Labeled() []LabeledValue {
	return []LabeledValue{
		{"min", q.Min},
		{"q1", q.Q1},
		{"median", q.Median},
		{"q3", q.Q3},
		{"max", q.Max},
	}
}

// LabeledValue pairs a statistic with its display label
type LabeledValue struct {
	Label string
	Value float64
}

// Result of one evaluation. Values is nil unless Status is Sampled.
type Result struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Values    []float64 `json:"values,omitempty"`
	Quantiles Quantiles `json:"quantiles"`
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"std_dev"`
}

// Valid reports whether the evaluation produced a sample
func (r Result) Valid() bool {
	return r.Status == Sampled
}

// Engine owns the randomness source shared by all evaluations
type Engine struct {
	mu   sync.Mutex
	src  rand.Source
	size int
}

// New creates an engine drawing from src; nil seeds a fresh PCG source
func New(src rand.Source) *Engine {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Engine{src: src, size: SampleSize}
}

// Evaluate validates values against the family's schema and, when admissible, draws a fresh sample
func (e *Engine) Evaluate(d *distribution.Descriptor, values []float64) Result {
	if msg, ok := check(d, values); !ok {
		return Result{Status: InvalidParameters, Message: msg}
	}

	sample := e.draw(d, values)
	return Summarize(sample)
}

func (e *Engine) draw(d *distribution.Descriptor, values []float64) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return d.Sample(values, e.size, e.src)
}

// check applies the arity, finiteness, scale and shape rules in that order
func check(d *distribution.Descriptor, values []float64) (string, bool) {
	shapeMsg := fmt.Sprintf("Invalid shape parameters for %s distribution", d.Name)

	if len(values) != len(d.Params) {
		return shapeMsg, false
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return shapeMsg, false
		}
	}
	if i := d.Index(distribution.ParamScale); i >= 0 && values[i] <= 0 {
		return fmt.Sprintf("Invalid scale parameter for %s distribution", d.Name), false
	}
	if !d.Validate(d.ShapeArgs(values)) {
		return shapeMsg, false
	}
	return "", true
}

// Summarize computes quantiles, mean and standard deviation of a sample
func Summarize(sample []float64) Result {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	res := Result{Status: Sampled, Values: sample}
	if len(sorted) == 0 {
		return res
	}

	q := func(p float64) float64 {
		return round2(stat.Quantile(p, stat.LinInterp, sorted, nil))
	}
	res.Quantiles = Quantiles{
		Min:    q(0),
		Q1:     q(0.25),
		Median: q(0.5),
		Q3:     q(0.75),
		Max:    q(1),
	}

	data := stats.Float64Data(sorted)
	if mean, err := data.Mean(); err == nil {
		res.Mean = round2(mean)
	}
	if sd, err := data.StandardDeviation(); err == nil {
		res.StdDev = round2(sd)
	}
	return res
}

func round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := stats.Round(x, 2)
	if err != nil {
		return x
	}
	return r
}
