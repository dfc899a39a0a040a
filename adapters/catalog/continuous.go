package catalog

import (
	"math"
	"math/rand/v2"

	"distviz/domain/distribution"

	"gonum.org/v1/gonum/stat/distuv"
)

func positiveShape(name string) distribution.ParameterSpec {
	return distribution.ParameterSpec{Name: name, Domain: distribution.Bounds{Lower: 0, Upper: math.Inf(1)}}
}

func allPositive(shape []float64) bool { return positive(shape...) }

// continuousDefinitions declares every continuous family, in catalog order
func continuousDefinitions() []distribution.Definition {
	inf := math.Inf(1)
	full := distribution.Unbounded()
	half := distribution.NonNegative()

	return []distribution.Definition{
		{
			Name: "alpha", LongName: "Alpha", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("a")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				a := s[0]
				q := distuv.UnitNormal.Quantile(uniformOpen(rng) * distuv.UnitNormal.CDF(a))
				return 1 / (a - q)
			},
		},
		{
			Name: "beta", LongName: "Beta", Support: distribution.Unit(),
			Shapes: []distribution.ParameterSpec{positiveShape("a"), positiveShape("b")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return distuv.Beta{Alpha: s[0], Beta: s[1], Src: rng}.Rand()
			},
		},
		{
			Name: "cauchy", LongName: "Cauchy", Support: full,
			Draw: fixed(func(rng *rand.Rand) float64 {
				return math.Tan(math.Pi * (uniformOpen(rng) - 0.5))
			}),
		},
		{
			Name: "chi", LongName: "Chi", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("df")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return math.Sqrt(distuv.ChiSquared{K: s[0], Src: rng}.Rand())
			},
		},
		{
			Name: "chi2", LongName: "Chi-squared", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("df")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return distuv.ChiSquared{K: s[0], Src: rng}.Rand()
			},
		},
		{
			Name: "cosine", LongName: "Cosine", Support: distribution.Bounds{Lower: -math.Pi, Upper: math.Pi},
			Draw: fixed(cosineVariate),
		},
		{
			Name: "crystalball", LongName: "Crystalball", Support: full,
			Shapes: []distribution.ParameterSpec{
				positiveShape("beta"),
				{Name: "m", Domain: distribution.Bounds{Lower: 1, Upper: inf}},
			},
			Check: func(s []float64) bool { return s[0] > 0 && s[1] > 1 },
			Draw:  crystalballVariate,
		},
		{
			Name: "expon", LongName: "Exponential", Support: half,
			Draw: fixed(func(rng *rand.Rand) float64 {
				return distuv.Exponential{Rate: 1, Src: rng}.Rand()
			}),
		},
		{
			Name: "exponnorm", LongName: "Exponentially modified Normal", Support: full,
			Shapes: []distribution.ParameterSpec{positiveShape("K")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return standardNormal(rng) + s[0]*distuv.Exponential{Rate: 1, Src: rng}.Rand()
			},
		},
		{
			Name: "f", LongName: "F", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("dfn"), positiveShape("dfd")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return distuv.F{D1: s[0], D2: s[1], Src: rng}.Rand()
			},
		},
		{
			Name: "fisk", LongName: "Fisk (log-logistic)", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("c")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				u := uniformOpen(rng)
				return math.Pow(u/(1-u), 1/s[0])
			},
		},
		{
			Name: "gamma", LongName: "Gamma", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("a")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return gammaVariate(rng, s[0])
			},
		},
		{
			Name: "laplace", LongName: "Laplace", Support: full,
			Draw: fixed(func(rng *rand.Rand) float64 {
				return distuv.Laplace{Mu: 0, Scale: 1, Src: rng}.Rand()
			}),
		},
		{
			Name: "levy", LongName: "Levy", Support: half,
			Draw: fixed(func(rng *rand.Rand) float64 {
				z := standardNormal(rng)
				return 1 / (z * z)
			}),
		},
		{
			Name: "logistic", LongName: "Logistic (or Sech-squared)", Support: full,
			Draw: fixed(func(rng *rand.Rand) float64 {
				u := uniformOpen(rng)
				return math.Log(u / (1 - u))
			}),
		},
		{
			Name: "lognorm", LongName: "Log-normal", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("s")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return distuv.LogNormal{Mu: 0, Sigma: s[0], Src: rng}.Rand()
			},
		},
		{
			Name: "loguniform", LongName: "Log-uniform (reciprocal)", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("a"), positiveShape("b")},
			Check:  func(s []float64) bool { return s[0] > 0 && s[1] > s[0] },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				la, lb := math.Log(s[0]), math.Log(s[1])
				return math.Exp(la + rng.Float64()*(lb-la))
			},
		},
		{
			Name: "maxwell", LongName: "Maxwell", Support: half,
			Draw: fixed(func(rng *rand.Rand) float64 {
				return math.Sqrt(distuv.ChiSquared{K: 3, Src: rng}.Rand())
			}),
		},
		{
			Name: "mielke", LongName: "Mielke Beta-Kappa / Dagum", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("k"), positiveShape("s")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				k, sh := s[0], s[1]
				w := math.Pow(uniformOpen(rng), sh/k)
				return math.Pow(w/(1-w), 1/sh)
			},
		},
		{
			Name: "moyal", LongName: "Moyal", Support: full,
			Draw: fixed(func(rng *rand.Rand) float64 {
				z := standardNormal(rng)
				return -math.Log(z * z)
			}),
		},
		{
			Name: "nakagami", LongName: "Nakagami", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("nu")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return math.Sqrt(gammaVariate(rng, s[0]) / s[0])
			},
		},
		{
			Name: "norm", Support: full,
			Draw: fixed(standardNormal),
		},
		{
			Name: "pareto", LongName: "Pareto", Support: distribution.Bounds{Lower: 1, Upper: inf},
			Shapes: []distribution.ParameterSpec{positiveShape("b")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return distuv.Pareto{Xm: 1, Alpha: s[0], Src: rng}.Rand()
			},
		},
		{
			Name: "powerlaw", LongName: "Power-function", Support: distribution.Unit(),
			Shapes: []distribution.ParameterSpec{positiveShape("a")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return math.Pow(uniformOpen(rng), 1/s[0])
			},
		},
		{
			Name: "rayleigh", LongName: "Rayleigh", Support: half,
			Draw: fixed(func(rng *rand.Rand) float64 {
				return math.Sqrt(-2 * math.Log(uniformOpen(rng)))
			}),
		},
		{
			Name: "rice", LongName: "Rice", Support: half,
			Shapes: []distribution.ParameterSpec{{Name: "b", Domain: half}},
			Check:  func(s []float64) bool { return s[0] >= 0 },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return math.Hypot(standardNormal(rng)+s[0], standardNormal(rng))
			},
		},
		{
			Name: "semicircular", LongName: "Semicircular", Support: distribution.Bounds{Lower: -1, Upper: 1},
			Draw: fixed(func(rng *rand.Rand) float64 {
				// x coordinate of a uniform point in the unit disk
				return math.Sqrt(rng.Float64()) * math.Cos(2*math.Pi*rng.Float64())
			}),
		},
		{
			Name: "t", LongName: "Student's t", Support: full,
			Shapes: []distribution.ParameterSpec{positiveShape("df")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: s[0], Src: rng}.Rand()
			},
		},
		{
			Name: "trapezoid", LongName: "Trapezoidal", Support: distribution.Unit(),
			Shapes: []distribution.ParameterSpec{
				{Name: "c", Domain: distribution.Unit()},
				{Name: "d", Domain: distribution.Unit()},
			},
			Check: func(s []float64) bool {
				c, d := s[0], s[1]
				return c >= 0 && c <= 1 && d >= 0 && d <= 1 && d >= c
			},
			Draw: trapezoidVariate,
		},
		{
			Name: "weibull_min", LongName: "Weibull minimum", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("c")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return distuv.Weibull{K: s[0], Lambda: 1, Src: rng}.Rand()
			},
		},
		{
			Name: "weibull_max", LongName: "Weibull maximum", Support: distribution.Bounds{Lower: -inf, Upper: 0},
			Shapes: []distribution.ParameterSpec{positiveShape("c")},
			Check:  allPositive,
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return -distuv.Weibull{K: s[0], Lambda: 1, Src: rng}.Rand()
			},
		},
		{
			Name: "uniform", LongName: "Uniform", Support: distribution.Unit(),
			Draw: fixed(func(rng *rand.Rand) float64 {
				return distuv.Uniform{Min: 0, Max: 1, Src: rng}.Rand()
			}),
		},
	}
}

// cosineVariate uses rejection from a uniform proposal on [-pi, pi]
func cosineVariate(rng *rand.Rand) float64 {
	for {
		x := math.Pi * (2*rng.Float64() - 1)
		if rng.Float64() <= (1+math.Cos(x))/2 {
			return x
		}
	}
}

// crystalballVariate inverts the piecewise cdf: power-law tail below -beta, Gaussian core above
func crystalballVariate(rng *rand.Rand, s []float64) float64 {
	beta, m := s[0], s[1]
	tail := m / beta / (m - 1) * math.Exp(-beta*beta/2)
	core := math.Sqrt(math.Pi/2) * (1 + math.Erf(beta/math.Sqrt2))
	norm := 1 / (tail + core)

	u := uniformOpen(rng)
	if u < norm*tail {
		logA := m*math.Log(m/beta) - beta*beta/2
		b := m/beta - beta
		return b - math.Exp((math.Log(u*(m-1)/norm)-logA)/(1-m))
	}
	e := (u/norm-tail)/math.Sqrt(math.Pi/2) - math.Erf(beta/math.Sqrt2)
	return math.Sqrt2 * math.Erfinv(math.Min(e, math.Nextafter(1, 0)))
}

// trapezoidVariate inverts the cdf of the trapezoid on [0, 1] with plateau [c, d]
func trapezoidVariate(rng *rand.Rand, s []float64) float64 {
	c, d := s[0], s[1]
	h := 2 / (1 + d - c)
	u := rng.Float64()

	left := h * c / 2
	right := 1 - h*(1-d)/2
	switch {
	case u < left:
		return math.Sqrt(2 * c * u / h)
	case u <= right:
		return c + (u-left)/h
	default:
		return 1 - math.Sqrt(2*(1-d)*(1-u)/h)
	}
}
