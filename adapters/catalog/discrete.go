package catalog

import (
	"math"
	"math/rand/v2"
	"sync"

	"distviz/domain/distribution"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

func countShape(name string) distribution.ParameterSpec {
	return distribution.ParameterSpec{Name: name, Domain: distribution.NonNegative(), Integral: true}
}

func probabilityShape(name string) distribution.ParameterSpec {
	return distribution.ParameterSpec{Name: name, Domain: distribution.Unit()}
}

// discreteDefinitions declares every discrete family, in catalog order
func discreteDefinitions() []distribution.Definition {
	inf := math.Inf(1)
	half := distribution.NonNegative()
	fromOne := distribution.Bounds{Lower: 1, Upper: inf}
	urn := []distribution.ParameterSpec{countShape("M"), countShape("n"), countShape("N")}

	return []distribution.Definition{
		{
			Name: "bernoulli", LongName: "Bernoulli", Support: distribution.Unit(),
			Shapes: []distribution.ParameterSpec{probabilityShape("p")},
			Check:  func(s []float64) bool { return s[0] >= 0 && s[0] <= 1 },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return distuv.Bernoulli{P: s[0], Src: rng}.Rand()
			},
		},
		{
			Name: "binom", LongName: "Binomial", Support: half,
			Shapes: []distribution.ParameterSpec{countShape("n"), probabilityShape("p")},
			Check:  func(s []float64) bool { return s[0] >= 0 && s[1] >= 0 && s[1] <= 1 },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return binomialVariate(rng, s[0], s[1])
			},
		},
		{
			Name: "betabinom", LongName: "Beta-binomial", Support: half,
			Shapes: []distribution.ParameterSpec{countShape("n"), positiveShape("a"), positiveShape("b")},
			Check:  func(s []float64) bool { return s[0] >= 0 && positive(s[1], s[2]) },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				p := distuv.Beta{Alpha: s[1], Beta: s[2], Src: rng}.Rand()
				return binomialVariate(rng, s[0], p)
			},
		},
		{
			Name: "nbinom", LongName: "Negative binomial", Support: half,
			Shapes: []distribution.ParameterSpec{{Name: "n", Domain: half}, probabilityShape("p")},
			Check:  func(s []float64) bool { return s[0] > 0 && s[1] > 0 && s[1] <= 1 },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				n, p := s[0], s[1]
				if p == 1 {
					return 0
				}
				// gamma-poisson mixture
				return poissonVariate(rng, gammaVariate(rng, n)*(1-p)/p)
			},
		},
		{
			Name: "boltzmann", LongName: "Boltzmann (Truncated Discrete Exponential)", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("lambda_"), countShape("N")},
			Check:  func(s []float64) bool { return s[0] > 0 && s[1] > 0 },
			Draw:   boltzmannVariate,
		},
		{
			Name: "geom", LongName: "Geometric", Support: fromOne,
			Shapes: []distribution.ParameterSpec{probabilityShape("p")},
			Check:  func(s []float64) bool { return s[0] > 0 && s[0] <= 1 },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				if s[0] == 1 {
					return 1
				}
				return math.Max(1, math.Ceil(math.Log1p(-uniformOpen(rng))/math.Log1p(-s[0])))
			},
		},
		{
			Name: "hypergeom", LongName: "Hypergeometric", Support: half,
			Shapes:  urn,
			Check:   urnCheck,
			Prepare: hypergeomTable,
		},
		{
			Name: "logser", LongName: "Logarithmic (Log-Series, Series)", Support: fromOne,
			Shapes: []distribution.ParameterSpec{probabilityShape("p")},
			Check:  func(s []float64) bool { return s[0] > 0 && s[0] < 1 },
			Draw:   logserVariate,
		},
		{
			Name: "nchypergeom_fisher", LongName: "Fisher's Noncentral Hypergeometric", Support: half,
			Shapes:  append(append([]distribution.ParameterSpec{}, urn...), positiveShape("odds")),
			Check:   func(s []float64) bool { return urnCheck(s[:3]) && s[3] > 0 },
			Prepare: fisherTable,
		},
		{
			Name: "nchypergeom_wallenius", LongName: "Wallenius' Noncentral Hypergeometric", Support: half,
			Shapes:  append(append([]distribution.ParameterSpec{}, urn...), positiveShape("odds")),
			Check: func(s []float64) bool {
				return urnCheck(s[:3]) && s[3] > 0 && s[0] <= walleniusMaxPopulation
			},
			Prepare: walleniusTable,
		},
		{
			Name: "nhypergeom", LongName: "Negative Hypergeometric", Support: half,
			Shapes: []distribution.ParameterSpec{countShape("M"), countShape("n"), countShape("r")},
			Check: func(s []float64) bool {
				m, n, r := s[0], s[1], s[2]
				return nonNegative(m, n, r) && n <= m && r <= m-n && m <= maxPopulation
			},
			Prepare: nhypergeomTable,
		},
		{
			Name: "planck", LongName: "Planck (Discrete Exponential)", Support: half,
			Shapes: []distribution.ParameterSpec{positiveShape("lambda_")},
			Check:  func(s []float64) bool { return s[0] > 0 },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return math.Floor(-math.Log(uniformOpen(rng)) / s[0])
			},
		},
		{
			Name: "poisson", LongName: "Poisson", Support: half,
			Shapes: []distribution.ParameterSpec{{Name: "mu", Domain: half}},
			Check:  func(s []float64) bool { return s[0] >= 0 },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return poissonVariate(rng, s[0])
			},
		},
		{
			Name: "skellam", LongName: "Skellam", Support: distribution.Unbounded(),
			Shapes: []distribution.ParameterSpec{{Name: "mu1", Domain: half}, {Name: "mu2", Domain: half}},
			Check:  func(s []float64) bool { return nonNegative(s[0], s[1]) },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				return poissonVariate(rng, s[0]) - poissonVariate(rng, s[1])
			},
		},
		{
			Name: "yulesimon", LongName: "Yule-Simon", Support: fromOne,
			Shapes: []distribution.ParameterSpec{positiveShape("alpha")},
			Check:  func(s []float64) bool { return s[0] > 0 },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				e1 := -math.Log(uniformOpen(rng))
				e2 := -math.Log(uniformOpen(rng))
				return math.Max(1, math.Ceil(-e1/math.Log1p(-math.Exp(-e2/s[0]))))
			},
		},
		{
			Name: "zipf", LongName: "Zipf (Zeta)", Support: fromOne,
			Shapes: []distribution.ParameterSpec{{Name: "a", Domain: fromOne}},
			Check:  func(s []float64) bool { return s[0] > 1 },
			Draw:   zipfVariate,
		},
		{
			Name: "zipfian", LongName: "Zipfian", Support: fromOne,
			Shapes: []distribution.ParameterSpec{{Name: "a", Domain: half}, countShape("n")},
			Check:  func(s []float64) bool { return s[0] >= 0 && s[1] > 0 && s[1] <= maxPopulation },
			Prepare: func(s []float64) distribution.Variate {
				a, n := s[0], int(s[1])
				weights := make([]float64, n)
				for k := 1; k <= n; k++ {
					weights[k-1] = -a * math.Log(float64(k))
				}
				return tableVariate(1, weights)
			},
		},
		{
			Name: "randint", LongName: "Uniform discrete", Support: distribution.Unbounded(),
			Shapes: []distribution.ParameterSpec{
				{Name: "low", Domain: distribution.Unbounded(), Integral: true},
				{Name: "high", Domain: distribution.Unbounded(), Integral: true},
			},
			Check: func(s []float64) bool { return s[1] > s[0] && s[1]-s[0] <= 1<<53 },
			Draw: func(rng *rand.Rand, s []float64) float64 {
				low, high := s[0], s[1]
				return math.Min(high-1, low+math.Floor(rng.Float64()*(high-low)))
			},
		},
	}
}

// urnCheck validates (M, n, N) for the hypergeometric families
func urnCheck(s []float64) bool {
	m, n, draws := s[0], s[1], s[2]
	return nonNegative(m, n, draws) && n <= m && draws <= m && m <= maxPopulation
}

// urnRange is the support [lo, hi] of the number of marked items drawn
func urnRange(m, n, draws int) (lo, hi int) {
	lo = draws - (m - n)
	if lo < 0 {
		lo = 0
	}
	hi = n
	if draws < hi {
		hi = draws
	}
	return lo, hi
}

func hypergeomTable(s []float64) distribution.Variate {
	m, n, draws := int(s[0]), int(s[1]), int(s[2])
	lo, hi := urnRange(m, n, draws)
	weights := make([]float64, hi-lo+1)
	for k := lo; k <= hi; k++ {
		weights[k-lo] = logChoose(float64(n), float64(k)) + logChoose(float64(m-n), float64(draws-k))
	}
	return tableVariate(lo, weights)
}

func fisherTable(s []float64) distribution.Variate {
	m, n, draws, odds := int(s[0]), int(s[1]), int(s[2]), s[3]
	lo, hi := urnRange(m, n, draws)
	logOdds := math.Log(odds)
	weights := make([]float64, hi-lo+1)
	for k := lo; k <= hi; k++ {
		weights[k-lo] = logChoose(float64(n), float64(k)) +
			logChoose(float64(m-n), float64(draws-k)) + float64(k)*logOdds
	}
	return tableVariate(lo, weights)
}

const walleniusNodes = 128

// walleniusRule holds the Gauss-Legendre nodes on [0, 1] shared by every Wallenius table
var walleniusRule = sync.OnceValues(func() ([]float64, []float64) {
	x := make([]float64, walleniusNodes)
	w := make([]float64, walleniusNodes)
	quad.Legendre{}.FixedLocations(x, w, 0, 1)
	return x, w
})

// walleniusTable evaluates the Wallenius pmf through its integral representation
func walleniusTable(s []float64) distribution.Variate {
	m, n, draws, odds := int(s[0]), int(s[1]), int(s[2]), s[3]
	lo, hi := urnRange(m, n, draws)
	nodes, nodeWeights := walleniusRule()
	weights := make([]float64, hi-lo+1)
	for k := lo; k <= hi; k++ {
		x, y := float64(k), float64(draws-k)
		d := odds*(float64(n)-x) + (float64(m-n) - y)
		if d == 0 {
			// every item drawn, only k == n remains possible
			weights[k-lo] = math.Inf(-1)
			if k == n {
				weights[k-lo] = 0
			}
			continue
		}
		var integral float64
		for i, t := range nodes {
			integral += nodeWeights[i] * math.Pow(1-math.Pow(t, odds/d), x) * math.Pow(1-math.Pow(t, 1/d), y)
		}
		weights[k-lo] = logChoose(float64(n), x) + logChoose(float64(m-n), y) + math.Log(integral)
	}
	return tableVariate(lo, weights)
}

func nhypergeomTable(s []float64) distribution.Variate {
	m, n, r := int(s[0]), int(s[1]), int(s[2])
	if r == 0 {
		return func(*rand.Rand, []float64) float64 { return 0 }
	}
	weights := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		weights[k] = logChoose(float64(k+r-1), float64(k)) + logChoose(float64(m-r-k), float64(n-k))
	}
	return tableVariate(0, weights)
}

// boltzmannVariate inverts the truncated geometric cdf on 0..N-1
func boltzmannVariate(rng *rand.Rand, s []float64) float64 {
	lambda, n := s[0], s[1]
	z := -math.Expm1(-lambda * n)
	k := math.Ceil(-math.Log1p(-uniformOpen(rng)*z)/lambda) - 1
	return math.Min(math.Max(k, 0), n-1)
}

// logserVariate is Kemp's algorithm for the logarithmic series
func logserVariate(rng *rand.Rand, s []float64) float64 {
	p := s[0]
	r := math.Log1p(-p)
	for {
		v := rng.Float64()
		if v >= p {
			return 1
		}
		q := -math.Expm1(r * rng.Float64())
		if v <= q*q {
			k := math.Floor(1 + math.Log(v)/math.Log(q))
			if k < 1 || v == 0 {
				continue
			}
			return k
		}
		if v >= q {
			return 1
		}
		return 2
	}
}

// zipfVariate is Devroye's rejection sampler
func zipfVariate(rng *rand.Rand, s []float64) float64 {
	am1 := s[0] - 1
	b := math.Pow(2, am1)
	for {
		u := 1 - rng.Float64()
		v := rng.Float64()
		x := math.Floor(math.Pow(u, -1/am1))
		if x < 1 || x > 1e18 {
			continue
		}
		t := math.Pow(1+1/x, am1)
		if v*x*(t-1)/(b-1) <= t/b {
			return x
		}
	}
}
