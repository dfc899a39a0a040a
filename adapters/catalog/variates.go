package catalog

import (
	"math"
	"math/rand/v2"
	"sort"

	"distviz/domain/distribution"

	"gonum.org/v1/gonum/stat/distuv"
)

// maxPopulation bounds the integer parameters of families sampled from an explicit pmf table
const maxPopulation = 100000

// walleniusMaxPopulation is lower: every table entry of the Wallenius pmf is a numeric integral
const walleniusMaxPopulation = 2000

// uniformOpen draws from (0, 1)
func uniformOpen(rng *rand.Rand) float64 {
	for {
		if u := rng.Float64(); u > 0 {
			return u
		}
	}
}

func standardNormal(rng *rand.Rand) float64 {
	return distuv.Normal{Mu: 0, Sigma: 1, Src: rng}.Rand()
}

func gammaVariate(rng *rand.Rand, shape float64) float64 {
	return distuv.Gamma{Alpha: shape, Beta: 1, Src: rng}.Rand()
}

func poissonVariate(rng *rand.Rand, mu float64) float64 {
	if mu == 0 {
		return 0
	}
	return distuv.Poisson{Lambda: mu, Src: rng}.Rand()
}

func binomialVariate(rng *rand.Rand, n, p float64) float64 {
	if n == 0 || p == 0 {
		return 0
	}
	if p == 1 {
		return n
	}
	return distuv.Binomial{N: n, P: p, Src: rng}.Rand()
}

// fixed wraps a variate that ignores shape arguments
func fixed(f func(rng *rand.Rand) float64) distribution.Variate {
	return func(rng *rand.Rand, _ []float64) float64 {
		return f(rng)
	}
}

// logChoose is log C(n, k) via the log-gamma function; -inf outside 0 <= k <= n
func logChoose(n, k float64) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	a, _ := math.Lgamma(n + 1)
	b, _ := math.Lgamma(k + 1)
	c, _ := math.Lgamma(n - k + 1)
	return a - b - c
}

// tableVariate samples integers lo, lo+1, ... with probability proportional to exp(logWeights[i])
func tableVariate(lo int, logWeights []float64) distribution.Variate {
	maxW := math.Inf(-1)
	for _, w := range logWeights {
		if w > maxW {
			maxW = w
		}
	}

	cumulative := make([]float64, len(logWeights))
	total := 0.0
	for i, w := range logWeights {
		if !math.IsInf(w, -1) {
			total += math.Exp(w - maxW)
		}
		cumulative[i] = total
	}

	return func(rng *rand.Rand, _ []float64) float64 {
		u := rng.Float64() * total
		i := sort.SearchFloat64s(cumulative, u)
		if i >= len(cumulative) {
			i = len(cumulative) - 1
		}
		// step past zero-weight entries sharing the same cumulative value
		for i < len(cumulative)-1 && cumulative[i] <= u {
			i++
		}
		return float64(lo + i)
	}
}

func positive(xs ...float64) bool {
	for _, x := range xs {
		if !(x > 0) {
			return false
		}
	}
	return true
}

func nonNegative(xs ...float64) bool {
	for _, x := range xs {
		if !(x >= 0) {
			return false
		}
	}
	return true
}
