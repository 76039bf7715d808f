package sim

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// WeibullParams parameterizes a Weibull-distributed delay, in days.
// A draw is Scale * W where W ~ Weibull(Shape, 1).
type WeibullParams struct {
	Shape float64 `yaml:"shape"`
	Scale float64 `yaml:"scale"`
}

// Sampler supplies draws from the distributions used by the epidemic model.
// All draws of one Sampler come from a single underlying stream, so two samplers
// built from the same seed yield identical sequences.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler wraps rng. The caller owns rng; Sampler never reseeds it.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Uniform returns a draw from U[0, 1).
func (s *Sampler) Uniform() float64 {
	return s.rng.Float64()
}

// IntN returns a uniform draw from [0, n). Panics if n <= 0.
func (s *Sampler) IntN(n int) int {
	return s.rng.IntN(n)
}

// Weibull returns Scale * Weibull(Shape).
func (s *Sampler) Weibull(p WeibullParams) float64 {
	return distuv.Weibull{K: p.Shape, Lambda: p.Scale, Src: s.rng}.Rand()
}

// Exponential returns an exponentially distributed draw with the given mean.
func (s *Sampler) Exponential(mean float64) float64 {
	return distuv.Exponential{Rate: 1 / mean, Src: s.rng}.Rand()
}

// Categorical returns the index of the first cumulative threshold strictly greater
// than a uniform draw, or len(cdf) if the draw falls past every threshold.
// cdf must be non-decreasing; a cdf with n thresholds selects among n+1 categories.
func (s *Sampler) Categorical(cdf []float64) int {
	u := s.rng.Float64()
	return sort.Search(len(cdf), func(i int) bool { return cdf[i] > u })
}
