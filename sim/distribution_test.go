package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func newTestSampler(seed int64) *Sampler {
	return NewSampler(NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem("test"))
}

func TestSampler_Weibull_MeanMatchesClosedForm(t *testing.T) {
	tests := []struct {
		name string
		p    WeibullParams
	}{
		{"incubation", WeibullParams{Shape: 4, Scale: 6}},
		{"contagion", WeibullParams{Shape: 2, Scale: 4}},
		{"death", WeibullParams{Shape: 2, Scale: 17}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSampler(1)
			draws := make([]float64, 50000)
			for i := range draws {
				draws[i] = s.Weibull(tt.p)
				if draws[i] < 0 {
					t.Fatalf("negative Weibull draw %v", draws[i])
				}
			}
			want := tt.p.Scale * math.Gamma(1+1/tt.p.Shape)
			assert.InDelta(t, want, stat.Mean(draws, nil), want*0.02)
		})
	}
}

func TestSampler_Exponential_MeanMatches(t *testing.T) {
	s := newTestSampler(2)
	draws := make([]float64, 50000)
	for i := range draws {
		draws[i] = s.Exponential(0.5)
	}
	assert.InDelta(t, 0.5, stat.Mean(draws, nil), 0.01)
}

func TestSampler_Uniform_InUnitInterval(t *testing.T) {
	s := newTestSampler(3)
	for i := 0; i < 10000; i++ {
		u := s.Uniform()
		if u < 0 || u >= 1 {
			t.Fatalf("uniform draw %v outside [0, 1)", u)
		}
	}
}

func TestSampler_SameSeed_SameSequence(t *testing.T) {
	a, b := newTestSampler(9), newTestSampler(9)
	p := WeibullParams{Shape: 2, Scale: 12}
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Weibull(p), b.Weibull(p))
		assert.Equal(t, a.Exponential(0.5), b.Exponential(0.5))
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestSampler_Categorical(t *testing.T) {
	s := newTestSampler(4)

	t.Run("all mass in first group", func(t *testing.T) {
		cdf := []float64{1, 1, 1, 1, 1, 1, 1, 1}
		for i := 0; i < 1000; i++ {
			assert.Equal(t, 0, s.Categorical(cdf))
		}
	})
	t.Run("all mass in last group", func(t *testing.T) {
		cdf := []float64{0, 0, 0, 0, 0, 0, 0, 0}
		for i := 0; i < 1000; i++ {
			assert.Equal(t, 8, s.Categorical(cdf))
		}
	})
	t.Run("frequencies follow the cdf", func(t *testing.T) {
		cdf := DefaultConfig().Population.AgeDistribution
		counts := make([]int, NumAgeGroups)
		const n = 100000
		for i := 0; i < n; i++ {
			counts[s.Categorical(cdf)]++
		}
		prev := 0.0
		for g := 0; g < NumAgeGroups; g++ {
			upper := 1.0
			if g < len(cdf) {
				upper = cdf[g]
			}
			assert.InDelta(t, upper-prev, float64(counts[g])/n, 0.01, "age group %d", g)
			prev = upper
		}
	})
}
