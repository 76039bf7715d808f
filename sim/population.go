package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Population is the ordered, fixed-size collection of every person in a run.
// Person i is stored at index i.
type Population []*Person

// NewPopulation creates cfg.Size susceptible persons with ages drawn from the
// cumulative age distribution.
func NewPopulation(cfg PopulationConfig, s *Sampler) Population {
	pop := make(Population, cfg.Size)
	for i := range pop {
		pop[i] = NewPerson(i, s.Categorical(cfg.AgeDistribution), cfg.MaskUsage)
	}
	return pop
}

// Count returns the number of persons matching pred.
func (pop Population) Count(pred func(*Person) bool) int {
	n := 0
	for _, p := range pop {
		if pred(p) {
			n++
		}
	}
	return n
}

// AgeHistogram returns the number of persons in each age group.
func (pop Population) AgeHistogram() [NumAgeGroups]int {
	var h [NumAgeGroups]int
	for _, p := range pop {
		h[p.AgeGroup]++
	}
	return h
}

// SeedInfections performs exactly n successful exposures on random contacts,
// retrying whenever an exposure draws no infection. It fails if the population
// runs out of susceptible persons first.
func (sim *Simulator) SeedInfections(n int) error {
	susceptible := sim.Population.Count(func(p *Person) bool { return p.Susceptible })
	for seeded := 0; seeded < n; {
		if susceptible == 0 {
			return fmt.Errorf("seeding stopped after %d of %d infections: no susceptible persons left", seeded, n)
		}
		someone := SampleContact(sim.Population, sim.contact)
		if !someone.Susceptible {
			continue
		}
		susceptible--
		if someone.ExposeToVirus(sim) {
			seeded++
			if sim.Trace != nil {
				sim.Trace.RecordSeed(sim.Clock, someone.ID)
			}
		}
	}
	logrus.Infof("Seeded %d initial infections", n)
	return nil
}
