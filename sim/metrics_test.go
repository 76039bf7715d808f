package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulationSample_CountsEachState(t *testing.T) {
	// GIVEN a population with one person in each interesting state
	pop := newTestPopulation(6)
	incubating, contagious, severe, dead, recovered := pop[0], pop[1], pop[2], pop[3], pop[4]

	incubating.Susceptible, incubating.Infected, incubating.Active, incubating.InIncubation = false, true, true, true
	contagious.Susceptible, contagious.Infected, contagious.Active, contagious.Contagious = false, true, true, true
	severe.Susceptible, severe.Infected, severe.Active, severe.Diagnosed, severe.InQuarantine = false, true, true, true, true
	severe.ExpectedOutcome = OutcomeSevere
	dead.Susceptible, dead.Infected, dead.Dead, dead.Diagnosed = false, true, true, true
	recovered.Susceptible, recovered.Infected = false, true

	// WHEN sampled on day 0
	row := pop.Sample(0, nil)

	// THEN every column reflects the population
	assert.Equal(t, DailyMetrics{
		Day:            0,
		Active:         3,
		NewDiagnosed:   2,
		Deaths:         1,
		NonSusceptible: 5,
		InIncubation:   1,
		Contagious:     1,
		Diagnosed:      2,
		Severe:         1,
	}, row)
}

func TestPopulationSample_NewDiagnosedIsDelta(t *testing.T) {
	pop := newTestPopulation(4)
	pop[0].Diagnosed = true
	day0 := pop.Sample(0, nil)

	pop[1].Diagnosed = true
	pop[2].Diagnosed = true
	day1 := pop.Sample(1, &day0)

	assert.Equal(t, 1, day0.NewDiagnosed)
	assert.Equal(t, 2, day1.NewDiagnosed)
	assert.Equal(t, 3, day1.Diagnosed)
	assert.Equal(t, int64(1), day1.Day)
}

func TestMetricsSeries_AppendAndLast(t *testing.T) {
	m := NewMetricsSeries()
	assert.Nil(t, m.Last())
	assert.Equal(t, 0, m.Len())

	m.Append(DailyMetrics{Day: 0, Active: 3})
	m.Append(DailyMetrics{Day: 1, Active: 5})

	require.NotNil(t, m.Last())
	assert.Equal(t, int64(1), m.Last().Day)
	assert.Equal(t, 5, m.Last().Active)
	assert.Equal(t, 2, m.Len())
}
