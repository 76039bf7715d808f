package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/epidemic-sim/sim/trace"
)

// alwaysInfect is a threshold row where every exposure infects with the default
// severity mix below the first threshold.
var alwaysInfect = SeverityThresholds{1, 0.4, 0.065, 0.025, 0.01}

// deathOnly is a threshold row where every exposure leads to death.
var deathOnly = SeverityThresholds{1, 1, 1, 1, 1}

// testConfig returns a small, fast scenario derived from the defaults.
func testConfig(size, initial int, horizon int64) Config {
	cfg := DefaultConfig()
	cfg.Horizon = horizon
	cfg.Population.Size = size
	cfg.Population.InitialInfected = initial
	return cfg
}

func mustSimulator(t *testing.T, cfg Config, seed int64) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, NewSimulationKey(seed), trace.TraceConfig{})
	require.NoError(t, err)
	return s
}

// newBareSimulator returns a simulator with an empty queue and no metrics
// collector, for exercising the event loop in isolation.
func newBareSimulator(horizon float64) *Simulator {
	return &Simulator{
		Horizon:    horizon,
		EventQueue: make(EventQueue, 0),
		Metrics:    NewMetricsSeries(),
	}
}

// recordingEvent appends its name to log when executed and reschedules itself
// `remaining` more times after `delay`.
type recordingEvent struct {
	time      float64
	name      string
	delay     float64
	remaining int
	log       *[]string
}

func (e *recordingEvent) Timestamp() float64 { return e.time }

func (e *recordingEvent) Execute(sim *Simulator) {
	*e.log = append(*e.log, e.name)
	if e.remaining > 0 {
		sim.Schedule(&recordingEvent{time: sim.after(e.delay), name: e.name, delay: e.delay, remaining: e.remaining - 1, log: e.log})
	}
}

// checkInvariants reports every person-level invariant violation in pop.
func checkInvariants(t *testing.T, pop Population, clock float64) {
	t.Helper()
	for _, p := range pop {
		if p.Dead && (p.Active || p.Contagious || p.Susceptible || p.InQuarantine) {
			t.Fatalf("day %.3f: dead person has live flags: %+v", clock, *p)
		}
		if p.Contagious && (!p.Infected || p.Susceptible) {
			t.Fatalf("day %.3f: contagious person not infected or still susceptible: %+v", clock, *p)
		}
		if p.Infected && p.Susceptible {
			t.Fatalf("day %.3f: infected person still susceptible: %+v", clock, *p)
		}
		if p.Infected && p.ExpectedOutcome == OutcomeNoInfection {
			t.Fatalf("day %.3f: infected person without outcome: %+v", clock, *p)
		}
		if !p.Infected && (p.Active || p.InIncubation || p.Contagious || p.Dead || p.Diagnosed) {
			t.Fatalf("day %.3f: uninfected person progressed: %+v", clock, *p)
		}
	}
}

// invariantProbeEvent checks invariants and flag monotonicity every `every` days.
type invariantProbeEvent struct {
	time  float64
	every float64
	t     *testing.T
	prev  []Person
	runs  *int
}

func (e *invariantProbeEvent) Timestamp() float64 { return e.time }

func (e *invariantProbeEvent) Execute(sim *Simulator) {
	checkInvariants(e.t, sim.Population, sim.Clock)
	snapshot := make([]Person, len(sim.Population))
	for i, p := range sim.Population {
		snapshot[i] = *p
		if e.prev == nil {
			continue
		}
		before := e.prev[i]
		if !before.Susceptible && p.Susceptible {
			e.t.Fatalf("day %.3f: person %d became susceptible again", sim.Clock, p.ID)
		}
		if before.Infected && !p.Infected {
			e.t.Fatalf("day %.3f: person %d lost infected flag", sim.Clock, p.ID)
		}
		if before.Dead && !p.Dead {
			e.t.Fatalf("day %.3f: person %d came back from the dead", sim.Clock, p.ID)
		}
		if before.Diagnosed && !p.Diagnosed {
			e.t.Fatalf("day %.3f: person %d lost diagnosis", sim.Clock, p.ID)
		}
		if before.Infected && before.ExpectedOutcome != p.ExpectedOutcome {
			e.t.Fatalf("day %.3f: person %d outcome changed %s -> %s", sim.Clock, p.ID, before.ExpectedOutcome, p.ExpectedOutcome)
		}
		if before.Transmitted > p.Transmitted {
			e.t.Fatalf("day %.3f: person %d transmitted count decreased", sim.Clock, p.ID)
		}
	}
	*e.runs++
	sim.Schedule(&invariantProbeEvent{time: e.time + e.every, every: e.every, t: e.t, prev: snapshot, runs: e.runs})
}
