// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/epidemic-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, the population and the event loop.
// It is single-threaded: exactly one event executes at a time, so person state
// mutated by an event is never observed half-updated by another.
type Simulator struct {
	Clock   float64 // current simulated time, in days
	Horizon float64 // last simulated time at which events still execute
	// EventQueue holds every suspended person process and the metrics collector
	EventQueue EventQueue
	Config     Config
	Population Population
	Metrics    *MetricsSeries
	// Trace is nil unless transmission tracing was requested
	Trace *trace.SimulationTrace
	// EventCount is the number of events executed so far
	EventCount int64

	rng         *PartitionedRNG
	exposure    *Sampler
	progression *Sampler
	street      *Sampler
	contact     *Sampler
	nextSeqID   uint64
}

// NewSimulator validates cfg, builds the population, seeds the initial infections
// and registers the daily metrics collector. Nothing is created when cfg is invalid.
func NewSimulator(cfg Config, key SimulationKey, traceConfig trace.TraceConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if !trace.IsValidTraceLevel(string(traceConfig.Level)) {
		return nil, fmt.Errorf("invalid trace level %q", traceConfig.Level)
	}

	rng := NewPartitionedRNG(key)
	s := &Simulator{
		Clock:       0,
		Horizon:     float64(cfg.Horizon),
		EventQueue:  make(EventQueue, 0),
		Config:      cfg,
		Metrics:     NewMetricsSeries(),
		rng:         rng,
		exposure:    NewSampler(rng.ForSubsystem(SubsystemExposure)),
		progression: NewSampler(rng.ForSubsystem(SubsystemProgression)),
		street:      NewSampler(rng.ForSubsystem(SubsystemStreet)),
		contact:     NewSampler(rng.ForSubsystem(SubsystemContact)),
	}
	if traceConfig.Level == trace.TraceLevelTransmissions {
		s.Trace = trace.NewSimulationTrace(traceConfig)
	}

	s.Population = NewPopulation(cfg.Population, NewSampler(rng.ForSubsystem(SubsystemPopulation)))
	if err := s.SeedInfections(cfg.Population.InitialInfected); err != nil {
		return nil, err
	}

	// Registered after seeding so that day 0 observes the seeded cases.
	s.Schedule(&MetricsCollectionEvent{time: 0, day: 0})
	return s, nil
}

// Schedule pushes an event into the simulator's EventQueue.
// Events must not be timestamped before the current clock. Events beyond the
// horizon are dropped and Schedule returns false.
func (sim *Simulator) Schedule(ev Event) bool {
	if ev.Timestamp() > sim.Horizon {
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			logrus.Tracef("[day %8.3f] dropping %T at %.3f beyond horizon %.0f", sim.Clock, ev, ev.Timestamp(), sim.Horizon)
		}
		return false
	}
	sim.nextSeqID++
	heap.Push(&sim.EventQueue, eventEntry{event: ev, seqID: sim.nextSeqID})
	return true
}

// after returns the absolute time delay days from now. Negative delays are
// treated as zero: the event resumes at the current instant, behind every
// event already queued for it.
func (sim *Simulator) after(delay float64) float64 {
	if delay < 0 {
		delay = 0
	}
	return sim.Clock + delay
}

// Run executes events in (time, scheduling order) until the queue is empty or
// the next event lies beyond the horizon, then returns the collected series.
func (sim *Simulator) Run() *MetricsSeries {
	logrus.Infof("[day %8.3f] Simulation started: population=%d horizon=%.0f", sim.Clock, len(sim.Population), sim.Horizon)
	for len(sim.EventQueue) > 0 {
		if sim.EventQueue.Peek().Timestamp() > sim.Horizon {
			break
		}
		ev := heap.Pop(&sim.EventQueue).(eventEntry).event
		if ev.Timestamp() < sim.Clock {
			panic(fmt.Sprintf("clock went backwards: %v < %v", ev.Timestamp(), sim.Clock))
		}
		sim.Clock = ev.Timestamp()
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			logrus.Tracef("[day %8.3f] Executing %T", sim.Clock, ev)
		}
		ev.Execute(sim)
		sim.EventCount++
	}
	logrus.Infof("[day %8.3f] Simulation ended after %d events", sim.Clock, sim.EventCount)
	return sim.Metrics
}
