// Package sim provides the core discrete-event simulation engine for the epidemic model.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - person.go: Person flags and the disease state machine (exposure, progression, street filters)
//   - event.go: Event types that drive a person's timeline and the daily metrics sample
//   - simulator.go: The event loop, horizon handling and run setup
//
// # Architecture
//
// Each person's timeline is a chain of events rather than a goroutine: an event
// mutates its person, then schedules the next event(s) of that person's process.
// The EventQueue orders events by (time, scheduling order), which gives FIFO
// execution among events sharing an instant, including zero-delay reschedules.
//
// Sub-packages:
//   - sim/trace/: optional transmission-chain recording
//   - sim/store/: SQLite persistence of runs and metrics series
//
// # Randomness
//
// All draws come from a PartitionedRNG keyed by a SimulationKey, one stream per
// subsystem (population, exposure, progression, street, contact). The same key
// and configuration reproduce the same MetricsSeries.
package sim
