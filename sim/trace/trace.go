package trace

// TraceLevel controls the verbosity of transmission tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTransmissions captures every successful infection.
	TraceLevelTransmissions TraceLevel = "transmissions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:          true,
	TraceLevelTransmissions: true,
	"":                      true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects transmission records during a simulation.
type SimulationTrace struct {
	Config        TraceConfig
	Transmissions []TransmissionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:        config,
		Transmissions: make([]TransmissionRecord, 0),
	}
}

// RecordSeed appends an initial infection.
func (st *SimulationTrace) RecordSeed(clock float64, infectee int) {
	st.Transmissions = append(st.Transmissions, TransmissionRecord{Clock: clock, Infector: SeedInfector, Infectee: infectee})
}

// RecordTransmission appends a street infection of infectee by infector.
func (st *SimulationTrace) RecordTransmission(clock float64, infector, infectee int) {
	st.Transmissions = append(st.Transmissions, TransmissionRecord{Clock: clock, Infector: infector, Infectee: infectee})
}
