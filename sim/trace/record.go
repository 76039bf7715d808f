// Package trace provides transmission-chain recording for epidemic analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// SeedInfector marks a TransmissionRecord for an initial seeded infection.
const SeedInfector = -1

// TransmissionRecord captures a single successful infection.
type TransmissionRecord struct {
	Clock    float64 // simulated day of the exposure
	Infector int     // person ID of the source, or SeedInfector
	Infectee int     // person ID of the newly infected person
}

// IsSeed reports whether the record is an initial infection.
func (r TransmissionRecord) IsSeed() bool {
	return r.Infector == SeedInfector
}
