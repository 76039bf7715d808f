package trace

import "math"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	SeedInfections    int
	StreetInfections  int
	UniqueInfectors   int
	MaxSecondaryCases int
	// PeakDay is the earliest day with the most street infections
	PeakDay           int64
	PeakDayInfections int
	// DailyInfections maps day -> street infections that day
	DailyInfections map[int64]int
	// LongestChainLength counts generations from a seed to the deepest infectee
	LongestChainLength int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DailyInfections: make(map[int64]int),
	}
	if st == nil {
		return summary
	}

	secondary := make(map[int]int)
	generation := make(map[int]int)
	for _, r := range st.Transmissions {
		if r.IsSeed() {
			summary.SeedInfections++
			generation[r.Infectee] = 0
			continue
		}
		summary.StreetInfections++
		secondary[r.Infector]++
		summary.MaxSecondaryCases = max(summary.MaxSecondaryCases, secondary[r.Infector])

		// records are appended in time order, so the infector's generation is known
		g := generation[r.Infector] + 1
		generation[r.Infectee] = g
		summary.LongestChainLength = max(summary.LongestChainLength, g)

		day := int64(math.Floor(r.Clock))
		summary.DailyInfections[day]++
		n := summary.DailyInfections[day]
		if n > summary.PeakDayInfections || (n == summary.PeakDayInfections && day < summary.PeakDay) {
			summary.PeakDay = day
			summary.PeakDayInfections = n
		}
	}
	summary.UniqueInfectors = len(secondary)

	return summary
}
