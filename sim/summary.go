package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunSummary aggregates the end state of a run for final reporting.
type RunSummary struct {
	Population     int
	EverInfected   int
	Deaths         int
	NonSusceptible int
	PeakActive     int
	PeakActiveDay  int64
	PeakSevere     int
	MeanSecondary  float64 // mean onward street infections per ever-infected person
	MaxSecondary   int
	AgeHistogram   [NumAgeGroups]int
}

// Summarize computes a RunSummary from the series and the final population.
func Summarize(series *MetricsSeries, pop Population) RunSummary {
	s := RunSummary{
		Population:   len(pop),
		AgeHistogram: pop.AgeHistogram(),
	}

	secondary := make([]float64, 0)
	for _, p := range pop {
		if p.Dead {
			s.Deaths++
		}
		if !p.Susceptible {
			s.NonSusceptible++
		}
		if p.Infected {
			s.EverInfected++
			secondary = append(secondary, float64(p.Transmitted))
		}
	}
	if len(secondary) > 0 {
		s.MeanSecondary = stat.Mean(secondary, nil)
		s.MaxSecondary = int(floats.Max(secondary))
	}

	for _, d := range series.Days {
		if d.Active > s.PeakActive {
			s.PeakActive = d.Active
			s.PeakActiveDay = d.Day
		}
		s.PeakSevere = max(s.PeakSevere, d.Severe)
	}
	return s
}

// Print displays the summary in a human-readable form.
func (s RunSummary) Print(w io.Writer, elapsed time.Duration) {
	fmt.Fprintln(w, "=== Epidemic Summary ===")
	fmt.Fprintf(w, "Population          : %s\n", humanize.Comma(int64(s.Population)))
	fmt.Fprintf(w, "Ever infected       : %s (%.2f%%)\n", humanize.Comma(int64(s.EverInfected)), percent(s.EverInfected, s.Population))
	fmt.Fprintf(w, "Exposed             : %s\n", humanize.Comma(int64(s.NonSusceptible)))
	fmt.Fprintf(w, "Deaths              : %s\n", humanize.Comma(int64(s.Deaths)))
	fmt.Fprintf(w, "Peak active cases   : %s on day %d\n", humanize.Comma(int64(s.PeakActive)), s.PeakActiveDay)
	fmt.Fprintf(w, "Peak severe cases   : %s\n", humanize.Comma(int64(s.PeakSevere)))
	fmt.Fprintf(w, "Secondary cases     : mean %.3f, max %d\n", s.MeanSecondary, s.MaxSecondary)
	for i, n := range s.AgeHistogram {
		fmt.Fprintf(w, "  age %-6s        : %s\n", AgeGroupLabels[i], humanize.Comma(int64(n)))
	}
	fmt.Fprintf(w, "Wall time           : %s\n", elapsed.Round(time.Millisecond))
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
