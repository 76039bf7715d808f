// Tracks the per-day aggregate population counts that form the output table.

package sim

// DailyMetrics is one row of the output table.
// Column names follow the exported CSV schema; note that "susceptible" holds the
// number of persons no longer susceptible and "infected" the cumulative diagnosed count.
type DailyMetrics struct {
	Day            int64 `db:"day"`           // simulated day, starting at 0
	Active         int   `db:"active"`        // unresolved cases
	NewDiagnosed   int   `db:"new_diagnosed"` // Diagnosed minus previous day's Diagnosed
	Deaths         int   `db:"deaths"`        // cumulative
	NonSusceptible int   `db:"susceptible"`   // cumulative exposures (successful or not)
	InIncubation   int   `db:"in_incubation"` // currently incubating
	Contagious     int   `db:"contagious"`    // currently contagious
	Diagnosed      int   `db:"infected"`      // cumulative diagnosed
	Severe         int   `db:"severe"`        // active cases with a severe outcome
}

// MetricsSeries is the append-only daily series produced by the metrics collector.
// Days[i].Day == i for every i.
type MetricsSeries struct {
	Days []DailyMetrics
}

// NewMetricsSeries returns an empty series.
func NewMetricsSeries() *MetricsSeries {
	return &MetricsSeries{Days: make([]DailyMetrics, 0)}
}

// Len returns the number of sampled days.
func (m *MetricsSeries) Len() int {
	return len(m.Days)
}

// Append adds the next day's row.
func (m *MetricsSeries) Append(row DailyMetrics) {
	m.Days = append(m.Days, row)
}

// Last returns the most recent row, or nil before the first sample.
func (m *MetricsSeries) Last() *DailyMetrics {
	if len(m.Days) == 0 {
		return nil
	}
	return &m.Days[len(m.Days)-1]
}

// Sample scans the population once and returns the row for day.
// prev is the previous day's row, or nil on day 0.
func (pop Population) Sample(day int64, prev *DailyMetrics) DailyMetrics {
	row := DailyMetrics{Day: day}
	for _, p := range pop {
		if p.Active {
			row.Active++
			if p.ExpectedOutcome == OutcomeSevere {
				row.Severe++
			}
		}
		if p.Diagnosed {
			row.Diagnosed++
		}
		if p.Dead {
			row.Deaths++
		}
		if !p.Susceptible {
			row.NonSusceptible++
		}
		if p.InIncubation {
			row.InIncubation++
		}
		if p.Contagious {
			row.Contagious++
		}
	}
	row.NewDiagnosed = row.Diagnosed
	if prev != nil {
		row.NewDiagnosed -= prev.Diagnosed
	}
	return row
}
