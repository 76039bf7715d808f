package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSVHeader is the exported table header. The leading empty cell is the day
// index column, kept unnamed for compatibility with existing consumers.
var CSVHeader = []string{"", "active", "new_diagnosed", "deaths", "susceptible", "in_incubation", "contagious", "infected", "severe"}

// WriteCSV writes the series as a comma-delimited table, one row per day.
func (m *MetricsSeries) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, d := range m.Days {
		record := []string{
			strconv.FormatInt(d.Day, 10),
			strconv.Itoa(d.Active),
			strconv.Itoa(d.NewDiagnosed),
			strconv.Itoa(d.Deaths),
			strconv.Itoa(d.NonSusceptible),
			strconv.Itoa(d.InIncubation),
			strconv.Itoa(d.Contagious),
			strconv.Itoa(d.Diagnosed),
			strconv.Itoa(d.Severe),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the series to fileName, replacing any existing file.
func (m *MetricsSeries) SaveCSV(fileName string) (err error) {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", fileName, closeErr)
		}
	}()
	if err := m.WriteCSV(file); err != nil {
		return fmt.Errorf("writing %s: %w", fileName, err)
	}
	return nil
}
