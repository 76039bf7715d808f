package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/epidemic-sim/sim/store"
)

var (
	runsDBPath string // SQLite database holding stored runs
	runsExport string // Run ID whose series is written as CSV to stdout
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored simulation runs",
	Long:  "List the runs stored with `run --db`, newest first. With --export, write one run's daily metrics as CSV to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		db, err := openExistingDB(runsDBPath)
		if err != nil {
			logrus.Fatalf("Failed to open %s: %v", runsDBPath, err)
		}
		defer db.Close()

		if runsExport != "" {
			if err := exportRun(ctx, db, runsExport, os.Stdout); err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
			return
		}
		runs, err := db.ListRuns(ctx)
		if err != nil {
			logrus.Fatalf("Failed to list runs: %v", err)
		}
		printRuns(os.Stdout, runs)
	},
}

// openExistingDB opens the run database at path. It fails instead of creating
// an empty database when path does not exist.
func openExistingDB(path string) (*store.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no run database: %w", err)
	}
	return store.Open(path)
}

func exportRun(ctx context.Context, db *store.DB, id string, w io.Writer) error {
	if _, err := db.GetRun(ctx, id); err != nil {
		return err
	}
	series, err := db.LoadSeries(ctx, id)
	if err != nil {
		return err
	}
	return series.WriteCSV(w)
}

func printRuns(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No stored runs.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSEED\tPOPULATION\tHORIZON")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\n",
			r.ID, humanize.Time(r.CreatedAt), r.Seed, humanize.Comma(int64(r.Population)), r.Horizon)
	}
	tw.Flush()
}

func init() {
	runsCmd.Flags().StringVar(&runsDBPath, "db", "runs.db", "SQLite database holding stored runs")
	runsCmd.Flags().StringVar(&runsExport, "export", "", "Write the daily metrics of this run ID as CSV to stdout")

	rootCmd.AddCommand(runsCmd)
}
