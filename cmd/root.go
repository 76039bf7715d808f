package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/epidemic-sim/sim"
	"github.com/inference-sim/epidemic-sim/sim/store"
	"github.com/inference-sim/epidemic-sim/sim/trace"
)

var (
	// CLI flags for the run itself
	seed       int64  // Seed for all random streams
	configPath string // Scenario YAML file
	logLevel   string // Log verbosity level
	outputPath string // CSV file for the daily metrics series
	dbPath     string // SQLite database to store the run in
	traceLevel string // Transmission trace level

	// CLI flags overriding scenario values
	horizon                 int64   // Days to simulate
	populationSize          int     // Number of persons
	initialInfected         int     // Seed infections
	maskUsage               float64 // Default mask usage probability
	quarantineEffectiveness float64 // Probability quarantine blocks a contact
	diagnosisChance         float64 // Probability a mild case is diagnosed
	contactInterval         float64 // Mean days between street contacts
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "epidemic-sim",
	Short: "Discrete-event, agent-based epidemic simulator",
}

// runCmd executes the simulation using the scenario file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the epidemic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		sc := defaultScenario()
		if configPath != "" {
			sc, err = loadScenario(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load scenario %s: %v", configPath, err)
			}
		}
		applyFlagOverrides(cmd, &sc)

		logrus.Infof("Starting simulation: population=%d, initial infected=%d, horizon=%d days, seed=%d",
			sc.Config.Population.Size, sc.Config.Population.InitialInfected, sc.Config.Horizon, sc.Seed)

		startTime := time.Now()
		s, err := sim.NewSimulator(sc.Config, sim.NewSimulationKey(sc.Seed), trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if err != nil {
			logrus.Fatalf("Cannot start simulation: %v", err)
		}
		series := s.Run()

		sim.Summarize(series, s.Population).Print(os.Stdout, time.Since(startTime))
		if s.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(s.Trace))
		}

		if outputPath != "" {
			if err := series.SaveCSV(outputPath); err != nil {
				logrus.Fatalf("Failed to export metrics: %v", err)
			}
			logrus.Infof("Metrics written to %s", outputPath)
		}
		if dbPath != "" {
			id, err := storeRun(cmd.Context(), dbPath, sc, series)
			if err != nil {
				logrus.Fatalf("Failed to store run: %v", err)
			}
			fmt.Printf("Run stored as %s\n", id)
		}

		logrus.Info("Simulation complete.")
	},
}

// applyFlagOverrides copies explicitly set flags onto the scenario. Flags left
// at their defaults never overwrite values from the scenario file.
func applyFlagOverrides(cmd *cobra.Command, sc *Scenario) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("horizon") {
		sc.Config.Horizon = horizon
	}
	if flags.Changed("population") {
		sc.Config.Population.Size = populationSize
	}
	if flags.Changed("initial-infected") {
		sc.Config.Population.InitialInfected = initialInfected
	}
	if flags.Changed("mask-usage") {
		sc.Config.Population.MaskUsage = maskUsage
	}
	if flags.Changed("quarantine-effectiveness") {
		sc.Config.Intervention.QuarantineEffectiveness = quarantineEffectiveness
	}
	if flags.Changed("diagnosis-chance") {
		sc.Config.Intervention.DiagnosisChanceIfModerate = diagnosisChance
	}
	if flags.Changed("contact-interval") {
		sc.Config.Disease.MeanContactInterval = contactInterval
	}
}

func storeRun(ctx context.Context, path string, sc Scenario, series *sim.MetricsSeries) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	run, err := store.NewRun(sc.Config, sc.Seed)
	if err != nil {
		return "", err
	}
	if err := db.SaveRun(ctx, run, series); err != nil {
		return "", err
	}
	return run.ID, nil
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Transmission Trace ===")
	fmt.Fprintf(w, "Seed infections     : %d\n", ts.SeedInfections)
	fmt.Fprintf(w, "Street infections   : %d\n", ts.StreetInfections)
	fmt.Fprintf(w, "Unique infectors    : %d\n", ts.UniqueInfectors)
	fmt.Fprintf(w, "Max secondary cases : %d\n", ts.MaxSecondaryCases)
	fmt.Fprintf(w, "Peak infection day  : %d (%d infections)\n", ts.PeakDay, ts.PeakDayInfections)
	fmt.Fprintf(w, "Longest chain       : %d\n", ts.LongestChainLength)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().Int64Var(&seed, "seed", defaultSeed, "Seed for all random streams")
	runCmd.Flags().StringVar(&configPath, "config", "", "Scenario YAML file (defaults to the built-in scenario)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the daily metrics series to this CSV file")
	runCmd.Flags().StringVar(&dbPath, "db", "", "Store the run in this SQLite database")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Transmission trace level (none, transmissions)")

	// Scenario overrides
	runCmd.Flags().Int64Var(&horizon, "horizon", defaults.Horizon, "Days to simulate")
	runCmd.Flags().IntVar(&populationSize, "population", defaults.Population.Size, "Number of persons")
	runCmd.Flags().IntVar(&initialInfected, "initial-infected", defaults.Population.InitialInfected, "Number of seed infections")
	runCmd.Flags().Float64Var(&maskUsage, "mask-usage", defaults.Population.MaskUsage, "Probability a person wears a mask")
	runCmd.Flags().Float64Var(&quarantineEffectiveness, "quarantine-effectiveness", defaults.Intervention.QuarantineEffectiveness, "Probability quarantine blocks a contact")
	runCmd.Flags().Float64Var(&diagnosisChance, "diagnosis-chance", defaults.Intervention.DiagnosisChanceIfModerate, "Probability a mild-to-moderate case is diagnosed")
	runCmd.Flags().Float64Var(&contactInterval, "contact-interval", defaults.Disease.MeanContactInterval, "Mean days between street contacts")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
