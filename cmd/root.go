package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/procsched/sim"
	"github.com/inference-sim/procsched/sim/report"
	"github.com/inference-sim/procsched/sim/trace"
	"github.com/inference-sim/procsched/sim/workload"
)

var (
	// CLI flags for the run command
	workloadPath string   // Workload file (.csv continuation rows or .yaml spec)
	outputPath   string   // Results file name; each run writes <label>_<name>
	runsFilePath string   // Run bundle YAML; empty uses the six built-in runs
	onlyLabels   []string // Restrict the suite to these run labels
	parallel     bool     // Execute runs concurrently
	traceLevel   string   // Decision trace level
	maxTicks     int64    // Tick cap per run (0 = derived from the workload)
	logLevel     string   // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsched",
	Short: "Discrete-time simulator for classical CPU scheduling policies",
}

// runCmd executes every configured run over the workload
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduling simulation suite",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if err := runSimulation(os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runSimulation loads the workload and run bundle, executes the suite, writes
// result files when an output name is set, and prints one table per run to w.
func runSimulation(w io.Writer) error {
	if workloadPath == "" {
		return fmt.Errorf("workload path not provided")
	}
	if !trace.IsValidTraceLevel(traceLevel) {
		return fmt.Errorf("unknown trace level %q; valid: none, decisions", traceLevel)
	}

	bundle, err := loadRunBundle(runsFilePath)
	if err != nil {
		return err
	}
	bundle, err = bundle.Select(onlyLabels)
	if err != nil {
		return err
	}

	specs, err := workload.Load(workloadPath)
	if err != nil {
		return err
	}
	logrus.Infof("Starting %d runs over %d processes from %s", len(bundle.Runs), len(specs), workloadPath)

	results, err := sim.RunSuite(bundle.Runs, specs, sim.SuiteConfig{
		Engine: sim.EngineConfig{
			MaxTicks: maxTicks,
			Trace:    trace.TraceConfig{Level: trace.TraceLevel(traceLevel)},
		},
		Parallel: parallel,
	})
	if err != nil {
		return err
	}

	for _, r := range results {
		if outputPath != "" {
			path := report.OutputPath(r.Label, outputPath)
			if err := report.SaveCSV(path, r); err != nil {
				return err
			}
			logrus.Infof("Wrote %s results to %s", r.Name, path)
		}
		report.PrintTable(w, r)
		if r.Trace != nil {
			report.PrintTraceSummary(w, r)
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&workloadPath, "workload", "", "Workload file (.csv or .yaml)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Results file name; each run writes <label>_<name> (empty = no files)")
	runCmd.Flags().StringVar(&runsFilePath, "runs-filepath", "", "Run bundle YAML (empty = built-in six runs)")
	runCmd.Flags().StringSliceVar(&onlyLabels, "only", nil, "Comma-separated run labels to execute (default all)")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "Execute runs concurrently")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().Int64Var(&maxTicks, "max-ticks", 0, "Tick cap per run (0 = derived from the workload)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	_ = runCmd.MarkFlagRequired("workload")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
