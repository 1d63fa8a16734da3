package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/procsched/sim/workload"
)

var composeFromPaths []string

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Merge several process workloads into one YAML workload",
	Long: "Load CSV or YAML workloads and concatenate their process lists in --from order. " +
		"Process IDs must be unique across inputs and the merged workload must hold at least one process. " +
		"Output is written to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		merged, err := composeWorkloads(composeFromPaths)
		if err != nil {
			logrus.Fatalf("Compose failed: %v", err)
		}
		writeSpecToStdout(merged)
	},
}

// composeWorkloads loads every path by extension and merges the process lists.
func composeWorkloads(paths []string) (*workload.WorkloadSpec, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one --from flag is required")
	}
	specs := make([]*workload.WorkloadSpec, 0, len(paths))
	for _, path := range paths {
		procs, err := workload.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		logrus.Debugf("Loaded %d processes from %s", len(procs), path)
		specs = append(specs, workload.FromProcessSpecs(procs))
	}

	merged, err := workload.ComposeSpecs(specs)
	if err != nil {
		return nil, err
	}
	if len(merged.Processes) == 0 {
		return nil, fmt.Errorf("composed workload has no processes")
	}
	first, last := merged.Processes[0].Arrival, merged.Processes[0].Arrival
	for _, p := range merged.Processes {
		first, last = min(first, p.Arrival), max(last, p.Arrival)
	}
	logrus.Infof("Composed %d processes from %d workloads, arrivals in [%d, %d]",
		len(merged.Processes), len(paths), first, last)
	return merged, nil
}

func init() {
	composeCmd.Flags().StringArrayVar(&composeFromPaths, "from", nil, "Path to a CSV or YAML workload (can be repeated)")
	_ = composeCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(composeCmd)
}
