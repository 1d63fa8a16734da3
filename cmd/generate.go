package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/procsched/sim/workload"
)

var (
	generatorSpecPath string
	generatorSeed     int64
	generatorCount    int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic workload spec",
	Long:  "Draw a deterministic process workload from a generator spec (arrival process, service distribution, I/O bursts). Output is a YAML WorkloadSpec written to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		gen, err := workload.LoadGeneratorSpec(generatorSpecPath)
		if err != nil {
			logrus.Fatalf("Failed to load generator spec %s: %v", generatorSpecPath, err)
		}
		// Flags override the file only when explicitly set
		if cmd.Flags().Changed("seed") {
			gen.Seed = generatorSeed
		}
		if cmd.Flags().Changed("count") {
			gen.Count = generatorCount
		}

		specs, err := workload.GenerateProcesses(gen)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		writeSpecToStdout(workload.FromProcessSpecs(specs))
	},
}

func init() {
	generateCmd.Flags().StringVar(&generatorSpecPath, "spec", "", "Path to YAML generator spec")
	generateCmd.Flags().Int64Var(&generatorSeed, "seed", 0, "Override the spec's seed")
	generateCmd.Flags().IntVar(&generatorCount, "count", 0, "Override the spec's process count")
	_ = generateCmd.MarkFlagRequired("spec")

	rootCmd.AddCommand(generateCmd)
}
