package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/procsched/sim/workload"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between workload formats",
	Long:  "Convert CSV continuation-row workloads to YAML WorkloadSpec and back. Output is written to stdout for piping.",
}

// --- procsched convert csv ---

var csvWorkloadPath string

var convertCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Convert a CSV workload to a YAML spec",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := workload.ConvertCSV(csvWorkloadPath)
		if err != nil {
			logrus.Fatalf("CSV conversion failed: %v", err)
		}
		writeSpecToStdout(spec)
	},
}

// --- procsched convert yaml ---

var yamlWorkloadPath string

var convertYAMLCmd = &cobra.Command{
	Use:   "yaml",
	Short: "Convert a YAML spec to a CSV workload",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := workload.LoadWorkloadSpec(yamlWorkloadPath)
		if err != nil {
			logrus.Fatalf("Failed to load spec %s: %v", yamlWorkloadPath, err)
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("Invalid spec %s: %v", yamlWorkloadPath, err)
		}
		if err := workload.FormatCSV(os.Stdout, spec.ToProcessSpecs()); err != nil {
			logrus.Fatalf("CSV write failed: %v", err)
		}
	},
}

// writeSpecToStdout marshals a WorkloadSpec to YAML and writes to stdout.
func writeSpecToStdout(spec *workload.WorkloadSpec) {
	data, err := yaml.Marshal(spec)
	if err != nil {
		logrus.Fatalf("YAML marshal failed: %v", err)
	}
	fmt.Print(string(data))
}

func init() {
	convertCSVCmd.Flags().StringVar(&csvWorkloadPath, "file", "", "Path to CSV workload file")
	_ = convertCSVCmd.MarkFlagRequired("file")

	convertYAMLCmd.Flags().StringVar(&yamlWorkloadPath, "file", "", "Path to YAML workload spec")
	_ = convertYAMLCmd.MarkFlagRequired("file")

	convertCmd.AddCommand(convertCSVCmd)
	convertCmd.AddCommand(convertYAMLCmd)

	rootCmd.AddCommand(convertCmd)
}
