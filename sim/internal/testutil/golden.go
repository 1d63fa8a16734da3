// Package testutil provides shared test infrastructure for the scheduling
// simulator. It holds the golden dataset types and assertion helpers used
// across the sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one workload with the expected outcome of every standard run.
type GoldenTestCase struct {
	Name     string          `json:"name"`
	Workload []GoldenProcess `json:"workload"`
	Runs     []GoldenRunCase `json:"runs"`
}

// GoldenProcess is a workload descriptor as stored in the dataset.
type GoldenProcess struct {
	ID       string        `json:"id"`
	Arrival  int64         `json:"arrival"`
	Service  int64         `json:"service"`
	IOBursts []GoldenBurst `json:"io_bursts"`
}

// GoldenBurst is one (offset, duration) I/O burst.
type GoldenBurst struct {
	Offset   int64 `json:"offset"`
	Duration int64 `json:"duration"`
}

// GoldenRunCase is the expected outcome of one policy over the case's workload.
type GoldenRunCase struct {
	Label   string        `json:"label"`
	Policy  string        `json:"policy"`
	Quantum int64         `json:"quantum"`
	Metrics GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected metrics from a golden run.
type GoldenMetrics struct {
	// Exact match (integers)
	Clock int64 `json:"clock"`

	// Means over the workload's process count
	MeanTurnaround           float64 `json:"mean_turnaround"`
	MeanNormalizedTurnaround float64 `json:"mean_normalized_turnaround"`

	// Per-process rows in completion order
	Processes []GoldenProcessMetrics `json:"processes"`
}

// GoldenProcessMetrics is the expected result row of one process.
type GoldenProcessMetrics struct {
	ID         string `json:"id"`
	StartTime  int64  `json:"start_time"`
	TotalWait  int64  `json:"total_wait"`
	FinishTime int64  `json:"finish_time"`
	Turnaround int64  `json:"turnaround"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
