package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/procsched/sim/internal/testutil"
)

func goldenSpecs(tc testutil.GoldenTestCase) []ProcessSpec {
	specs := make([]ProcessSpec, 0, len(tc.Workload))
	for _, gp := range tc.Workload {
		ps := ProcessSpec{ID: gp.ID, ArrivalTime: gp.Arrival, ServiceTime: gp.Service}
		for _, b := range gp.IOBursts {
			ps.IOBursts = append(ps.IOBursts, IOBurst{Offset: b.Offset, Duration: b.Duration})
		}
		specs = append(specs, ps)
	}
	return specs
}

// TestEngine_GoldenDataset verifies every standard run against the recorded
// per-process rows and means in testdata/goldendataset.json.
func TestEngine_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Tests)

	const relTol = 1e-6
	for _, tc := range dataset.Tests {
		specs := goldenSpecs(tc)
		for _, run := range tc.Runs {
			t.Run(fmt.Sprintf("%s/%s", tc.Name, run.Label), func(t *testing.T) {
				e := runToCompletion(t, NewPolicy(run.Policy, run.Quantum), specs, EngineConfig{})
				r := e.Results()
				want := run.Metrics

				assert.Equal(t, want.Clock, r.Clock, "clock")
				require.Len(t, r.Processes, len(want.Processes))
				for i, wp := range want.Processes {
					got := r.Processes[i]
					assert.Equal(t, wp.ID, got.ID, "completion order at %d", i)
					assert.Equal(t, wp.StartTime, got.StartTime, "%s start", wp.ID)
					assert.Equal(t, wp.TotalWait, got.TotalWait, "%s wait", wp.ID)
					assert.Equal(t, wp.FinishTime, got.FinishTime, "%s finish", wp.ID)
					assert.Equal(t, wp.Turnaround, got.Turnaround, "%s turnaround", wp.ID)
				}
				testutil.AssertFloat64Equal(t, "mean_turnaround", want.MeanTurnaround, r.MeanTurnaround, relTol)
				testutil.AssertFloat64Equal(t, "mean_normalized_turnaround", want.MeanNormalizedTurnaround, r.MeanNormalizedTurnaround, relTol)
			})
		}
	}
}
