package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewProcessStats_PropagatesAllFields guards the snapshot constructor against
// silently dropping a field when new ones are added.
func TestNewProcessStats_PropagatesAllFields(t *testing.T) {
	// GIVEN a finished process with every counter populated
	p := NewProcess(ProcessSpec{ID: "P7", ArrivalTime: 3, ServiceTime: 4})
	p.markStarted(5)
	p.TimeInReady = 6
	p.TimeInIOWait = 2
	p.RemainingTime = 0
	p.markFinished(15)

	// WHEN it is snapshotted
	got := NewProcessStats(p)

	// THEN every field is carried over
	assert.Equal(t, ProcessStats{
		ID:                   "P7",
		ArrivalTime:          3,
		ServiceTime:          4,
		StartTime:            5,
		TotalWait:            8,
		FinishTime:           15,
		Turnaround:           12,
		NormalizedTurnaround: 3,
		TimeInReady:          6,
		TimeInIOWait:         2,
	}, got)
}

func TestResults_MeansAndCompletionOrder(t *testing.T) {
	// GIVEN SPN over three processes where the shortest arrives last
	specs := []ProcessSpec{
		{ID: "A", ArrivalTime: 0, ServiceTime: 4},
		{ID: "B", ArrivalTime: 1, ServiceTime: 6},
		{ID: "C", ArrivalTime: 2, ServiceTime: 2},
	}

	// WHEN the run completes
	r := runToCompletion(t, NewSPN(), specs, EngineConfig{}).Results()

	// THEN rows follow completion order: A [0,4), C [4,6), B [6,12)
	require.Len(t, r.Processes, 3)
	assert.Equal(t, "A", r.Processes[0].ID)
	assert.Equal(t, "C", r.Processes[1].ID)
	assert.Equal(t, "B", r.Processes[2].ID)
	// turnarounds 4, 11, 4; normalized 1, 11/6, 2
	assert.InDelta(t, 19.0/3, r.MeanTurnaround, 1e-9)
	assert.InDelta(t, (1+11.0/6+2)/3, r.MeanNormalizedTurnaround, 1e-9)
	assert.Equal(t, 3, r.TotalProcs)
	assert.Equal(t, int64(12), r.Clock)
	assert.Equal(t, "spn", r.Label)
	assert.Equal(t, "Shortest Process Next", r.Name)
	assert.Nil(t, r.Trace)
}

func TestResults_Lookup_Missing(t *testing.T) {
	r := &Results{Processes: []ProcessStats{{ID: "A"}}}
	_, ok := r.Lookup("Z")
	assert.False(t, ok)
}
