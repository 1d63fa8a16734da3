// Collects per-process timing statistics and run-wide means once an Engine
// has finished.

package sim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/inference-sim/procsched/sim/trace"
)

// ProcessStats is the per-process result row handed to report writers.
type ProcessStats struct {
	ID                   string  `json:"id"`
	ArrivalTime          int64   `json:"arrival_time"`
	ServiceTime          int64   `json:"service_time"`
	StartTime            int64   `json:"start_time"`
	TotalWait            int64   `json:"total_wait"`
	FinishTime           int64   `json:"finish_time"`
	Turnaround           int64   `json:"turnaround"`
	NormalizedTurnaround float64 `json:"normalized_turnaround"`
	TimeInReady          int64   `json:"time_in_ready"`
	TimeInIOWait         int64   `json:"time_in_io_wait"`
}

// Results aggregates the outcome of one run for final reporting.
type Results struct {
	Name  string // policy display name
	Label string // short run label, used as the output file prefix
	// Processes in completion order.
	Processes []ProcessStats
	// Means divide by the total process count of the workload.
	MeanTurnaround           float64
	MeanNormalizedTurnaround float64
	TotalProcs               int
	Clock                    int64 // clock value when the run completed
	Trace                    *trace.SimulationTrace
}

// NewProcessStats snapshots a finished process.
func NewProcessStats(p *Process) ProcessStats {
	return ProcessStats{
		ID:                   p.ID,
		ArrivalTime:          p.ArrivalTime,
		ServiceTime:          p.ServiceTime,
		StartTime:            p.StartTime(),
		TotalWait:            p.TotalWait(),
		FinishTime:           p.FinishTime(),
		Turnaround:           p.Turnaround(),
		NormalizedTurnaround: p.NormalizedTurnaround(),
		TimeInReady:          p.TimeInReady,
		TimeInIOWait:         p.TimeInIOWait,
	}
}

// Results extracts statistics from the finished queue.
func (e *Engine) Results() *Results {
	r := &Results{
		Name:       e.Policy.Name,
		Label:      e.Policy.Kind,
		Processes:  make([]ProcessStats, 0, e.Finished.Len()),
		TotalProcs: e.TotalProcs,
		Clock:      e.Clock,
		Trace:      e.Trace,
	}
	turnarounds := make([]float64, 0, e.Finished.Len())
	normalized := make([]float64, 0, e.Finished.Len())
	for _, p := range e.Finished.Items() {
		stats := NewProcessStats(p)
		r.Processes = append(r.Processes, stats)
		turnarounds = append(turnarounds, float64(stats.Turnaround))
		normalized = append(normalized, stats.NormalizedTurnaround)
	}
	if e.TotalProcs > 0 {
		r.MeanTurnaround = floats.Sum(turnarounds) / float64(e.TotalProcs)
		r.MeanNormalizedTurnaround = floats.Sum(normalized) / float64(e.TotalProcs)
	}
	return r
}

// Lookup returns the stats row for id.
func (r *Results) Lookup(id string) (ProcessStats, bool) {
	for _, ps := range r.Processes {
		if ps.ID == id {
			return ps, true
		}
	}
	return ProcessStats{}, false
}
