package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions  int
	Dispatches      int
	ContextSwitches int // dispatches of a different process than the previous dispatch
	Preemptions     int
	Blocks          int
	IOCompletions   int
	Finishes        int
	IdleTicks       int
	// DispatchDistribution maps process ID → number of dispatches.
	DispatchDistribution map[string]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Decisions)
	last := ""
	for _, d := range st.Decisions {
		switch d.Kind {
		case EventDispatch:
			summary.Dispatches++
			summary.DispatchDistribution[d.ProcessID]++
			if d.ProcessID != last {
				summary.ContextSwitches++
			}
			last = d.ProcessID
		case EventPreempt:
			summary.Preemptions++
		case EventBlock:
			summary.Blocks++
		case EventIOComplete:
			summary.IOCompletions++
		case EventFinish:
			summary.Finishes++
		case EventIdle:
			summary.IdleTicks++
		}
	}
	return summary
}
