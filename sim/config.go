package sim

import "github.com/inference-sim/procsched/sim/trace"

// EngineConfig groups per-run engine options.
type EngineConfig struct {
	// MaxTicks bounds the tick loop. A well-formed workload always finishes well
	// inside the derived bound; exceeding it means a process stalled.
	// 0 = derive from the workload (see DeriveTickCap).
	MaxTicks int64
	Trace    trace.TraceConfig // decision tracing (default: none)
}
