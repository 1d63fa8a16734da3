// Package trace provides dispatch decision recording for scheduling runs.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// EventKind names a CPU-context decision taken by the engine.
type EventKind string

const (
	// EventDispatch: a process was placed on the CPU.
	EventDispatch EventKind = "dispatch"
	// EventPreempt: the running process was returned to the ready tail by the policy.
	EventPreempt EventKind = "preempt"
	// EventBlock: the running process reached an I/O burst and moved to io-wait.
	EventBlock EventKind = "block"
	// EventIOComplete: a process finished its I/O burst and rejoined ready.
	EventIOComplete EventKind = "io-complete"
	// EventFinish: completion of the running process was detected.
	EventFinish EventKind = "finish"
	// EventIdle: the CPU executed no work during the tick.
	EventIdle EventKind = "idle"
)

// DecisionRecord captures a single engine decision.
type DecisionRecord struct {
	Clock     int64
	ProcessID string // empty for EventIdle
	Kind      EventKind
	Reason    string
}
