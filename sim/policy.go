package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownPolicy is returned by validation when a policy name is not recognized.
var ErrUnknownPolicy = errors.New("unknown policy")

// Rank configures a rank-based selection: a single scan of the ready queue that
// keeps a running best index and accumulator, seeded with Init. A candidate
// replaces the best only if Better(Field(candidate), accumulator) holds, so ties
// keep the earliest-queued candidate.
type Rank struct {
	Better func(candidate, best float64) bool
	Field  func(p *Process) float64
	Init   float64
}

func greater(candidate, best float64) bool { return candidate > best }
func less(candidate, best float64) bool    { return candidate < best }

// responseRatio is (wait + service) / service.
func responseRatio(p *Process) float64 {
	return float64(p.TotalWait()+p.ServiceTime) / float64(p.ServiceTime)
}

// Preemption identifies the policy-specific preemption rule evaluated after the
// engine's own finish and I/O checks.
type Preemption int

const (
	// PreemptNone: the running process keeps the CPU until it finishes or blocks.
	PreemptNone Preemption = iota
	// PreemptOnArrival: any admission during the tick requeues the running process.
	PreemptOnArrival
	// PreemptOnQuantum: the running process is requeued once it has used a full quantum.
	PreemptOnQuantum
)

func (p Preemption) String() string {
	switch p {
	case PreemptNone:
		return "none"
	case PreemptOnArrival:
		return "on-arrival"
	case PreemptOnQuantum:
		return "on-quantum"
	default:
		return fmt.Sprintf("Preemption(%d)", int(p))
	}
}

// Policy is the pick-next and should-preempt decision for one run.
// Constructed once, immutable thereafter, and shared by reference with the Engine.
type Policy struct {
	Kind string // "fcfs", "spn", "hrrn", "srt", "rr", or "rank" for custom comparators
	Name string // display name, e.g. "Shortest Process Next"

	rank       *Rank // nil selects the ready head (Round Robin)
	preemption Preemption
	quantum    int64
}

// NewFCFS selects the process with the largest total wait.
func NewFCFS() *Policy {
	return &Policy{Kind: "fcfs", Name: "First-Come-First-Served", rank: &Rank{
		Better: greater,
		Field:  func(p *Process) float64 { return float64(p.TotalWait()) },
		Init:   0,
	}}
}

// NewSPN selects the process with the smallest service time.
func NewSPN() *Policy {
	return &Policy{Kind: "spn", Name: "Shortest Process Next", rank: &Rank{
		Better: less,
		Field:  func(p *Process) float64 { return float64(p.ServiceTime) },
		Init:   math.Inf(1),
	}}
}

// NewHRRN selects the process with the highest response ratio.
func NewHRRN() *Policy {
	return &Policy{Kind: "hrrn", Name: "Highest Response Ratio Next", rank: &Rank{
		Better: greater,
		Field:  responseRatio,
		Init:   0,
	}}
}

// NewSRT selects the process with the smallest remaining time, and requeues the
// running process whenever anything is admitted during the tick, even when the
// newcomer could not win the reselection.
func NewSRT() *Policy {
	return &Policy{Kind: "srt", Name: "Shortest Remaining Time", preemption: PreemptOnArrival, rank: &Rank{
		Better: less,
		Field:  func(p *Process) float64 { return float64(p.RemainingTime) },
		Init:   math.Inf(1),
	}}
}

// NewRoundRobin selects the ready head and preempts after quantum consecutive ticks.
// Panics if quantum is not positive.
func NewRoundRobin(quantum int64) *Policy {
	if quantum <= 0 {
		panic(fmt.Sprintf("NewRoundRobin: quantum must be positive, got %d", quantum))
	}
	return &Policy{
		Kind:       "rr",
		Name:       fmt.Sprintf("Round Robin q = %d", quantum),
		preemption: PreemptOnQuantum,
		quantum:    quantum,
	}
}

// NewRankPolicy builds a non-preemptive policy from a custom rank configuration.
func NewRankPolicy(name string, rank Rank) *Policy {
	if rank.Better == nil || rank.Field == nil {
		panic("NewRankPolicy: Better and Field must not be nil")
	}
	r := rank
	return &Policy{Kind: "rank", Name: name, rank: &r}
}

// validPolicies is the set of recognized policy names.
var validPolicies = map[string]bool{"fcfs": true, "spn": true, "hrrn": true, "srt": true, "rr": true}

// IsValidPolicy reports whether name is a recognized policy.
func IsValidPolicy(name string) bool {
	return validPolicies[name]
}

// NewPolicy creates a Policy by name. quantum is only read for "rr".
// Panics on unrecognized names; validate with IsValidPolicy first.
func NewPolicy(name string, quantum int64) *Policy {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown policy %q", name))
	}
	switch name {
	case "fcfs":
		return NewFCFS()
	case "spn":
		return NewSPN()
	case "hrrn":
		return NewHRRN()
	case "srt":
		return NewSRT()
	case "rr":
		return NewRoundRobin(quantum)
	default:
		panic(fmt.Sprintf("unhandled policy %q", name))
	}
}

// Preemption returns the policy's own preemption rule.
func (pol *Policy) Preemption() Preemption {
	return pol.preemption
}

// Quantum returns the Round Robin quantum, or 0 for other policies.
func (pol *Policy) Quantum() int64 {
	return pol.quantum
}

// QuantumBased reports whether the engine must count consecutive CPU ticks.
func (pol *Policy) QuantumBased() bool {
	return pol.preemption == PreemptOnQuantum
}

// Select removes and returns the next process to run from ready, or nil if the
// ready queue is empty (idle CPU).
func (pol *Policy) Select(ready *Queue[*Process]) *Process {
	if ready.Len() == 0 {
		return nil
	}
	if pol.rank == nil {
		p, _ := ready.Dequeue()
		return p
	}
	return ready.DequeueAt(pol.bestIndex(ready.Items()))
}

// bestIndex scans candidates once in queue order.
func (pol *Policy) bestIndex(candidates []*Process) int {
	acc := pol.rank.Init
	index := 0
	for i, p := range candidates {
		if v := pol.rank.Field(p); pol.rank.Better(v, acc) {
			acc = v
			index = i
		}
	}
	return index
}

// ShouldPreempt applies the policy's own preemption rule to the running process.
// admitted is the number of processes admitted from the arrival queue this tick.
func (pol *Policy) ShouldPreempt(running *Process, admitted int) bool {
	if running == nil {
		return false
	}
	switch pol.preemption {
	case PreemptOnArrival:
		return admitted > 0
	case PreemptOnQuantum:
		return running.TimeInCPU >= pol.quantum
	default:
		return false
	}
}

func (pol *Policy) String() string {
	return pol.Name
}
