// Defines the Process struct that models a single process in the simulation.
// Tracks static demand (arrival, service, I/O bursts) and the mutable state the
// engine accumulates while the process moves between queues.

package sim

import (
	"errors"
	"fmt"

	"github.com/markphelps/optional"
)

// ErrInvalidProcess is returned when a process descriptor violates a load-time invariant.
var ErrInvalidProcess = errors.New("invalid process")

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StatePending  ProcessState = "pending"
	StateReady    ProcessState = "ready"
	StateRunning  ProcessState = "running"
	StateIOWait   ProcessState = "io-wait"
	StateFinished ProcessState = "finished"
)

// IOBurst is a blocking I/O period. The process blocks once it has executed
// Offset CPU ticks, and stays blocked for Duration ticks.
type IOBurst struct {
	Offset   int64 `yaml:"offset"`
	Duration int64 `yaml:"duration"`
}

// ProcessSpec is the immutable workload descriptor for one process, as handed
// to the core by a loader. Engines build fresh Process records from it, so one
// slice of specs can feed any number of runs.
type ProcessSpec struct {
	ID          string
	ArrivalTime int64
	ServiceTime int64
	IOBursts    []IOBurst
}

// Validate checks the load-time invariants of a single descriptor.
// Offsets must lie in [1, ServiceTime) and be strictly increasing; an offset of 0
// could never trigger, since the I/O check runs only after at least one tick of work.
func (ps ProcessSpec) Validate() error {
	if ps.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProcess)
	}
	if ps.ArrivalTime < 0 {
		return fmt.Errorf("%w: %s: arrival time must be non-negative, got %d", ErrInvalidProcess, ps.ID, ps.ArrivalTime)
	}
	if ps.ServiceTime <= 0 {
		return fmt.Errorf("%w: %s: service time must be positive, got %d", ErrInvalidProcess, ps.ID, ps.ServiceTime)
	}
	prev := int64(0)
	for i, b := range ps.IOBursts {
		if b.Offset <= prev {
			return fmt.Errorf("%w: %s: io burst %d offset %d must be greater than %d", ErrInvalidProcess, ps.ID, i, b.Offset, prev)
		}
		if b.Offset >= ps.ServiceTime {
			return fmt.Errorf("%w: %s: io burst %d offset %d must be less than service time %d", ErrInvalidProcess, ps.ID, i, b.Offset, ps.ServiceTime)
		}
		if b.Duration <= 0 {
			return fmt.Errorf("%w: %s: io burst %d duration must be positive, got %d", ErrInvalidProcess, ps.ID, i, b.Duration)
		}
		prev = b.Offset
	}
	return nil
}

// ValidateProcessSpecs validates every descriptor and checks that IDs are unique.
func ValidateProcessSpecs(specs []ProcessSpec) error {
	seen := make(map[string]bool, len(specs))
	for _, ps := range specs {
		if err := ps.Validate(); err != nil {
			return err
		}
		if seen[ps.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidProcess, ps.ID)
		}
		seen[ps.ID] = true
	}
	return nil
}

// Process is the engine's mutable record for one process.
//
// Invariant: ServiceTime - RemainingTime equals the CPU ticks actually executed.
// Start and finish times are set exactly once.
type Process struct {
	ID          string
	ArrivalTime int64
	ServiceTime int64

	State         ProcessState
	RemainingTime int64 // decreases from ServiceTime to 0
	TimeInReady   int64 // ticks spent queued in ready
	TimeInIOWait  int64 // ticks spent queued in io-wait
	TimeInCPU     int64 // consecutive ticks in the current quantum (Round Robin only)

	// Pending I/O bursts, consumed front to back. The head's Duration counts
	// down while the process sits in io-wait.
	IOBursts *Queue[*IOBurst]

	start  optional.Int64
	finish optional.Int64
}

// NewProcess builds a fresh record from a descriptor.
func NewProcess(spec ProcessSpec) *Process {
	bursts := NewQueue[*IOBurst]()
	for _, b := range spec.IOBursts {
		burst := b
		bursts.Enqueue(&burst)
	}
	return &Process{
		ID:            spec.ID,
		ArrivalTime:   spec.ArrivalTime,
		ServiceTime:   spec.ServiceTime,
		State:         StatePending,
		RemainingTime: spec.ServiceTime,
		IOBursts:      bursts,
	}
}

// Elapsed returns the CPU ticks executed so far.
func (p *Process) Elapsed() int64 {
	return p.ServiceTime - p.RemainingTime
}

// Started reports whether the process has ever been dispatched.
func (p *Process) Started() bool {
	return p.start.Present()
}

// StartTime returns the clock value at first dispatch, or 0 if never dispatched.
func (p *Process) StartTime() int64 {
	return p.start.OrElse(0)
}

// FinishTime returns the clock value at which completion was detected, or 0 if unfinished.
func (p *Process) FinishTime() int64 {
	return p.finish.OrElse(0)
}

// markStarted latches the start time on first dispatch; later calls are no-ops.
func (p *Process) markStarted(clock int64) {
	if !p.start.Present() {
		p.start.Set(clock)
	}
}

// markFinished records the finish time exactly once.
func (p *Process) markFinished(clock int64) {
	if p.finish.Present() {
		panic(fmt.Sprintf("markFinished: process %s already finished", p.ID))
	}
	p.finish.Set(clock)
	p.State = StateFinished
}

// dueForIO reports whether the executed CPU time has reached the next burst's offset.
func (p *Process) dueForIO() bool {
	head, ok := p.IOBursts.Peek()
	return ok && p.Elapsed() == head.Offset
}

// TotalWait is the time spent queued in ready plus the time spent in io-wait.
func (p *Process) TotalWait() int64 {
	return p.TimeInReady + p.TimeInIOWait
}

// Turnaround is finish time minus arrival time.
func (p *Process) Turnaround() int64 {
	return p.FinishTime() - p.ArrivalTime
}

// NormalizedTurnaround is turnaround divided by service time.
// Panics on a non-positive service time, which loaders reject.
func (p *Process) NormalizedTurnaround() float64 {
	if p.ServiceTime <= 0 {
		panic(fmt.Sprintf("NormalizedTurnaround: process %s has non-positive service time %d", p.ID, p.ServiceTime))
	}
	return float64(p.Turnaround()) / float64(p.ServiceTime)
}

// This method returns a human-readable string representation of a Process.
func (p *Process) String() string {
	return fmt.Sprintf("Process: (ID: %s, State: %s, Remaining: %d, ArrivalTime: %d)", p.ID, p.State, p.RemainingTime, p.ArrivalTime)
}
