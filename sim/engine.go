// sim/engine.go
package sim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/procsched/sim/trace"
)

// ErrTickCapExceeded is returned by Run when the clock passes the tick cap
// before every process has finished.
var ErrTickCapExceeded = errors.New("tick cap exceeded")

// Engine is the core object that holds the simulated clock, the four process
// queues, and the tick loop. One Engine serves exactly one run.
type Engine struct {
	Clock  int64
	Policy *Policy
	// Arrival holds processes not yet admitted, sorted by arrival time (stable).
	Arrival *Queue[*Process]
	// Ready holds admitted processes waiting for the CPU, in enqueue order.
	Ready *Queue[*Process]
	// IOWait holds processes blocked on their head I/O burst, in enqueue order.
	IOWait *Queue[*Process]
	// Finished holds completed processes in completion order.
	Finished *Queue[*Process]
	// InContext is the process on the CPU, or nil when idle.
	InContext  *Process
	TotalProcs int
	Done       bool
	MaxTicks   int64
	// Trace is nil unless decision tracing is enabled.
	Trace *trace.SimulationTrace
}

// NewEngine builds an engine over fresh Process records created from specs.
// specs are validated and stably sorted by arrival time; the slice itself is not modified.
func NewEngine(policy *Policy, specs []ProcessSpec, cfg EngineConfig) (*Engine, error) {
	if policy == nil {
		panic("NewEngine: policy must not be nil")
	}
	if err := ValidateProcessSpecs(specs); err != nil {
		return nil, err
	}
	if cfg.MaxTicks < 0 {
		return nil, fmt.Errorf("max ticks must be non-negative, got %d", cfg.MaxTicks)
	}
	sorted := make([]ProcessSpec, len(specs))
	copy(sorted, specs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ArrivalTime < sorted[j].ArrivalTime
	})

	e := &Engine{
		Policy:     policy,
		Arrival:    NewQueue[*Process](),
		Ready:      NewQueue[*Process](),
		IOWait:     NewQueue[*Process](),
		Finished:   NewQueue[*Process](),
		TotalProcs: len(sorted),
		MaxTicks:   cfg.MaxTicks,
	}
	for _, ps := range sorted {
		e.Arrival.Enqueue(NewProcess(ps))
	}
	if e.MaxTicks == 0 {
		e.MaxTicks = DeriveTickCap(sorted)
	}
	if cfg.Trace.Enabled() {
		e.Trace = trace.NewSimulationTrace(cfg.Trace)
	}
	return e, nil
}

// DeriveTickCap bounds the ticks a well-formed workload can take. Every tick
// before completion either executes work or idles while all unfinished
// processes are still arriving or blocked on I/O, so the run cannot outlast
// max arrival + total service + total I/O + the final detection tick.
// The cap doubles that with headroom.
func DeriveTickCap(specs []ProcessSpec) int64 {
	var maxArrival int64
	for _, ps := range specs {
		maxArrival = max(maxArrival, ps.ArrivalTime)
	}
	service := sumBy(specs, func(ps ProcessSpec) int64 { return ps.ServiceTime })
	io := sumBy(specs, func(ps ProcessSpec) int64 {
		return sumBy(ps.IOBursts, func(b IOBurst) int64 { return b.Duration })
	})
	return 2*(maxArrival+service+io+1) + 16
}

// Run ticks until every process has finished.
// Returns ErrTickCapExceeded if the clock passes MaxTicks first.
func (e *Engine) Run() error {
	logrus.Infof("[tick %07d] Starting %s with %d processes", e.Clock, e.Policy.Name, e.TotalProcs)
	for !e.Done {
		if e.Clock > e.MaxTicks {
			return fmt.Errorf("%w: %s stopped at tick %d with %d of %d processes finished",
				ErrTickCapExceeded, e.Policy.Name, e.Clock, e.Finished.Len(), e.TotalProcs)
		}
		e.Tick()
	}
	logrus.Infof("[tick %07d] %s ended", e.Clock, e.Policy.Name)
	return nil
}

// Tick advances the simulation by one unit of time. Steps run in fixed order:
// admission, context transition, completion check, execute, age ready,
// age io-wait, drain I/O completions, advance clock. On the tick that
// completes the run, nothing after the completion check executes.
func (e *Engine) Tick() {
	if e.Done {
		return
	}
	admitted := e.admit()
	e.transition(admitted)

	if e.Finished.Len() == e.TotalProcs {
		e.Done = true
		return
	}

	e.execute()
	e.ageReady()
	e.drainIO(e.ageIOWait())
	e.Clock++
}

// admit moves every process whose arrival time has come into ready,
// stopping at the first one still in the future.
func (e *Engine) admit() int {
	admitted := 0
	for {
		p, ok := e.Arrival.Peek()
		if !ok || p.ArrivalTime > e.Clock {
			break
		}
		e.Arrival.Dequeue()
		p.State = StateReady
		e.Ready.Enqueue(p)
		admitted++
		logrus.Debugf("[tick %07d] admit %s", e.Clock, p.ID)
	}
	return admitted
}

// transition applies at most one context change: finish, block for I/O, or the
// policy's own preemption, then selects a replacement. An idle CPU selects.
func (e *Engine) transition(admitted int) {
	cur := e.InContext
	switch {
	case cur == nil:
		e.dispatch("cpu idle")
	case cur.RemainingTime <= 0:
		cur.markFinished(e.Clock)
		e.Finished.Enqueue(cur)
		e.record(cur.ID, trace.EventFinish, "service complete")
		logrus.Debugf("[tick %07d] finish %s", e.Clock, cur.ID)
		e.dispatch("previous finished")
	case cur.dueForIO():
		cur.State = StateIOWait
		cur.TimeInCPU = 0
		e.IOWait.Enqueue(cur)
		e.record(cur.ID, trace.EventBlock, fmt.Sprintf("io at elapsed %d", cur.Elapsed()))
		logrus.Debugf("[tick %07d] block %s for io", e.Clock, cur.ID)
		e.dispatch("previous blocked")
	case e.Policy.ShouldPreempt(cur, admitted):
		cur.State = StateReady
		cur.TimeInCPU = 0
		e.Ready.Enqueue(cur)
		e.record(cur.ID, trace.EventPreempt, e.Policy.Preemption().String())
		logrus.Debugf("[tick %07d] preempt %s (%s)", e.Clock, cur.ID, e.Policy.Preemption())
		e.dispatch("previous preempted")
	}
}

// dispatch places the policy's choice on the CPU. A nil choice leaves the CPU idle.
func (e *Engine) dispatch(reason string) {
	p := e.Policy.Select(e.Ready)
	e.InContext = p
	if p == nil {
		return
	}
	p.markStarted(e.Clock)
	p.State = StateRunning
	e.record(p.ID, trace.EventDispatch, reason)
	logrus.Debugf("[tick %07d] dispatch %s", e.Clock, p.ID)
}

// execute consumes one tick of work on the running process, if any.
func (e *Engine) execute() {
	if e.InContext == nil {
		e.record("", trace.EventIdle, "ready queue empty")
		return
	}
	e.InContext.RemainingTime--
	if e.Policy.QuantumBased() {
		e.InContext.TimeInCPU++
	}
}

func (e *Engine) ageReady() {
	for _, p := range e.Ready.Items() {
		p.TimeInReady++
	}
}

// ageIOWait charges a tick of waiting to every io-wait occupant and counts down
// its head burst, retiring bursts that reach zero. It returns the processes
// whose burst completed this tick.
func (e *Engine) ageIOWait() map[*Process]bool {
	completed := make(map[*Process]bool)
	for _, p := range e.IOWait.Items() {
		p.TimeInIOWait++
		head, ok := p.IOBursts.Peek()
		if !ok {
			continue
		}
		head.Duration--
		if head.Duration <= 0 {
			p.IOBursts.Dequeue()
			completed[p] = true
		}
	}
	return completed
}

// drainIO moves completed processes to the ready tail, keeping their io-wait order.
func (e *Engine) drainIO(completed map[*Process]bool) {
	if len(completed) == 0 {
		return
	}
	for _, p := range e.IOWait.RemoveIf(func(p *Process) bool { return completed[p] }) {
		p.State = StateReady
		e.Ready.Enqueue(p)
		e.record(p.ID, trace.EventIOComplete, "burst complete")
		logrus.Debugf("[tick %07d] io complete %s", e.Clock, p.ID)
	}
}

func (e *Engine) record(id string, kind trace.EventKind, reason string) {
	if e.Trace == nil {
		return
	}
	e.Trace.Record(trace.DecisionRecord{Clock: e.Clock, ProcessID: id, Kind: kind, Reason: reason})
}
