package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// readyOf builds a ready queue from prepared records, in order.
func readyOf(ps ...*Process) *Queue[*Process] {
	q := NewQueue[*Process]()
	for _, p := range ps {
		q.Enqueue(p)
	}
	return q
}

func TestPolicy_Select_EmptyReady_ReturnsNil(t *testing.T) {
	for _, pol := range []*Policy{NewFCFS(), NewSPN(), NewHRRN(), NewSRT(), NewRoundRobin(2)} {
		assert.Nil(t, pol.Select(NewQueue[*Process]()), pol.Name)
	}
}

func TestFCFS_Select_LongestWaitWins(t *testing.T) {
	// GIVEN B has waited longest counting both ready and io-wait time
	a := &Process{ID: "A", ServiceTime: 1, TimeInReady: 3}
	b := &Process{ID: "B", ServiceTime: 1, TimeInReady: 1, TimeInIOWait: 4}
	c := &Process{ID: "C", ServiceTime: 1, TimeInReady: 2}
	ready := readyOf(a, b, c)

	// WHEN FCFS selects
	got := NewFCFS().Select(ready)

	// THEN B is removed and A, C keep their order
	assert.Equal(t, "B", got.ID)
	assert.Equal(t, []string{"A", "C"}, processIDs(ready.Items()))
}

func TestFCFS_Select_AllZeroWait_PicksHead(t *testing.T) {
	// No candidate beats the initial accumulator of 0, so the default index wins.
	ready := readyOf(&Process{ID: "A", ServiceTime: 5}, &Process{ID: "B", ServiceTime: 1})
	assert.Equal(t, "A", NewFCFS().Select(ready).ID)
}

func TestSPN_Select_ShortestServiceWins_TieKeepsEarliest(t *testing.T) {
	ready := readyOf(
		&Process{ID: "A", ServiceTime: 6},
		&Process{ID: "B", ServiceTime: 2},
		&Process{ID: "C", ServiceTime: 2},
	)
	pol := NewSPN()
	assert.Equal(t, "B", pol.Select(ready).ID)
	assert.Equal(t, "C", pol.Select(ready).ID)
	assert.Equal(t, "A", pol.Select(ready).ID)
}

func TestHRRN_Select_HighestRatioWins(t *testing.T) {
	// ratios: A (4+8)/8 = 1.5, B (3+2)/2 = 2.5, C (0+1)/1 = 1
	ready := readyOf(
		&Process{ID: "A", ServiceTime: 8, TimeInReady: 4},
		&Process{ID: "B", ServiceTime: 2, TimeInReady: 3},
		&Process{ID: "C", ServiceTime: 1},
	)
	assert.Equal(t, "B", NewHRRN().Select(ready).ID)
}

func TestSRT_Select_SmallestRemainingWins(t *testing.T) {
	ready := readyOf(
		&Process{ID: "A", ServiceTime: 10, RemainingTime: 3},
		&Process{ID: "B", ServiceTime: 2, RemainingTime: 2},
		&Process{ID: "C", ServiceTime: 4, RemainingTime: 2},
	)
	assert.Equal(t, "B", NewSRT().Select(ready).ID)
}

func TestRoundRobin_Select_IsFIFO(t *testing.T) {
	// Ranking fields are ignored: the head always wins.
	ready := readyOf(
		&Process{ID: "A", ServiceTime: 9, TimeInReady: 0},
		&Process{ID: "B", ServiceTime: 1, TimeInReady: 7},
	)
	assert.Equal(t, "A", NewRoundRobin(1).Select(ready).ID)
}

func TestNewRankPolicy_CustomComparator(t *testing.T) {
	// GIVEN a longest-process-first rank
	lpf := NewRankPolicy("Longest Process First", Rank{
		Better: func(c, b float64) bool { return c > b },
		Field:  func(p *Process) float64 { return float64(p.ServiceTime) },
		Init:   math.Inf(-1),
	})
	ready := readyOf(&Process{ID: "A", ServiceTime: 2}, &Process{ID: "B", ServiceTime: 7})

	// THEN it picks by its own field and never preempts
	assert.Equal(t, "B", lpf.Select(ready).ID)
	assert.Equal(t, "rank", lpf.Kind)
	assert.Equal(t, PreemptNone, lpf.Preemption())
	assert.False(t, lpf.ShouldPreempt(&Process{ID: "A"}, 3))
}

func TestNewRankPolicy_NilFunctions_Panics(t *testing.T) {
	assert.Panics(t, func() { NewRankPolicy("bad", Rank{}) })
}

func TestShouldPreempt(t *testing.T) {
	running := &Process{ID: "A", TimeInCPU: 2}
	tests := []struct {
		name     string
		pol      *Policy
		admitted int
		want     bool
	}{
		{"fcfs ignores arrivals", NewFCFS(), 3, false},
		{"spn ignores arrivals", NewSPN(), 1, false},
		{"hrrn ignores arrivals", NewHRRN(), 1, false},
		{"srt preempts on any arrival", NewSRT(), 1, true},
		{"srt keeps cpu without arrivals", NewSRT(), 0, false},
		{"rr below quantum", NewRoundRobin(3), 0, false},
		{"rr at quantum", NewRoundRobin(2), 0, true},
		{"rr past quantum", NewRoundRobin(1), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pol.ShouldPreempt(running, tt.admitted))
		})
	}
}

func TestShouldPreempt_IdleCPU_False(t *testing.T) {
	assert.False(t, NewSRT().ShouldPreempt(nil, 5))
}

func TestNewPolicy_ByName(t *testing.T) {
	tests := []struct {
		name    string
		quantum int64
		want    string
		qb      bool
	}{
		{"fcfs", 0, "First-Come-First-Served", false},
		{"spn", 0, "Shortest Process Next", false},
		{"hrrn", 0, "Highest Response Ratio Next", false},
		{"srt", 0, "Shortest Remaining Time", false},
		{"rr", 4, "Round Robin q = 4", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pol := NewPolicy(tt.name, tt.quantum)
			assert.Equal(t, tt.want, pol.Name)
			assert.Equal(t, tt.name, pol.Kind)
			assert.Equal(t, tt.qb, pol.QuantumBased())
		})
	}
}

func TestNewPolicy_Invalid_Panics(t *testing.T) {
	assert.False(t, IsValidPolicy("lottery"))
	assert.Panics(t, func() { NewPolicy("lottery", 0) })
	assert.Panics(t, func() { NewPolicy("rr", 0) })
	assert.Panics(t, func() { NewRoundRobin(-1) })
}

func TestPreemption_String(t *testing.T) {
	assert.Equal(t, "none", PreemptNone.String())
	assert.Equal(t, "on-arrival", PreemptOnArrival.String())
	assert.Equal(t, "on-quantum", PreemptOnQuantum.String())
	assert.Equal(t, "Preemption(9)", Preemption(9).String())
}
