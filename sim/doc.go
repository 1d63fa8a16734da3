// Package sim provides the discrete-time CPU scheduling engine for procsched.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (pending → ready → running ⇄ {ready, io-wait} → finished)
//   - policy.go: the five selection policies and their preemption rules
//   - engine.go: the fixed-order tick loop that moves processes between queues
//
// # Architecture
//
// The sim package holds the core types; adapters live in sub-packages:
//   - sim/workload/: workload loading (CSV continuation rows, YAML spec), conversion,
//     composition and seeded synthetic generation (drawing from PartitionedRNG in rng.go)
//   - sim/report/: results CSV and aligned text table
//   - sim/trace/: dispatch decision recording
//
// Each Engine owns its four queues and the clock. Nothing is shared between
// engines, so a suite of runs (RunSuite) may execute them in parallel.
//
// # Policies
//
// Policies are a closed set selected by name: "fcfs", "spn", "hrrn", "srt", "rr".
// Rank-based policies (FCFS, SPN, HRRN, SRT) scan the whole ready queue once per
// selection and keep the earliest-queued candidate on ties. Round Robin selects
// the ready head.
package sim
