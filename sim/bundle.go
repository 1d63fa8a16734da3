package sim

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunBundle holds the set of configured runs, loadable from a YAML file.
type RunBundle struct {
	Version string    `yaml:"version"`
	Runs    []RunSpec `yaml:"runs"`
}

// RunSpec configures one run: a policy plus the names it is reported under.
type RunSpec struct {
	Name    string `yaml:"name"`              // display name; empty uses the policy default
	Label   string `yaml:"label"`             // short unique key, used as the output file prefix
	Policy  string `yaml:"policy"`            // "fcfs", "spn", "hrrn", "srt", "rr"
	Quantum int64  `yaml:"quantum,omitempty"` // Round Robin only
}

// DefaultRunBundle returns the six standard runs.
func DefaultRunBundle() *RunBundle {
	return &RunBundle{
		Version: "1",
		Runs: []RunSpec{
			{Name: "First-Come-First-Served", Label: "fcfs", Policy: "fcfs"},
			{Name: "Shortest Process Next", Label: "spn", Policy: "spn"},
			{Name: "Highest Response Ratio Next", Label: "hrrn", Policy: "hrrn"},
			{Name: "Shortest Remaining Time", Label: "srt", Policy: "srt"},
			{Name: "Round Robin q = 1", Label: "rr1", Policy: "rr", Quantum: 1},
			{Name: "Round Robin q = 4", Label: "rr4", Policy: "rr", Quantum: 4},
		},
	}
}

// LoadRunBundle reads and parses a YAML run configuration file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunBundle(path string) (*RunBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var bundle RunBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &bundle, nil
}

// Validate checks policy names, quanta and label uniqueness.
func (b *RunBundle) Validate() error {
	if len(b.Runs) == 0 {
		return fmt.Errorf("run config must list at least one run")
	}
	labels := make(map[string]bool, len(b.Runs))
	for i, r := range b.Runs {
		prefix := fmt.Sprintf("runs[%d]", i)
		if !IsValidPolicy(r.Policy) {
			return fmt.Errorf("%s: %w %q; valid: fcfs, spn, hrrn, srt, rr", prefix, ErrUnknownPolicy, r.Policy)
		}
		if r.Policy == "rr" && r.Quantum <= 0 {
			return fmt.Errorf("%s: rr quantum must be positive, got %d", prefix, r.Quantum)
		}
		if r.Policy != "rr" && r.Quantum != 0 {
			return fmt.Errorf("%s: quantum is only valid for rr, got %d for %s", prefix, r.Quantum, r.Policy)
		}
		if r.Label == "" {
			return fmt.Errorf("%s: label must not be empty", prefix)
		}
		if strings.ContainsAny(r.Label, `/\`) {
			return fmt.Errorf("%s: label %q must not contain path separators", prefix, r.Label)
		}
		if labels[r.Label] {
			return fmt.Errorf("%s: duplicate label %q", prefix, r.Label)
		}
		labels[r.Label] = true
	}
	return nil
}

// Select returns a bundle restricted to the given labels, in bundle order.
// An empty label list returns the bundle unchanged.
func (b *RunBundle) Select(labels []string) (*RunBundle, error) {
	if len(labels) == 0 {
		return b, nil
	}
	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		want[l] = true
	}
	out := &RunBundle{Version: b.Version}
	for _, r := range b.Runs {
		if want[r.Label] {
			out.Runs = append(out.Runs, r)
			delete(want, r.Label)
		}
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for l := range want {
			missing = append(missing, l)
		}
		sort.Strings(missing)
		known := make([]string, 0, len(b.Runs))
		for _, r := range b.Runs {
			known = append(known, r.Label)
		}
		return nil, fmt.Errorf("no run labelled %s; known labels: %s",
			strings.Join(missing, ", "), strings.Join(known, ", "))
	}
	return out, nil
}

// NewPolicy builds the run's policy. The run name, if set, replaces the policy's display name.
// Panics on an invalid spec; call Validate first.
func (r RunSpec) NewPolicy() *Policy {
	pol := NewPolicy(r.Policy, r.Quantum)
	if r.Name != "" {
		pol.Name = r.Name
	}
	return pol
}
