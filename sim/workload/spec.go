package workload

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/procsched/sim"
)

// WorkloadSpec is the YAML workload description.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version   string         `yaml:"version"`
	Processes []ProcessEntry `yaml:"processes"`
}

// ProcessEntry describes one process.
type ProcessEntry struct {
	ID       string        `yaml:"id"`
	Arrival  int64         `yaml:"arrival"`
	Service  int64         `yaml:"service"`
	IOBursts []sim.IOBurst `yaml:"io_bursts,omitempty"`
}

var validVersions = map[string]bool{"": true, "1": true}

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: parsing workload spec: %w", ErrMalformedWorkload, err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks the version and every process descriptor.
func (s *WorkloadSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unknown workload spec version %q; valid: 1", s.Version)
	}
	return sim.ValidateProcessSpecs(s.ToProcessSpecs())
}

// ToProcessSpecs converts the spec into core descriptors, preserving order.
func (s *WorkloadSpec) ToProcessSpecs() []sim.ProcessSpec {
	specs := make([]sim.ProcessSpec, 0, len(s.Processes))
	for _, p := range s.Processes {
		specs = append(specs, sim.ProcessSpec{
			ID:          p.ID,
			ArrivalTime: p.Arrival,
			ServiceTime: p.Service,
			IOBursts:    append([]sim.IOBurst(nil), p.IOBursts...),
		})
	}
	return specs
}

// FromProcessSpecs builds a spec from core descriptors.
func FromProcessSpecs(specs []sim.ProcessSpec) *WorkloadSpec {
	out := &WorkloadSpec{Version: "1", Processes: make([]ProcessEntry, 0, len(specs))}
	for _, ps := range specs {
		out.Processes = append(out.Processes, ProcessEntry{
			ID:       ps.ID,
			Arrival:  ps.ArrivalTime,
			Service:  ps.ServiceTime,
			IOBursts: append([]sim.IOBurst(nil), ps.IOBursts...),
		})
	}
	return out
}

// Load reads a workload by file extension: .csv uses the continuation-row
// format, .yaml/.yml the WorkloadSpec format. The result is validated.
func Load(path string) ([]sim.ProcessSpec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".yaml", ".yml":
		spec, err := LoadWorkloadSpec(path)
		if err != nil {
			return nil, err
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("workload %s: %w", path, err)
		}
		return spec.ToProcessSpecs(), nil
	default:
		return nil, fmt.Errorf("workload %s: unsupported extension %q; use .csv, .yaml or .yml", path, filepath.Ext(path))
	}
}
