package workload

import (
	"fmt"
)

// ConvertCSV converts a CSV workload file into a WorkloadSpec.
func ConvertCSV(path string) (*WorkloadSpec, error) {
	if path == "" {
		return nil, fmt.Errorf("CSV workload path must not be empty")
	}
	specs, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return FromProcessSpecs(specs), nil
}

// ComposeSpecs merges multiple workload specs into one, concatenating their
// process lists in argument order. Process IDs must be unique across all inputs.
func ComposeSpecs(specs []*WorkloadSpec) (*WorkloadSpec, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one spec file required")
	}

	merged := &WorkloadSpec{Version: "1"}
	seen := make(map[string]int)
	for i, s := range specs {
		for _, p := range s.Processes {
			if prev, ok := seen[p.ID]; ok {
				return nil, fmt.Errorf("process %q appears in spec %d and spec %d", p.ID, prev, i)
			}
			seen[p.ID] = i
			merged.Processes = append(merged.Processes, p)
		}
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("composed spec: %w", err)
	}
	return merged, nil
}
