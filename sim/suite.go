package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// SuiteConfig groups options shared by every run of a suite.
type SuiteConfig struct {
	Engine   EngineConfig
	Parallel bool // run each engine on its own goroutine
}

// RunSuite executes every run on its own Engine over the same workload and
// returns results in run order. Engines share nothing but the read-only specs.
// All runs execute even if one fails; the returned error joins every failure.
func RunSuite(runs []RunSpec, specs []ProcessSpec, cfg SuiteConfig) ([]*Results, error) {
	results := make([]*Results, len(runs))
	errs := make([]error, len(runs))

	runOne := func(i int) {
		r := runs[i]
		eng, err := NewEngine(r.NewPolicy(), specs, cfg.Engine)
		if err != nil {
			errs[i] = fmt.Errorf("run %s: %w", r.Label, err)
			return
		}
		if err := eng.Run(); err != nil {
			errs[i] = fmt.Errorf("run %s: %w", r.Label, err)
			return
		}
		res := eng.Results()
		res.Label = r.Label
		results[i] = res
	}

	if cfg.Parallel {
		var wg sync.WaitGroup
		for i := range runs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				runOne(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range runs {
			runOne(i)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return results, err
	}
	logrus.Infof("Completed %d runs over %d processes", len(runs), len(specs))
	return results, nil
}
