package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/procsched/sim"
)

// loadRunBundle returns the built-in runs when path is empty, otherwise the
// bundle at path. Either way the bundle is validated.
func loadRunBundle(path string) (*sim.RunBundle, error) {
	bundle := sim.DefaultRunBundle()
	if path != "" {
		loaded, err := sim.LoadRunBundle(path)
		if err != nil {
			return nil, err
		}
		bundle = loaded
		logrus.Infof("Using run bundle %s (%d runs)", path, len(bundle.Runs))
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}
