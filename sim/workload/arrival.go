package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// ArrivalSpec selects the arrival process of a generated workload.
type ArrivalSpec struct {
	Process string   `yaml:"process"`      // "poisson", "gamma", "constant"
	MeanIAT float64  `yaml:"mean_iat"`     // mean inter-arrival time in ticks
	CV      *float64 `yaml:"cv,omitempty"` // gamma only
}

// ArrivalSampler generates inter-arrival times.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in ticks (>= 0).
	// Zero means the next process arrives on the same tick.
	SampleIAT(rng *rand.Rand) int64
}

// ConstantArrivalSampler spaces arrivals evenly.
type ConstantArrivalSampler struct {
	iat int64
}

func (s *ConstantArrivalSampler) SampleIAT(_ *rand.Rand) int64 {
	return s.iat
}

// PoissonSampler generates exponentially-distributed inter-arrival times (CV=1).
type PoissonSampler struct {
	mean float64
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	return int64(math.Round(rng.ExpFloat64() * s.mean))
}

// GammaSampler generates Gamma-distributed inter-arrival times.
// CV > 1 produces bursty arrivals.
type GammaSampler struct {
	shape float64 // 1/CV²
	scale float64 // mean * CV²
}

func (s *GammaSampler) SampleIAT(rng *rand.Rand) int64 {
	return int64(math.Round(gammaRand(rng, s.shape, s.scale)))
}

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's method.
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)

	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// Squeeze test
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

var validArrivalProcesses = map[string]bool{"poisson": true, "gamma": true, "constant": true}

// Validate checks the process name and parameters.
func (a ArrivalSpec) Validate() error {
	if !validArrivalProcesses[a.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: poisson, gamma, constant", a.Process)
	}
	if a.MeanIAT < 0 || math.IsNaN(a.MeanIAT) || math.IsInf(a.MeanIAT, 0) {
		return fmt.Errorf("arrival mean_iat must be a finite non-negative number, got %g", a.MeanIAT)
	}
	if a.CV != nil && *a.CV <= 0 {
		return fmt.Errorf("arrival cv must be positive, got %g", *a.CV)
	}
	return nil
}

// NewArrivalSampler creates an ArrivalSampler from a validated spec.
func NewArrivalSampler(spec ArrivalSpec) ArrivalSampler {
	switch spec.Process {
	case "constant":
		return &ConstantArrivalSampler{iat: int64(math.Round(spec.MeanIAT))}

	case "gamma":
		cv := 1.0
		if spec.CV != nil {
			cv = *spec.CV
		}
		shape := 1.0 / (cv * cv)
		if shape < 0.01 {
			logrus.Warnf("Gamma shape %.4f (CV=%.1f) is very small; falling back to Poisson", shape, cv)
			return &PoissonSampler{mean: spec.MeanIAT}
		}
		return &GammaSampler{shape: shape, scale: spec.MeanIAT * cv * cv}

	default:
		return &PoissonSampler{mean: spec.MeanIAT}
	}
}
