package workload

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/procsched/sim"
)

// GeneratorSpec describes a synthetic workload: how many processes, how they
// arrive, how long they run, and how often they block for I/O.
// Loaded from YAML via LoadGeneratorSpec(path).
type GeneratorSpec struct {
	Seed         int64       `yaml:"seed"`
	Count        int         `yaml:"count"`
	FirstArrival int64       `yaml:"first_arrival,omitempty"`
	Arrival      ArrivalSpec `yaml:"arrival"`
	Service      DistSpec    `yaml:"service"`
	IO           *IOSpec     `yaml:"io,omitempty"`
}

// IOSpec controls I/O burst generation. Each process independently receives
// between 1 and MaxBursts bursts with the given probability.
type IOSpec struct {
	Probability float64  `yaml:"probability"`
	MaxBursts   int      `yaml:"max_bursts"`
	Duration    DistSpec `yaml:"duration"`
}

// LoadGeneratorSpec reads and parses a YAML generator specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	return &spec, nil
}

// Validate checks every field and that each distribution can be built.
func (g *GeneratorSpec) Validate() error {
	if g.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", g.Count)
	}
	if g.FirstArrival < 0 {
		return fmt.Errorf("first_arrival must be non-negative, got %d", g.FirstArrival)
	}
	if err := g.Arrival.Validate(); err != nil {
		return err
	}
	if _, err := NewTickSampler(g.Service); err != nil {
		return fmt.Errorf("service distribution: %w", err)
	}
	if g.IO == nil {
		return nil
	}
	if g.IO.Probability < 0 || g.IO.Probability > 1 {
		return fmt.Errorf("io probability must be in [0, 1], got %g", g.IO.Probability)
	}
	if g.IO.Probability > 0 && g.IO.MaxBursts < 1 {
		return fmt.Errorf("io max_bursts must be at least 1 when probability is positive, got %d", g.IO.MaxBursts)
	}
	if _, err := NewTickSampler(g.IO.Duration); err != nil {
		return fmt.Errorf("io duration distribution: %w", err)
	}
	return nil
}

// GenerateProcesses creates a validated process list from a GeneratorSpec.
// Deterministic given the same spec and seed. Processes are named P1, P2, ...
// in arrival order.
func GenerateProcesses(g *GeneratorSpec) ([]sim.ProcessSpec, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(g.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrivals)
	serviceRNG := rng.ForSubsystem(sim.SubsystemService)
	ioRNG := rng.ForSubsystem(sim.SubsystemIO)

	arrivals := NewArrivalSampler(g.Arrival)
	service, _ := NewTickSampler(g.Service)
	var ioDuration TickSampler
	if g.IO != nil {
		ioDuration, _ = NewTickSampler(g.IO.Duration)
	}

	specs := make([]sim.ProcessSpec, 0, g.Count)
	clock := g.FirstArrival
	for i := 0; i < g.Count; i++ {
		if i > 0 {
			clock += arrivals.SampleIAT(arrivalRNG)
		}
		ps := sim.ProcessSpec{
			ID:          fmt.Sprintf("P%d", i+1),
			ArrivalTime: clock,
			ServiceTime: service.Sample(serviceRNG),
		}
		if g.IO != nil && ps.ServiceTime > 1 && ioRNG.Float64() < g.IO.Probability {
			ps.IOBursts = generateBursts(ioRNG, ps.ServiceTime, g.IO.MaxBursts, ioDuration)
		}
		specs = append(specs, ps)
	}

	if err := sim.ValidateProcessSpecs(specs); err != nil {
		return nil, err
	}
	logrus.Debugf("Generated %d processes (seed %d), last arrival at %d", len(specs), g.Seed, clock)
	return specs, nil
}

// generateBursts places between 1 and maxBursts bursts at distinct offsets in
// [1, service), in increasing order. Offsets are drawn with Floyd's sampling,
// so memory grows with the burst count and not with the service time.
func generateBursts(rng *rand.Rand, service int64, maxBursts int, duration TickSampler) []sim.IOBurst {
	slots := service - 1
	n := 1 + rng.Int63n(min(int64(maxBursts), slots))

	chosen := make(map[int64]bool, n)
	offsets := make([]int64, 0, n)
	for j := slots - n; j < slots; j++ {
		off := rng.Int63n(j + 1)
		if chosen[off] {
			off = j
		}
		chosen[off] = true
		offsets = append(offsets, off)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	bursts := make([]sim.IOBurst, 0, n)
	for _, off := range offsets {
		bursts = append(bursts, sim.IOBurst{Offset: off + 1, Duration: duration.Sample(rng)})
	}
	return bursts
}
