package workload

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func sampleIATs(sampler ArrivalSampler, seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(sampler.SampleIAT(rng))
	}
	return out
}

func TestPoissonSampler_MeanIAT(t *testing.T) {
	// GIVEN a Poisson process with mean inter-arrival 50 ticks
	sampler := NewArrivalSampler(ArrivalSpec{Process: "poisson", MeanIAT: 50})

	// WHEN 10000 IATs are sampled
	iats := sampleIATs(sampler, 42, 10000)

	// THEN the sample mean is within 5% and CV is about 1
	mean, std := stat.MeanStdDev(iats, nil)
	assert.InDelta(t, 50, mean, 2.5)
	assert.InDelta(t, 1.0, std/mean, 0.1)
}

func TestGammaSampler_HighCV_ProducesBurstierArrivals(t *testing.T) {
	// GIVEN gamma with CV 3 and Poisson at the same mean
	cv := 3.0
	gamma := NewArrivalSampler(ArrivalSpec{Process: "gamma", MeanIAT: 100, CV: &cv})
	poisson := NewArrivalSampler(ArrivalSpec{Process: "poisson", MeanIAT: 100})

	// WHEN 10000 IATs are sampled from each
	gMean, gStd := stat.MeanStdDev(sampleIATs(gamma, 42, 10000), nil)
	pMean, pStd := stat.MeanStdDev(sampleIATs(poisson, 42, 10000), nil)

	// THEN gamma is markedly more variable
	assert.Greater(t, gStd/gMean, 2.0)
	assert.Less(t, pStd/pMean, 1.2)
}

func TestGammaSampler_TinyShape_FallsBackToPoisson(t *testing.T) {
	cv := 20.0
	_, ok := NewArrivalSampler(ArrivalSpec{Process: "gamma", MeanIAT: 10, CV: &cv}).(*PoissonSampler)
	assert.True(t, ok)
}

func TestConstantArrivalSampler(t *testing.T) {
	sampler := NewArrivalSampler(ArrivalSpec{Process: "constant", MeanIAT: 3})
	for _, iat := range sampleIATs(sampler, 1, 10) {
		assert.Equal(t, 3.0, iat)
	}
}

func TestArrivalSpec_Validate(t *testing.T) {
	neg := -1.0
	assert.NoError(t, ArrivalSpec{Process: "poisson", MeanIAT: 0}.Validate())
	assert.Error(t, ArrivalSpec{Process: "weibull", MeanIAT: 1}.Validate())
	assert.Error(t, ArrivalSpec{Process: "poisson", MeanIAT: -2}.Validate())
	assert.Error(t, ArrivalSpec{Process: "gamma", MeanIAT: 1, CV: &neg}.Validate())
}
