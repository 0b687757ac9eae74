package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelford(t *testing.T) {
	t.Parallel()
	var w Welford
	if w.SampleVariance() != 0 {
		t.Errorf("expected '%v' received '%v'", 0, w.SampleVariance())
	}

	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.Add(v)
	}
	if w.Count() != 5 {
		t.Errorf("expected '%v' received '%v'", 5, w.Count())
	}
	assert.InDelta(t, 3, w.Mean(), 1e-12)
	assert.InDelta(t, 2.5, w.SampleVariance(), 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), w.SampleStandardDeviation(), 1e-12)

	w.Reset()
	if w.Count() != 0 {
		t.Errorf("expected '%v' received '%v'", 0, w.Count())
	}
}

func TestWelfordSingleValue(t *testing.T) {
	t.Parallel()
	var w Welford
	w.Add(42)
	assert.InDelta(t, 42, w.Mean(), 1e-12)
	if w.SampleVariance() != 0 {
		t.Errorf("expected '%v' received '%v'", 0, w.SampleVariance())
	}
}

func TestWelfordMatchesTwoPass(t *testing.T) {
	t.Parallel()
	values := []float64{0.01, -0.02, 0.005, 0.03, -0.015, 0.0, 0.025}
	var w Welford
	var sum float64
	for _, v := range values {
		w.Add(v)
		sum += v
	}
	mean := sum / float64(len(values))
	var m2 float64
	for _, v := range values {
		m2 += (v - mean) * (v - mean)
	}
	assert.InDelta(t, mean, w.Mean(), 1e-15)
	assert.InDelta(t, m2/float64(len(values)-1), w.SampleVariance(), 1e-15)
}

func TestSharpeRatio(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 0.1, SharpeRatio(0.001, 0.01, 0), 1e-12)
	assert.InDelta(t, 0.05, SharpeRatio(0.0015, 0.01, 0.001), 1e-12)
}

func TestAnnualiseSharpe(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 0.1*math.Sqrt(252), AnnualiseSharpe(0.1, 252), 1e-12)
}

func TestCompoundAnnualGrowthRate(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 100, CompoundAnnualGrowthRate(100, 200, 1, 1), 1e-12)
	assert.InDelta(t, 41.42135623730951, CompoundAnnualGrowthRate(100, 200, 1, 2), 1e-9)
}
