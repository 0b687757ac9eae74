package math

import (
	"math"
)

// Welford accumulates a running mean and variance in a single pass so a long
// equity series never needs to be held in memory
type Welford struct {
	count int64
	mean  float64
	m2    float64
}

// Add folds one value into the accumulator
func (w *Welford) Add(value float64) {
	w.count++
	delta := value - w.mean
	w.mean += delta / float64(w.count)
	w.m2 += delta * (value - w.mean)
}

// Count returns the number of values folded in
func (w *Welford) Count() int64 {
	return w.count
}

// Mean returns the running arithmetic mean
func (w *Welford) Mean() float64 {
	return w.mean
}

// SampleVariance returns the running sample variance, zero until two values
// have been folded in
func (w *Welford) SampleVariance() float64 {
	if w.count < 2 {
		return 0
	}
	return w.m2 / float64(w.count-1)
}

// SampleStandardDeviation returns the square root of the sample variance
func (w *Welford) SampleStandardDeviation() float64 {
	return math.Sqrt(w.SampleVariance())
}

// Reset clears the accumulator
func (w *Welford) Reset() {
	w.count = 0
	w.mean = 0
	w.m2 = 0
}

// SharpeRatio returns the per period excess return over its dispersion.
// Callers are responsible for checking the deviation is non zero
func SharpeRatio(meanReturn, standardDeviation, riskFreeRate float64) float64 {
	return (meanReturn - riskFreeRate) / standardDeviation
}

// AnnualiseSharpe scales a per period sharpe ratio to a yearly figure
func AnnualiseSharpe(ratio, periodsPerYear float64) float64 {
	return ratio * math.Sqrt(periodsPerYear)
}

// CompoundAnnualGrowthRate calculates CAGR as a percentage.
// Using years, intervals per year would be 1 and number of intervals would be the number of years
// Using days, intervals per year would be 365 and number of intervals would be the number of days
func CompoundAnnualGrowthRate(openValue, closeValue, intervalsPerYear, numberOfIntervals float64) float64 {
	k := math.Pow(closeValue/openValue, intervalsPerYear/numberOfIntervals) - 1
	return k * 100
}
