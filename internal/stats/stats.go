// Package stats provides the shared statistical helpers for the scoring and
// income engines: mean, population standard deviation, and coefficient of
// variation over decimal series.
package stats

import (
	"math"

	"github.com/shopspring/decimal"
)

// Mean returns the arithmetic mean of values, or zero for an empty series.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// StdDev returns the population standard deviation of values, or zero for a
// series shorter than two elements.
func StdDev(values []decimal.Decimal) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values).InexactFloat64()
	var sumSq float64
	for _, v := range values {
		d := v.InexactFloat64() - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// CoefficientOfVariation returns stddev divided by the absolute mean, the
// normalized volatility measure used for balance and income stability. A
// zero mean yields +Inf for a non-degenerate series and 0 otherwise.
func CoefficientOfVariation(values []decimal.Decimal) float64 {
	mean := math.Abs(Mean(values).InexactFloat64())
	sd := StdDev(values)
	if mean == 0 {
		if sd == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return sd / mean
}
