package stats

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decs(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestMean(t *testing.T) {
	assert.True(t, Mean(nil).IsZero())
	assert.True(t, Mean(decs(2, 4, 6)).Equal(decimal.NewFromInt(4)))
	assert.True(t, Mean(decs(-10, 10)).IsZero())
}

func TestStdDev(t *testing.T) {
	assert.Zero(t, StdDev(nil))
	assert.Zero(t, StdDev(decs(5)))
	assert.Zero(t, StdDev(decs(3, 3, 3)))

	// population stddev of {2,4,4,4,5,5,7,9} is exactly 2
	require.InDelta(t, 2.0, StdDev(decs(2, 4, 4, 4, 5, 5, 7, 9)), 1e-9)
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.Zero(t, CoefficientOfVariation(nil))
	assert.Zero(t, CoefficientOfVariation(decs(100, 100, 100)))

	cv := CoefficientOfVariation(decs(2, 4, 4, 4, 5, 5, 7, 9))
	require.InDelta(t, 2.0/5.0, cv, 1e-9)

	// negative means use the absolute value
	cvNeg := CoefficientOfVariation(decs(-2, -4, -4, -4, -5, -5, -7, -9))
	require.InDelta(t, cv, cvNeg, 1e-9)

	assert.True(t, math.IsInf(CoefficientOfVariation(decs(-10, 10)), 1))
}
