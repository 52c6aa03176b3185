package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/domain"
)

func factorByCategory(factors []domain.ScoreFactor, category string) (domain.ScoreFactor, bool) {
	for _, f := range factors {
		if f.Category == category {
			return f, true
		}
	}
	return domain.ScoreFactor{}, false
}

func TestBuildFactorsNoHistory(t *testing.T) {
	factors := buildFactors(TraditionalBreakdown{}, nil, 0)

	require.Len(t, factors, 1)
	assert.Equal(t, "Credit History", factors[0].Category)
	assert.Equal(t, domain.ImpactNegative, factors[0].Impact)
}

func TestBuildFactorsTraditionalComponents(t *testing.T) {
	breakdown := TraditionalBreakdown{
		PaymentHistory:     28.5,
		TransactionPattern: 25,
		BalanceStability:   20,
		IncomeConsistency:  15,
		AccountActivity:    10,
	}
	factors := buildFactors(breakdown, nil, 120)

	for _, category := range []string{"Payment History", "Transaction Patterns", "Balance Stability", "Income Consistency"} {
		f, ok := factorByCategory(factors, category)
		require.True(t, ok, "missing %s", category)
		assert.Equal(t, domain.ImpactPositive, f.Impact, category)
	}
}

func TestBuildFactorsNegativeComponents(t *testing.T) {
	breakdown := TraditionalBreakdown{
		PaymentHistory:   0,
		BalanceStability: 5,
	}
	factors := buildFactors(breakdown, nil, 30)

	payment, ok := factorByCategory(factors, "Payment History")
	require.True(t, ok)
	assert.Equal(t, domain.ImpactNegative, payment.Impact)

	stability, ok := factorByCategory(factors, "Balance Stability")
	require.True(t, ok)
	assert.Equal(t, domain.ImpactNegative, stability.Impact)
}

func TestBuildFactorsAlternativeSignals(t *testing.T) {
	alt := &domain.AlternativeDataScore{
		MobileMoney: domain.SignalScore{Score: 85},
		Employment:  domain.SignalScore{Score: 30},
		Telecom:     domain.SignalScore{Score: 55},
		Utility:     domain.SignalScore{Insights: map[string]any{"status": "unavailable"}},
	}
	factors := buildFactors(TraditionalBreakdown{PaymentHistory: 28.5}, alt, 30)

	mobile, ok := factorByCategory(factors, "Mobile Money Usage")
	require.True(t, ok)
	assert.Equal(t, domain.ImpactPositive, mobile.Impact)
	assert.Equal(t, 25.0, mobile.Weight)

	employment, ok := factorByCategory(factors, "Employment Verification")
	require.True(t, ok)
	assert.Equal(t, domain.ImpactNegative, employment.Impact)

	_, ok = factorByCategory(factors, "Telecom Payment Behavior")
	assert.False(t, ok, "mid-range signals yield no factor")

	_, ok = factorByCategory(factors, "Utility Payment History")
	assert.False(t, ok, "unavailable signals yield no factor")
}
