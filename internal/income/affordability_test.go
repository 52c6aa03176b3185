package income

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/domain"
)

func outflow(date time.Time, amount float64, primary domain.TransactionCategory) domain.EnrichedTransaction {
	return domain.EnrichedTransaction{
		TransactionID: date.Format("20060102") + string(primary),
		AccountID:     "acct-1",
		Amount:        decimal.NewFromFloat(-amount),
		Currency:      "USD",
		Date:          date,
		Category:      domain.CategoryInfo{Primary: primary},
	}
}

func TestAffordabilityAssumedExpenses(t *testing.T) {
	income := decimal.NewFromInt(3000)
	a := Affordability(income, nil, nil)

	assert.Equal(t, ExpenseSourceAssumed, a.ExpenseSource)
	assert.True(t, a.MonthlyExpenses.Equal(decimal.NewFromInt(2100)), "assumed expenses are a fixed share of income")
	assert.True(t, a.DisposableIncome.Equal(decimal.NewFromInt(900)))
	assert.Zero(t, a.DebtToIncomeRatio)
	assert.True(t, a.MaxMonthlyPayment.Equal(decimal.NewFromInt(1200)))
	assert.True(t, a.MaxAffordableLoan.Equal(decimal.NewFromInt(28800)))
	assert.False(t, a.OverLeveraged)
	assert.False(t, a.HighExpenseVolatility)
}

func TestAffordabilityReportedExpenses(t *testing.T) {
	income := decimal.NewFromInt(3000)
	reported := decimal.NewFromInt(1500)
	a := Affordability(income, nil, &reported)

	assert.Equal(t, ExpenseSourceReported, a.ExpenseSource)
	assert.True(t, a.MonthlyExpenses.Equal(reported))
	assert.True(t, a.DisposableIncome.Equal(decimal.NewFromInt(1500)))
}

func TestAffordabilityDebtService(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	var txs []domain.EnrichedTransaction
	for m := 0; m < 3; m++ {
		txs = append(txs, outflow(start.AddDate(0, m, 0), 600, domain.CategoryLoanPayments))
	}

	income := decimal.NewFromInt(3000)
	a := Affordability(income, txs, nil)

	assert.InDelta(t, 0.2, a.DebtToIncomeRatio, 1e-9)
	// 40% of income minus the 600 monthly debt service
	assert.True(t, a.MaxMonthlyPayment.Equal(decimal.NewFromInt(600)))
	assert.True(t, a.MaxAffordableLoan.Equal(decimal.NewFromInt(14400)))
	assert.False(t, a.OverLeveraged)
}

func TestAffordabilityOverLeveraged(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	var txs []domain.EnrichedTransaction
	for m := 0; m < 3; m++ {
		txs = append(txs, outflow(start.AddDate(0, m, 0), 1500, domain.CategoryLoanPayments))
	}

	income := decimal.NewFromInt(3000)
	a := Affordability(income, txs, nil)

	assert.InDelta(t, 0.5, a.DebtToIncomeRatio, 1e-9)
	assert.True(t, a.OverLeveraged)
	assert.True(t, a.MaxMonthlyPayment.IsZero(), "existing debt above the cap leaves no payment headroom")
	assert.True(t, a.MaxAffordableLoan.IsZero())
}

func TestAffordabilityZeroIncome(t *testing.T) {
	a := Affordability(decimal.Zero, nil, nil)

	assert.True(t, a.MonthlyExpenses.IsZero())
	assert.Zero(t, a.DebtToIncomeRatio)
	assert.True(t, a.MaxMonthlyPayment.IsZero())
	assert.True(t, a.MaxAffordableLoan.IsZero())
	assert.False(t, a.OverLeveraged)
}

func TestAffordabilityExpenseVolatility(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	volatile := []domain.EnrichedTransaction{
		outflow(start, 100, domain.CategoryGeneralMerchandise),
		outflow(start.AddDate(0, 1, 0), 2500, domain.CategoryGeneralMerchandise),
		outflow(start.AddDate(0, 2, 0), 150, domain.CategoryGeneralMerchandise),
	}

	a := Affordability(decimal.NewFromInt(3000), volatile, nil)
	assert.True(t, a.HighExpenseVolatility)

	steady := []domain.EnrichedTransaction{
		outflow(start, 800, domain.CategoryGeneralMerchandise),
		outflow(start.AddDate(0, 1, 0), 820, domain.CategoryGeneralMerchandise),
		outflow(start.AddDate(0, 2, 0), 790, domain.CategoryGeneralMerchandise),
	}

	b := Affordability(decimal.NewFromInt(3000), steady, nil)
	assert.False(t, b.HighExpenseVolatility)
}

func TestMonthlyDebtServiceIgnoresOtherOutflows(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	txs := []domain.EnrichedTransaction{
		outflow(start, 600, domain.CategoryLoanPayments),
		outflow(start.AddDate(0, 0, 2), 900, domain.CategoryRentAndUtilities),
		outflow(start.AddDate(0, 0, 3), 50, domain.CategoryFoodAndDrink),
	}
	require.True(t, monthlyDebtService(txs).Equal(decimal.NewFromInt(600)))
}
