package income

import (
	"github.com/shopspring/decimal"

	"altscore/internal/domain"
	"altscore/internal/stats"
)

const (
	// affordabilityMultiple is the fixed number of maximum monthly
	// payments the loan envelope covers.
	affordabilityMultiple = 24

	// paymentIncomeShare caps debt service at this share of income.
	paymentIncomeShare = 0.40

	// assumedExpenseShare of income is used when the caller supplies no
	// expense figure.
	assumedExpenseShare = 0.70

	overLeverageDTI     = 0.40
	expenseVolatilityCV = 0.50
)

// Expense provenance recorded in the analysis.
const (
	ExpenseSourceReported = "reported"
	ExpenseSourceAssumed  = "assumed"
)

// Affordability derives the lending envelope from monthly income and the
// supplied or assumed expense figure. Debt service and expense volatility
// come from the transaction history.
func Affordability(monthlyIncome decimal.Decimal, txs []domain.EnrichedTransaction, reportedExpenses *decimal.Decimal) domain.AffordabilityAnalysis {
	expenses := decimal.Zero
	source := ExpenseSourceAssumed
	if reportedExpenses != nil {
		expenses = *reportedExpenses
		source = ExpenseSourceReported
	} else if monthlyIncome.Sign() > 0 {
		expenses = monthlyIncome.Mul(decimal.NewFromFloat(assumedExpenseShare))
	}

	debtService := monthlyDebtService(txs)

	dti := 0.0
	if monthlyIncome.Sign() > 0 {
		dti = debtService.Div(monthlyIncome).Round(4).InexactFloat64()
	}

	maxPayment := monthlyIncome.Mul(decimal.NewFromFloat(paymentIncomeShare)).Sub(debtService)
	if maxPayment.Sign() < 0 {
		maxPayment = decimal.Zero
	}

	return domain.AffordabilityAnalysis{
		MonthlyIncome:         monthlyIncome,
		MonthlyExpenses:       expenses,
		ExpenseSource:         source,
		DisposableIncome:      monthlyIncome.Sub(expenses),
		DebtToIncomeRatio:     dti,
		MaxMonthlyPayment:     maxPayment,
		MaxAffordableLoan:     maxPayment.Mul(decimal.NewFromInt(affordabilityMultiple)),
		OverLeveraged:         dti > overLeverageDTI,
		HighExpenseVolatility: expenseVolatility(txs) > expenseVolatilityCV,
	}
}

// monthlyDebtService averages loan payment outflows per observed month.
func monthlyDebtService(txs []domain.EnrichedTransaction) decimal.Decimal {
	monthly := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.WellFormed() || tx.Inflow() {
			continue
		}
		if tx.Category.Primary != domain.CategoryLoanPayments {
			continue
		}
		key := tx.Date.UTC().Format("2006-01")
		monthly[key] = monthly[key].Add(tx.Amount.Abs())
	}
	if len(monthly) == 0 {
		return decimal.Zero
	}
	totals := make([]decimal.Decimal, 0, len(monthly))
	for _, v := range monthly {
		totals = append(totals, v)
	}
	return stats.Mean(totals)
}

// expenseVolatility is the CV of monthly outflow totals.
func expenseVolatility(txs []domain.EnrichedTransaction) float64 {
	monthly := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.WellFormed() || tx.Inflow() {
			continue
		}
		key := tx.Date.UTC().Format("2006-01")
		monthly[key] = monthly[key].Add(tx.Amount.Abs())
	}
	if len(monthly) < 2 {
		return 0
	}
	totals := make([]decimal.Decimal, 0, len(monthly))
	for _, v := range monthly {
		totals = append(totals, v)
	}
	return stats.CoefficientOfVariation(totals)
}
