package scoring

import (
	"math"

	"github.com/shopspring/decimal"

	"altscore/internal/domain"
	"altscore/internal/stats"
)

// Component weights of the traditional score. The weighted components are
// added to the 300 floor and the sum clamped to the score range.
const (
	weightPaymentHistory     = 30.0
	weightTransactionPattern = 25.0
	weightBalanceStability   = 20.0
	weightIncomeConsistency  = 15.0
	weightAccountActivity    = 10.0

	// Without due-date data, the presence of loan/utility payments is
	// taken as a 95% on-time proxy.
	assumedOnTimeRate = 0.95

	microTransactionCutoff = 5.0
)

// TraditionalBreakdown carries the per-component contributions of the
// traditional score, used for explainability factors.
type TraditionalBreakdown struct {
	PaymentHistory     float64
	TransactionPattern float64
	BalanceStability   float64
	IncomeConsistency  float64
	AccountActivity    float64
}

// Total is the summed contribution above the score floor.
func (b TraditionalBreakdown) Total() float64 {
	return b.PaymentHistory + b.TransactionPattern + b.BalanceStability +
		b.IncomeConsistency + b.AccountActivity
}

// traditionalScore computes the bank-data score over well-formed
// transactions. Zero transactions yield exactly the floor, never an error:
// scoring the unscored is a first-class case.
func traditionalScore(txs []domain.EnrichedTransaction) (int, TraditionalBreakdown) {
	var breakdown TraditionalBreakdown

	usable := make([]domain.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		if tx.WellFormed() {
			usable = append(usable, tx)
		}
	}
	if len(usable) == 0 {
		return domain.ScoreFloor, breakdown
	}

	months := distinctMonths(usable)

	breakdown.PaymentHistory = paymentHistoryComponent(usable)
	breakdown.TransactionPattern = transactionPatternComponent(usable, months)
	breakdown.BalanceStability = balanceStabilityComponent(usable)
	breakdown.IncomeConsistency = incomeConsistencyComponent(usable, months)
	breakdown.AccountActivity = accountActivityComponent(len(usable))

	score := int(math.Round(float64(domain.ScoreFloor) + breakdown.Total()))
	return clampScore(score), breakdown
}

func wellFormedCount(txs []domain.EnrichedTransaction) int {
	var n int
	for _, tx := range txs {
		if tx.WellFormed() {
			n++
		}
	}
	return n
}

func clampScore(score int) int {
	if score < domain.ScoreFloor {
		return domain.ScoreFloor
	}
	if score > domain.ScoreCeiling {
		return domain.ScoreCeiling
	}
	return score
}

func distinctMonths(txs []domain.EnrichedTransaction) int {
	seen := map[string]struct{}{}
	for _, tx := range txs {
		seen[tx.Date.UTC().Format("2006-01")] = struct{}{}
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}

func paymentHistoryComponent(txs []domain.EnrichedTransaction) float64 {
	var payments int
	for _, tx := range txs {
		switch tx.Category.Primary {
		case domain.CategoryLoanPayments, domain.CategoryRentAndUtilities:
			payments++
		}
	}
	if payments == 0 {
		return 0
	}
	return assumedOnTimeRate * weightPaymentHistory
}

func transactionPatternComponent(txs []domain.EnrichedTransaction, months int) float64 {
	var component float64

	avgMonthlyCount := float64(len(txs)) / float64(months)
	if avgMonthlyCount >= 10 {
		component += 10
	}

	merchants := map[string]struct{}{}
	for _, tx := range txs {
		if tx.Merchant.Name != "" {
			merchants[tx.Merchant.Name] = struct{}{}
		}
	}
	if len(merchants) >= 15 {
		component += 10
	}

	var micro int
	cutoff := decimal.NewFromFloat(microTransactionCutoff)
	for _, tx := range txs {
		if tx.Amount.Abs().LessThan(cutoff) {
			micro++
		}
	}
	if float64(micro)/float64(len(txs)) < 0.20 {
		component += 5
	}

	return component
}

func balanceStabilityComponent(txs []domain.EnrichedTransaction) float64 {
	amounts := make([]decimal.Decimal, 0, len(txs))
	for _, tx := range txs {
		amounts = append(amounts, tx.Amount)
	}

	cv := stats.CoefficientOfVariation(amounts)
	switch {
	case cv < 0.5:
		return 20
	case cv < 1.0:
		return 15
	case cv < 1.5:
		return 10
	default:
		return 5
	}
}

func incomeConsistencyComponent(txs []domain.EnrichedTransaction, months int) float64 {
	total := decimal.Zero
	var count int
	for _, tx := range txs {
		if tx.Category.Primary == domain.CategoryIncome && tx.Inflow() {
			total = total.Add(tx.Amount)
			count++
		}
	}
	if count == 0 {
		return 0
	}

	monthlyAvg := total.Div(decimal.NewFromInt(int64(months))).InexactFloat64()
	switch {
	case monthlyAvg >= 2000:
		return 15
	case monthlyAvg >= 1000:
		return 12
	case monthlyAvg >= 500:
		return 8
	default:
		return 5
	}
}

func accountActivityComponent(count int) float64 {
	switch {
	case count >= 100:
		return 10
	case count >= 50:
		return 7
	case count >= 20:
		return 5
	default:
		return 2
	}
}
