package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"altscore/internal/domain"
	"altscore/internal/enrichment"
)

// Simulate scores a synthetic transaction history through the full
// pipeline, useful for smoke-testing configuration and the provider set
// without upstream connectivity.
func (a *App) Simulate(ctx context.Context, opts SimulateOptions) error {
	if opts.Months <= 0 {
		opts.Months = 6
	}
	if opts.MonthlyIncome.IsZero() {
		opts.MonthlyIncome = decimal.NewFromInt(1500)
	}

	source := &syntheticSource{
		months:        opts.Months,
		monthlyIncome: opts.MonthlyIncome,
	}

	svc := a.newService(nil, source, nil)

	outcome, err := svc.ScoreUser(ctx, opts.UserID, domain.IdentityHints{}, opts.IncludeAlternativeData, nil)
	if err != nil {
		return err
	}

	return printJSON(outcome)
}

// syntheticSource generates a plausible monthly pattern: a salary credit,
// a rent debit, a loan payment, and a handful of merchant purchases.
type syntheticSource struct {
	months        int
	monthlyIncome decimal.Decimal
}

func (s *syntheticSource) FetchTransactions(ctx context.Context, userID string) ([]domain.EnrichedTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(s.months - 1), 0)

	merchants := []string{"City Grocers", "Metro Fuel", "Corner Pharmacy", "Bella Cafe", "QuickMart"}

	var txs []domain.EnrichedTransaction
	var seq int
	add := func(day int, month time.Time, amount decimal.Decimal, category domain.TransactionCategory, merchant string) {
		seq++
		txs = append(txs, domain.EnrichedTransaction{
			TransactionID: fmt.Sprintf("sim-%s-%04d", userID, seq),
			Amount:        amount,
			Currency:      "USD",
			Date:          month.AddDate(0, 0, day-1),
			Category:      domain.CategoryInfo{Primary: category},
			Merchant:      domain.Merchant{Name: merchant},
		})
	}

	spendShare := decimal.NewFromFloat(0.08)
	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		add(25, month, s.monthlyIncome, domain.CategoryIncome, "Acme Payroll")
		add(1, month, s.monthlyIncome.Mul(decimal.NewFromFloat(0.30)).Neg(), domain.CategoryRentAndUtilities, "Harbor Estates")
		add(5, month, s.monthlyIncome.Mul(decimal.NewFromFloat(0.10)).Neg(), domain.CategoryLoanPayments, "First Credit Bank")

		for i, merchant := range merchants {
			add(3+i*5, month, s.monthlyIncome.Mul(spendShare).Neg(), domain.CategoryGeneralMerchandise, merchant)
		}
	}

	return txs, nil
}

var _ enrichment.TransactionSource = (*syntheticSource)(nil)
