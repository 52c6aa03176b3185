package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"altscore/internal/domain"
	"altscore/internal/income"
)

// Score runs the full pipeline once for a single user and prints both
// records as JSON.
func (a *App) Score(ctx context.Context, opts ScoreOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Warn().Msg("database.dsn not configured; persistence disabled")
	}
	if closeStore != nil {
		defer closeStore()
	}

	svc := a.newService(nil, a.newSource(), store)

	hints := domain.IdentityHints{
		PhoneNumber: opts.PhoneNumber,
		NationalID:  opts.NationalID,
	}

	outcome, err := svc.ScoreUser(ctx, opts.UserID, hints, opts.IncludeAlternativeData, opts.MonthlyExpenses)
	if err != nil {
		return err
	}

	return printJSON(outcome)
}

// VerifyIncome runs income verification only and prints the record.
func (a *App) VerifyIncome(ctx context.Context, opts ScoreOptions) error {
	source := a.newSource()
	txs, err := source.FetchTransactions(ctx, opts.UserID)
	if err != nil {
		return fmt.Errorf("fetch transactions: %w", err)
	}

	_, verifier := a.newEngines()
	verification := verifier.Verify(opts.UserID, txs, incomeOptions(opts))

	return printJSON(verification)
}

func incomeOptions(opts ScoreOptions) income.Options {
	return income.Options{MonthlyExpenses: opts.MonthlyExpenses}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
