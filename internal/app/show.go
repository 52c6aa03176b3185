package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"
)

// Show prints recent credit scores.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database not configured; cannot show scores")
	}
	if closeStore != nil {
		defer closeStore()
	}

	records, err := store.ListRecentScores(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "no scores found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Scored (UTC)\tUser\tScore\tBand\tGrade\tPctl\tPD\tConfidence\tExpires")

	for _, record := range records {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%d\t%s\t%s\t%d\t%.4f\t%.2f\t%s\n",
			record.ScoredAt.UTC().Format(time.RFC3339),
			record.UserID,
			record.Score,
			record.Band,
			record.RiskGrade,
			record.Percentile,
			record.DefaultProbability,
			record.ModelConfidence,
			record.ExpiresAt.UTC().Format("2006-01-02"),
		)
	}

	writer.Flush()
	return nil
}
