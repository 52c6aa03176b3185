package enrichment

import (
	"context"

	"altscore/internal/domain"
)

// TransactionSource retrieves a user's enriched transactions from the
// upstream enrichment service.
type TransactionSource interface {
	FetchTransactions(ctx context.Context, userID string) ([]domain.EnrichedTransaction, error)
}
