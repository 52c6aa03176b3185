// Package altdata defines the seam between the scoring engine and external
// alternative-data providers (telecom APIs, employment registries, and
// similar), plus the fan-out collector that queries them concurrently.
package altdata

import (
	"context"

	"altscore/internal/domain"
)

// Subject identifies whose signals to look up. Identity hints route
// provider calls only; they are never validated or stored.
type Subject struct {
	UserID      string
	PhoneNumber string
	NationalID  string
}

// Provider fetches one alternative-data signal. Real integrations are
// I/O-bound and may be slow or unavailable; callers bound each Fetch with
// a timeout and treat errors as a missing sub-score.
type Provider interface {
	Category() domain.SignalCategory
	Fetch(ctx context.Context, subject Subject) (domain.SignalScore, error)
}
