package altdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/domain"
)

type stubProvider struct {
	category domain.SignalCategory
	score    int
	err      error
	delay    time.Duration
}

func (p *stubProvider) Category() domain.SignalCategory { return p.category }

func (p *stubProvider) Fetch(ctx context.Context, subject Subject) (domain.SignalScore, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return domain.SignalScore{}, ctx.Err()
		}
	}
	if p.err != nil {
		return domain.SignalScore{}, p.err
	}
	return domain.SignalScore{Score: p.score}, nil
}

func TestCollectAllSucceed(t *testing.T) {
	providers := []Provider{
		&stubProvider{category: domain.SignalMobileMoney, score: 72},
		&stubProvider{category: domain.SignalTelecom, score: 55},
		&stubProvider{category: domain.SignalUtility, score: 91},
	}
	collector := NewCollector(providers, time.Second, zerolog.Nop())

	result := collector.Collect(context.Background(), Subject{UserID: "user-1"})

	require.Equal(t, 3, result.Succeeded())
	assert.Empty(t, result.Failed)
	assert.Equal(t, 72, result.Signals[domain.SignalMobileMoney].Score)
	assert.Equal(t, 55, result.Signals[domain.SignalTelecom].Score)
	assert.Equal(t, 91, result.Signals[domain.SignalUtility].Score)
}

func TestCollectProviderErrorDegrades(t *testing.T) {
	providers := []Provider{
		&stubProvider{category: domain.SignalMobileMoney, score: 60},
		&stubProvider{category: domain.SignalTelecom, err: errors.New("upstream 503")},
	}
	collector := NewCollector(providers, time.Second, zerolog.Nop())

	result := collector.Collect(context.Background(), Subject{UserID: "user-1"})

	require.Equal(t, 1, result.Succeeded())
	require.Len(t, result.Failed, 1)
	assert.Equal(t, domain.SignalTelecom, result.Failed[0])
	_, ok := result.Signals[domain.SignalTelecom]
	assert.False(t, ok, "failed categories must not appear in Signals")
}

func TestCollectTimeoutBoundsSlowProvider(t *testing.T) {
	providers := []Provider{
		&stubProvider{category: domain.SignalMobileMoney, score: 60},
		&stubProvider{category: domain.SignalEmployment, score: 80, delay: 2 * time.Second},
	}
	collector := NewCollector(providers, 25*time.Millisecond, zerolog.Nop())

	start := time.Now()
	result := collector.Collect(context.Background(), Subject{UserID: "user-1"})
	elapsed := time.Since(start)

	assert.Less(t, elapsed, time.Second, "a slow provider must not stall the round")
	require.Equal(t, 1, result.Succeeded())
	require.Len(t, result.Failed, 1)
	assert.Equal(t, domain.SignalEmployment, result.Failed[0])
}

func TestCollectClampsScores(t *testing.T) {
	providers := []Provider{
		&stubProvider{category: domain.SignalSocial, score: 140},
		&stubProvider{category: domain.SignalLocation, score: -5},
	}
	collector := NewCollector(providers, time.Second, zerolog.Nop())

	result := collector.Collect(context.Background(), Subject{UserID: "user-1"})

	assert.Equal(t, 100, result.Signals[domain.SignalSocial].Score)
	assert.Equal(t, 0, result.Signals[domain.SignalLocation].Score)
}

func TestNewCollectorDefaultTimeout(t *testing.T) {
	collector := NewCollector(nil, 0, zerolog.Nop())
	assert.Equal(t, defaultFetchTimeout, collector.timeout)
	assert.Zero(t, collector.Providers())
}
