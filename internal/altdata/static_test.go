package altdata

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/domain"
)

func TestStaticProvidersCoverEveryCategory(t *testing.T) {
	providers := StaticProviders()
	require.Len(t, providers, len(domain.SignalCategories()))

	seen := map[domain.SignalCategory]bool{}
	for _, p := range providers {
		seen[p.Category()] = true
	}
	for _, c := range domain.SignalCategories() {
		assert.True(t, seen[c], "missing provider for %s", c)
	}
}

func TestStaticProviderDeterministic(t *testing.T) {
	subject := Subject{UserID: "user-9", PhoneNumber: "+254711000222", NationalID: "ID-42"}
	collector := NewCollector(StaticProviders(), time.Second, zerolog.Nop())

	first := collector.Collect(context.Background(), subject)
	second := collector.Collect(context.Background(), subject)

	require.Equal(t, len(domain.SignalCategories()), first.Succeeded())
	for c, signal := range first.Signals {
		assert.Equal(t, signal.Score, second.Signals[c].Score, "category %s must score identically", c)
	}
}

func TestStaticProviderScoreRange(t *testing.T) {
	subjects := []Subject{
		{UserID: "a"},
		{UserID: "b", PhoneNumber: "+111"},
		{UserID: "c", NationalID: "X"},
		{UserID: "d", PhoneNumber: "+222", NationalID: "Y"},
	}
	for _, subject := range subjects {
		for _, p := range StaticProviders() {
			signal, err := p.Fetch(context.Background(), subject)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, signal.Score, 45)
			assert.LessOrEqual(t, signal.Score, 94)
			assert.NotEmpty(t, signal.Insights)
		}
	}
}

func TestStaticProviderHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := StaticProviders()[0]
	_, err := p.Fetch(ctx, Subject{UserID: "user-1"})
	assert.Error(t, err)
}
