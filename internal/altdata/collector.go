package altdata

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"altscore/internal/domain"
)

const defaultFetchTimeout = 5 * time.Second

// Result is the fan-in of one collection round. Failed lists the
// categories whose provider errored or timed out; their sub-scores are
// excluded from averaging rather than synthesized.
type Result struct {
	Signals map[domain.SignalCategory]domain.SignalScore
	Failed  []domain.SignalCategory
}

// Succeeded returns how many providers returned a usable sub-score.
func (r Result) Succeeded() int {
	return len(r.Signals)
}

// Collector fans a subject out to every provider and joins the results.
type Collector struct {
	providers []Provider
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewCollector builds a collector over the given providers. timeout bounds
// each individual provider call.
func NewCollector(providers []Provider, timeout time.Duration, logger zerolog.Logger) *Collector {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Collector{
		providers: providers,
		timeout:   timeout,
		logger:    logger.With().Str("component", "altdata_collector").Logger(),
	}
}

// Providers returns how many providers the collector queries.
func (c *Collector) Providers() int {
	return len(c.providers)
}

// Collect runs all providers concurrently and joins their results. A
// provider failure degrades that category; it never fails the round.
func (c *Collector) Collect(ctx context.Context, subject Subject) Result {
	type outcome struct {
		category domain.SignalCategory
		signal   domain.SignalScore
		err      error
	}

	results := make(chan outcome, len(c.providers))

	var wg sync.WaitGroup
	for _, p := range c.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			signal, err := p.Fetch(fetchCtx, subject)
			results <- outcome{category: p.Category(), signal: signal, err: err}
		}(p)
	}
	wg.Wait()
	close(results)

	collected := Result{Signals: make(map[domain.SignalCategory]domain.SignalScore, len(c.providers))}
	for out := range results {
		if out.err != nil {
			c.logger.Warn().Err(out.err).
				Str("category", string(out.category)).
				Msg("alternative data provider failed; degrading sub-score")
			collected.Failed = append(collected.Failed, out.category)
			continue
		}
		collected.Signals[out.category] = clampSignal(out.signal)
	}

	return collected
}

func clampSignal(s domain.SignalScore) domain.SignalScore {
	if s.Score < 0 {
		s.Score = 0
	}
	if s.Score > 100 {
		s.Score = 100
	}
	return s
}
