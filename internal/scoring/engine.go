// Package scoring implements the alternative-data credit scoring engine:
// a traditional bank-data score blended with eight alternative-data
// sub-scores into a banded, graded, explainable credit score.
package scoring

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"altscore/internal/altdata"
	"altscore/internal/domain"
)

// ModelVersion identifies the scoring model revision stamped on every
// CreditScore.
const ModelVersion = "1.3.0"

const (
	traditionalBlendWeight = 0.4
	alternativeBlendWeight = 0.6

	// Confidence baselines. Alternative-data confidence scales with the
	// fraction of sub-scorers that answered, weighted by the blend share
	// alternative data carries in the final score.
	confidenceWithHistory    = 0.9
	confidenceWithoutHistory = 0.3
)

// ErrMissingUserID is returned for calls without a user identifier. It is
// the only caller-visible failure: missing data is scored, not rejected.
var ErrMissingUserID = errors.New("scoring: user id is required")

// Request carries one scoring call's inputs. IncludeAlternativeData is the
// consent flag; without it no provider is ever queried.
type Request struct {
	UserID                 string
	Transactions           []domain.EnrichedTransaction
	Hints                  domain.IdentityHints
	IncludeAlternativeData bool
}

// Engine computes credit scores. It is stateless; one instance per process
// is passed to callers explicitly.
type Engine struct {
	collector *altdata.Collector
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEngine constructs a scoring engine. collector may be nil when no
// alternative-data providers are configured.
func NewEngine(collector *altdata.Collector, logger zerolog.Logger) *Engine {
	return &Engine{
		collector: collector,
		logger:    logger.With().Str("component", "scoring_engine").Logger(),
		now:       time.Now,
	}
}

// Score computes the blended credit score for one user. It is a pure
// computation over its inputs aside from the alternative-data provider
// calls, which degrade individually on failure.
func (e *Engine) Score(ctx context.Context, req Request) (*domain.CreditScore, error) {
	if req.UserID == "" {
		return nil, ErrMissingUserID
	}

	traditional, breakdown := traditionalScore(req.Transactions)

	// Malformed rows are excluded from every aggregate, so an all-malformed
	// batch is as thin a file as an empty one.
	usable := wellFormedCount(req.Transactions)

	confidence := confidenceWithHistory
	if usable == 0 {
		confidence = confidenceWithoutHistory
	}

	final := traditional
	var alt *domain.AlternativeDataScore

	if req.IncludeAlternativeData && e.collector != nil && e.collector.Providers() > 0 {
		result := e.collector.Collect(ctx, altdata.Subject{
			UserID:      req.UserID,
			PhoneNumber: req.Hints.PhoneNumber,
			NationalID:  req.Hints.NationalID,
		})

		total := e.collector.Providers()
		succeeded := result.Succeeded()
		successShare := float64(succeeded) / float64(total)
		confidence *= traditionalBlendWeight + alternativeBlendWeight*successShare

		if succeeded > 0 {
			alt = assembleAlternative(result)
			final = blend(traditional, scaleAlternative(result))
		} else {
			e.logger.Warn().Str("user_id", req.UserID).
				Msg("all alternative data providers failed; falling back to traditional score")
		}
	}

	final = clampScore(final)
	band := BandForScore(final)

	now := e.now().UTC()
	score := &domain.CreditScore{
		RequestID:          uuid.New(),
		UserID:             req.UserID,
		Score:              final,
		Band:               band,
		Percentile:         Percentile(final),
		DefaultProbability: DefaultProbability(final),
		RiskGrade:          GradeForScore(final),
		Recommendation:     RecommendationForBand(band),
		Factors:            buildFactors(breakdown, alt, usable),
		AlternativeData:    alt,
		ModelVersion:       ModelVersion,
		ModelConfidence:    round2(confidence),
		ScoredAt:           now,
		ExpiresAt:          now.Add(domain.ScoreValidity),
	}

	e.logger.Info().
		Str("user_id", req.UserID).
		Int("score", score.Score).
		Str("band", string(score.Band)).
		Str("grade", string(score.RiskGrade)).
		Bool("alternative_data", alt != nil).
		Msg("credit score computed")

	return score, nil
}

// blend mixes the traditional and rescaled alternative scores 40/60.
func blend(traditional int, altScaled float64) int {
	return int(math.Round(
		float64(traditional)*traditionalBlendWeight + altScaled*alternativeBlendWeight,
	))
}

// scaleAlternative averages the successful sub-scores and rescales the
// 0-100 average onto the 300-850 score range.
func scaleAlternative(result altdata.Result) float64 {
	var sum int
	for _, signal := range result.Signals {
		sum += signal.Score
	}
	avg := float64(sum) / float64(len(result.Signals))
	return float64(domain.ScoreFloor) + avg/100.0*550.0
}

// assembleAlternative builds the embedded record. Failed categories are
// marked unavailable rather than carrying synthesized zeros into the
// average.
func assembleAlternative(result altdata.Result) *domain.AlternativeDataScore {
	unavailable := domain.SignalScore{Insights: map[string]any{"status": "unavailable"}}

	pick := func(c domain.SignalCategory) domain.SignalScore {
		if signal, ok := result.Signals[c]; ok {
			return signal
		}
		return unavailable
	}

	return &domain.AlternativeDataScore{
		MobileMoney:      pick(domain.SignalMobileMoney),
		Telecom:          pick(domain.SignalTelecom),
		Utility:          pick(domain.SignalUtility),
		Employment:       pick(domain.SignalEmployment),
		Education:        pick(domain.SignalEducation),
		Social:           pick(domain.SignalSocial),
		Location:         pick(domain.SignalLocation),
		DigitalFootprint: pick(domain.SignalDigitalFootprint),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
