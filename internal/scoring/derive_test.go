package scoring

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/domain"
)

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		score int
		band  domain.ScoreBand
	}{
		{850, domain.BandExcellent},
		{750, domain.BandExcellent},
		{749, domain.BandVeryGood},
		{700, domain.BandVeryGood},
		{699, domain.BandGood},
		{650, domain.BandGood},
		{649, domain.BandFair},
		{600, domain.BandFair},
		{599, domain.BandPoor},
		{300, domain.BandPoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.band, BandForScore(tc.score), "score %d", tc.score)
	}
}

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		score int
		grade domain.RiskGrade
	}{
		{850, domain.GradeA},
		{750, domain.GradeA},
		{749, domain.GradeB},
		{700, domain.GradeB},
		{699, domain.GradeC},
		{650, domain.GradeC},
		{649, domain.GradeD},
		{600, domain.GradeD},
		{599, domain.GradeE},
		{550, domain.GradeE},
		{549, domain.GradeF},
		{300, domain.GradeF},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, GradeForScore(tc.score), "score %d", tc.score)
	}
}

func TestPercentile(t *testing.T) {
	assert.Equal(t, 1, Percentile(300))
	assert.Equal(t, 99, Percentile(850))
	assert.Equal(t, 50, Percentile(575))

	for score := domain.ScoreFloor; score <= domain.ScoreCeiling; score++ {
		expected := int(math.Round(float64(score-300) / 550.0 * 100.0))
		if expected < 1 {
			expected = 1
		}
		if expected > 99 {
			expected = 99
		}
		require.Equal(t, expected, Percentile(score))
	}
}

func TestDefaultProbability(t *testing.T) {
	require.InDelta(t, 0.5, DefaultProbability(650), 1e-9)

	// clamped at both ends of the domain
	assert.GreaterOrEqual(t, DefaultProbability(850), 0.01)
	assert.LessOrEqual(t, DefaultProbability(300), 0.99)

	prev := DefaultProbability(domain.ScoreFloor)
	for score := domain.ScoreFloor + 1; score <= domain.ScoreCeiling; score++ {
		current := DefaultProbability(score)
		require.LessOrEqual(t, current, prev, "default probability must be non-increasing at score %d", score)
		prev = current
	}
}

func TestRecommendationTable(t *testing.T) {
	cases := []struct {
		band  domain.ScoreBand
		limit int64
		rate  float64
		term  int
	}{
		{domain.BandExcellent, 50000, 12, 36},
		{domain.BandVeryGood, 30000, 15, 24},
		{domain.BandGood, 15000, 18, 18},
		{domain.BandFair, 7500, 22, 12},
		{domain.BandPoor, 2500, 28, 6},
	}
	for _, tc := range cases {
		rec := RecommendationForBand(tc.band)
		assert.True(t, rec.CreditLimit.Equal(decimal.NewFromInt(tc.limit)), "band %s limit", tc.band)
		assert.Equal(t, tc.rate, rec.InterestRatePct, "band %s rate", tc.band)
		assert.Equal(t, tc.term, rec.LoanTermMonths, "band %s term", tc.band)
	}
}
