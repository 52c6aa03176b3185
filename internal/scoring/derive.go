package scoring

import (
	"math"

	"github.com/shopspring/decimal"

	"altscore/internal/domain"
)

// The mappings below are contractual: band, grade, percentile, default
// probability, and the recommendation table are consumed by underwriting
// systems and must not drift.

// BandForScore maps a credit score to its qualitative band.
func BandForScore(score int) domain.ScoreBand {
	switch {
	case score >= 750:
		return domain.BandExcellent
	case score >= 700:
		return domain.BandVeryGood
	case score >= 650:
		return domain.BandGood
	case score >= 600:
		return domain.BandFair
	default:
		return domain.BandPoor
	}
}

// GradeForScore maps a credit score to its underwriting risk grade.
func GradeForScore(score int) domain.RiskGrade {
	switch {
	case score >= 750:
		return domain.GradeA
	case score >= 700:
		return domain.GradeB
	case score >= 650:
		return domain.GradeC
	case score >= 600:
		return domain.GradeD
	case score >= 550:
		return domain.GradeE
	default:
		return domain.GradeF
	}
}

// Percentile places a score within the population on a 1-99 scale.
func Percentile(score int) int {
	p := int(math.Round(float64(score-domain.ScoreFloor) / 550.0 * 100.0))
	if p < 1 {
		return 1
	}
	if p > 99 {
		return 99
	}
	return p
}

// DefaultProbability estimates the likelihood of default via a logistic
// mapping with its crossover at score 650, clamped to [0.01, 0.99]. The
// 650 midpoint is preserved from the production model as-is.
func DefaultProbability(score int) float64 {
	p := 1.0 / (1.0 + math.Exp(float64(score-650)/100.0))
	if p < 0.01 {
		return 0.01
	}
	if p > 0.99 {
		return 0.99
	}
	return p
}

// RecommendationForBand sizes the lending offer from the score band. The
// FAIR-band interest rate of 22% is inferred from table symmetry; the
// upstream model left that bracket unset.
func RecommendationForBand(band domain.ScoreBand) domain.LendingRecommendation {
	switch band {
	case domain.BandExcellent:
		return recommendation(50000, 12, 36)
	case domain.BandVeryGood:
		return recommendation(30000, 15, 24)
	case domain.BandGood:
		return recommendation(15000, 18, 18)
	case domain.BandFair:
		return recommendation(7500, 22, 12)
	default:
		return recommendation(2500, 28, 6)
	}
}

func recommendation(limit int64, ratePct float64, termMonths int) domain.LendingRecommendation {
	return domain.LendingRecommendation{
		CreditLimit:     decimal.NewFromInt(limit),
		InterestRatePct: ratePct,
		LoanTermMonths:  termMonths,
	}
}
