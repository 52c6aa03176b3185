package altdata

import (
	"context"
	"hash/fnv"

	"altscore/internal/domain"
)

// StaticProvider derives a deterministic sub-score from the subject's
// identity hints. It stands in for real registry integrations so the
// aggregation path is exercised end to end; the same subject always scores
// identically, which keeps the scoring pipeline idempotent.
type StaticProvider struct {
	category domain.SignalCategory
	insights func(score int) map[string]any
}

// Category implements Provider.
func (p *StaticProvider) Category() domain.SignalCategory {
	return p.category
}

// Fetch implements Provider.
func (p *StaticProvider) Fetch(ctx context.Context, subject Subject) (domain.SignalScore, error) {
	if err := ctx.Err(); err != nil {
		return domain.SignalScore{}, err
	}

	score := deterministicScore(subject, p.category)
	signal := domain.SignalScore{Score: score}
	if p.insights != nil {
		signal.Insights = p.insights(score)
	}
	return signal, nil
}

// deterministicScore hashes the subject identity with the category into
// the 45-94 range.
func deterministicScore(subject Subject, category domain.SignalCategory) int {
	h := fnv.New32a()
	h.Write([]byte(subject.UserID))
	h.Write([]byte(subject.PhoneNumber))
	h.Write([]byte(subject.NationalID))
	h.Write([]byte(category))
	return 45 + int(h.Sum32()%50)
}

// StaticProviders returns one deterministic provider per signal category.
func StaticProviders() []Provider {
	return []Provider{
		&StaticProvider{category: domain.SignalMobileMoney, insights: func(score int) map[string]any {
			return map[string]any{
				"avgMonthlyVolume": score * 40,
				"transactionCount": score * 2,
				"accountAgeMonths": score / 3,
			}
		}},
		&StaticProvider{category: domain.SignalTelecom, insights: func(score int) map[string]any {
			return map[string]any{
				"avgMonthlySpend": score / 2,
				"topUpsPerMonth":  score / 10,
				"tenureMonths":    score,
			}
		}},
		&StaticProvider{category: domain.SignalUtility, insights: func(score int) map[string]any {
			return map[string]any{
				"onTimePaymentRate": float64(score) / 100.0,
				"activeAccounts":    1 + score/40,
			}
		}},
		&StaticProvider{category: domain.SignalEmployment, insights: func(score int) map[string]any {
			return map[string]any{
				"employerVerified": score >= 60,
				"tenureMonths":     score / 2,
			}
		}},
		&StaticProvider{category: domain.SignalEducation, insights: func(score int) map[string]any {
			return map[string]any{
				"highestLevelVerified": score >= 55,
			}
		}},
		&StaticProvider{category: domain.SignalSocial, insights: func(score int) map[string]any {
			return map[string]any{
				"networkSizeBucket": score / 25,
			}
		}},
		&StaticProvider{category: domain.SignalLocation, insights: func(score int) map[string]any {
			return map[string]any{
				"monthsAtAddress": score,
				"movesLast3Years": 2 - score/50,
			}
		}},
		&StaticProvider{category: domain.SignalDigitalFootprint, insights: func(score int) map[string]any {
			return map[string]any{
				"activeProfiles":  1 + score/30,
				"oldestAccountYr": 2015 + score%8,
			}
		}},
	}
}

var _ Provider = (*StaticProvider)(nil)
