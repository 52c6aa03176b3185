package scoring

import "altscore/internal/domain"

// signalFactorRule emits a factor when a sub-score clears (or falls below)
// fixed thresholds.
type signalFactorRule struct {
	category   domain.SignalCategory
	label      string
	importance float64
	positive   string
	negative   string
}

var signalFactorRules = []signalFactorRule{
	{domain.SignalMobileMoney, "Mobile Money Usage", 25,
		"Strong mobile money activity indicates reliable cash flow",
		"Limited mobile money activity"},
	{domain.SignalEmployment, "Employment Verification", 20,
		"Verified stable employment",
		"Employment could not be verified"},
	{domain.SignalTelecom, "Telecom Payment Behavior", 15,
		"Consistent airtime and data payments",
		"Irregular telecom payment behavior"},
	{domain.SignalUtility, "Utility Payment History", 15,
		"Utility bills paid reliably",
		"Missed or irregular utility payments"},
	{domain.SignalEducation, "Education Background", 10,
		"Verified education credentials",
		"Education background unverified"},
	{domain.SignalSocial, "Social Stability", 5,
		"Stable social network signals",
		"Weak social stability signals"},
	{domain.SignalLocation, "Location Stability", 5,
		"Long residence at current location",
		"Frequent address changes"},
	{domain.SignalDigitalFootprint, "Digital Footprint", 5,
		"Established digital presence",
		"Thin digital footprint"},
}

const (
	signalStrongThreshold = 70
	signalWeakThreshold   = 40
)

// buildFactors assembles the ordered explainability list from the
// traditional breakdown and any alternative sub-scores. The list is
// advisory text only.
func buildFactors(breakdown TraditionalBreakdown, alt *domain.AlternativeDataScore, txCount int) []domain.ScoreFactor {
	factors := make([]domain.ScoreFactor, 0, 8)

	if txCount == 0 {
		factors = append(factors, domain.ScoreFactor{
			Category:    "Credit History",
			Impact:      domain.ImpactNegative,
			Weight:      weightPaymentHistory,
			Description: "Limited transaction history; score reflects the minimum until more data is available",
		})
	} else {
		if breakdown.PaymentHistory >= 25 {
			factors = append(factors, domain.ScoreFactor{
				Category:    "Payment History",
				Impact:      domain.ImpactPositive,
				Weight:      weightPaymentHistory,
				Description: "Loan and utility obligations are paid consistently",
			})
		} else if breakdown.PaymentHistory == 0 {
			factors = append(factors, domain.ScoreFactor{
				Category:    "Payment History",
				Impact:      domain.ImpactNegative,
				Weight:      weightPaymentHistory,
				Description: "No loan or utility payment history found",
			})
		}

		if breakdown.TransactionPattern >= 20 {
			factors = append(factors, domain.ScoreFactor{
				Category:    "Transaction Patterns",
				Impact:      domain.ImpactPositive,
				Weight:      weightTransactionPattern,
				Description: "Active account with a diverse set of merchants",
			})
		}

		if breakdown.BalanceStability >= 15 {
			factors = append(factors, domain.ScoreFactor{
				Category:    "Balance Stability",
				Impact:      domain.ImpactPositive,
				Weight:      weightBalanceStability,
				Description: "Transaction amounts show low volatility",
			})
		} else if breakdown.BalanceStability <= 5 {
			factors = append(factors, domain.ScoreFactor{
				Category:    "Balance Stability",
				Impact:      domain.ImpactNegative,
				Weight:      weightBalanceStability,
				Description: "Transaction amounts are highly volatile",
			})
		}

		if breakdown.IncomeConsistency >= 12 {
			factors = append(factors, domain.ScoreFactor{
				Category:    "Income Consistency",
				Impact:      domain.ImpactPositive,
				Weight:      weightIncomeConsistency,
				Description: "Regular income deposits detected",
			})
		}
	}

	if alt != nil {
		for _, rule := range signalFactorRules {
			sub := alt.ByCategory(rule.category)
			if sub.Insights != nil && sub.Insights["status"] == "unavailable" {
				continue
			}
			switch {
			case sub.Score >= signalStrongThreshold:
				factors = append(factors, domain.ScoreFactor{
					Category:    rule.label,
					Impact:      domain.ImpactPositive,
					Weight:      rule.importance,
					Description: rule.positive,
				})
			case sub.Score < signalWeakThreshold:
				factors = append(factors, domain.ScoreFactor{
					Category:    rule.label,
					Impact:      domain.ImpactNegative,
					Weight:      rule.importance,
					Description: rule.negative,
				})
			}
		}
	}

	return factors
}
