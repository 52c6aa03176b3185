package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// ScoreFloor and ScoreCeiling bound every credit score.
	ScoreFloor   = 300
	ScoreCeiling = 850

	// ScoreValidity is how long a CreditScore remains usable before
	// consumers must re-score.
	ScoreValidity = 90 * 24 * time.Hour
)

// ScoreBand is the coarse qualitative bucket derived from the numeric score.
type ScoreBand string

const (
	BandPoor      ScoreBand = "POOR"
	BandFair      ScoreBand = "FAIR"
	BandGood      ScoreBand = "GOOD"
	BandVeryGood  ScoreBand = "VERY_GOOD"
	BandExcellent ScoreBand = "EXCELLENT"
)

// RiskGrade is the letter grade used by underwriting consumers.
type RiskGrade string

const (
	GradeA RiskGrade = "A"
	GradeB RiskGrade = "B"
	GradeC RiskGrade = "C"
	GradeD RiskGrade = "D"
	GradeE RiskGrade = "E"
	GradeF RiskGrade = "F"
)

// FactorImpact marks the direction a score factor pushes the score.
type FactorImpact string

const (
	ImpactPositive FactorImpact = "positive"
	ImpactNegative FactorImpact = "negative"
)

// ScoreFactor is one explainability entry for end users and underwriters.
// Factors are advisory text only; nothing downstream computes on them.
type ScoreFactor struct {
	Category    string       `json:"category"`
	Impact      FactorImpact `json:"impact"`
	Weight      float64      `json:"weight"`
	Description string       `json:"description"`
}

// LendingRecommendation is sized from the score band via a fixed table.
type LendingRecommendation struct {
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	InterestRatePct float64         `json:"interestRatePct"`
	LoanTermMonths  int             `json:"loanTermMonths"`
}

// SignalCategory names one alternative-data signal source.
type SignalCategory string

const (
	SignalMobileMoney      SignalCategory = "MOBILE_MONEY"
	SignalTelecom          SignalCategory = "TELECOM"
	SignalUtility          SignalCategory = "UTILITY"
	SignalEmployment       SignalCategory = "EMPLOYMENT"
	SignalEducation        SignalCategory = "EDUCATION"
	SignalSocial           SignalCategory = "SOCIAL"
	SignalLocation         SignalCategory = "LOCATION"
	SignalDigitalFootprint SignalCategory = "DIGITAL_FOOTPRINT"
)

// SignalCategories lists every alternative-data signal in canonical order.
func SignalCategories() []SignalCategory {
	return []SignalCategory{
		SignalMobileMoney,
		SignalTelecom,
		SignalUtility,
		SignalEmployment,
		SignalEducation,
		SignalSocial,
		SignalLocation,
		SignalDigitalFootprint,
	}
}

// SignalScore is one sub-scorer result: a 0-100 score plus a
// category-specific insights payload.
type SignalScore struct {
	Score    int            `json:"score"`
	Insights map[string]any `json:"insights,omitempty"`
}

// AlternativeDataScore aggregates the eight alternative-data sub-scores.
// It has no lifecycle of its own; it is always embedded in a CreditScore.
type AlternativeDataScore struct {
	MobileMoney      SignalScore `json:"mobileMoney"`
	Telecom          SignalScore `json:"telecom"`
	Utility          SignalScore `json:"utility"`
	Employment       SignalScore `json:"employment"`
	Education        SignalScore `json:"education"`
	Social           SignalScore `json:"social"`
	Location         SignalScore `json:"location"`
	DigitalFootprint SignalScore `json:"digitalFootprint"`
}

// ByCategory returns the sub-score for a signal category.
func (a AlternativeDataScore) ByCategory(c SignalCategory) SignalScore {
	switch c {
	case SignalMobileMoney:
		return a.MobileMoney
	case SignalTelecom:
		return a.Telecom
	case SignalUtility:
		return a.Utility
	case SignalEmployment:
		return a.Employment
	case SignalEducation:
		return a.Education
	case SignalSocial:
		return a.Social
	case SignalLocation:
		return a.Location
	case SignalDigitalFootprint:
		return a.DigitalFootprint
	}
	return SignalScore{}
}

// CreditScore is the scoring engine's output record. It is immutable once
// created and expires ScoreValidity after ScoredAt.
type CreditScore struct {
	RequestID          uuid.UUID             `json:"requestId"`
	UserID             string                `json:"userId"`
	Score              int                   `json:"creditScore"`
	Band               ScoreBand             `json:"scoreBand"`
	Percentile         int                   `json:"percentile"`
	DefaultProbability float64               `json:"defaultProbability"`
	RiskGrade          RiskGrade             `json:"riskGrade"`
	Recommendation     LendingRecommendation `json:"recommendation"`
	Factors            []ScoreFactor         `json:"scoreFactors"`
	AlternativeData    *AlternativeDataScore `json:"alternativeDataScore,omitempty"`
	ModelVersion       string                `json:"modelVersion"`
	ModelConfidence    float64               `json:"modelConfidence"`
	ScoredAt           time.Time             `json:"scoredAt"`
	ExpiresAt          time.Time             `json:"expiresAt"`
}

// Expired reports whether the score is past its validity window.
func (s CreditScore) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
