package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"altscore/internal/domain"
)

// ScoreRecord is a persisted credit score. Queryable fields are stored as
// columns; the full record rides along as JSON.
type ScoreRecord struct {
	ID                 int64
	UserID             string
	RequestID          uuid.UUID
	Score              int
	Band               domain.ScoreBand
	RiskGrade          domain.RiskGrade
	Percentile         int
	DefaultProbability float64
	ModelVersion       string
	ModelConfidence    float64
	Payload            json.RawMessage
	ScoredAt           time.Time
	ExpiresAt          time.Time
}

// NewScoreRecord converts an engine output into its persisted form.
func NewScoreRecord(score *domain.CreditScore) (ScoreRecord, error) {
	payload, err := json.Marshal(score)
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("marshal credit score: %w", err)
	}
	return ScoreRecord{
		UserID:             score.UserID,
		RequestID:          score.RequestID,
		Score:              score.Score,
		Band:               score.Band,
		RiskGrade:          score.RiskGrade,
		Percentile:         score.Percentile,
		DefaultProbability: score.DefaultProbability,
		ModelVersion:       score.ModelVersion,
		ModelConfidence:    score.ModelConfidence,
		Payload:            payload,
		ScoredAt:           score.ScoredAt,
		ExpiresAt:          score.ExpiresAt,
	}, nil
}

// VerificationRecord is a persisted income verification.
type VerificationRecord struct {
	ID                     int64
	UserID                 string
	RequestID              uuid.UUID
	EstimatedMonthlyIncome decimal.Decimal
	Stability              domain.IncomeStability
	Trend                  domain.IncomeTrend
	Payload                json.RawMessage
	VerifiedAt             time.Time
}

// NewVerificationRecord converts an engine output into its persisted form.
func NewVerificationRecord(v *domain.IncomeVerification) (VerificationRecord, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return VerificationRecord{}, fmt.Errorf("marshal income verification: %w", err)
	}
	return VerificationRecord{
		UserID:                 v.UserID,
		RequestID:              v.RequestID,
		EstimatedMonthlyIncome: v.EstimatedMonthlyIncome,
		Stability:              v.Stability,
		Trend:                  v.Trend,
		Payload:                payload,
		VerifiedAt:             v.VerifiedAt,
	}, nil
}
