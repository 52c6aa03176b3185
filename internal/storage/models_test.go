package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"altscore/internal/domain"
)

func TestNewScoreRecord(t *testing.T) {
	scoredAt := time.Date(2026, 3, 25, 12, 0, 0, 0, time.UTC)
	score := &domain.CreditScore{
		RequestID:          uuid.New(),
		UserID:             "user-1",
		Score:              684,
		Band:               domain.BandGood,
		Percentile:         70,
		DefaultProbability: 0.41,
		RiskGrade:          domain.GradeC,
		ModelVersion:       "1.3.0",
		ModelConfidence:    0.9,
		ScoredAt:           scoredAt,
		ExpiresAt:          scoredAt.Add(domain.ScoreValidity),
	}

	record, err := NewScoreRecord(score)
	require.NoError(t, err)

	assert.Equal(t, score.UserID, record.UserID)
	assert.Equal(t, score.RequestID, record.RequestID)
	assert.Equal(t, 684, record.Score)
	assert.Equal(t, domain.BandGood, record.Band)
	assert.Equal(t, domain.GradeC, record.RiskGrade)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(record.Payload, &decoded))
	assert.Equal(t, float64(684), decoded["creditScore"])
	assert.Equal(t, "GOOD", decoded["scoreBand"])
	assert.Equal(t, "user-1", decoded["userId"])
}

func TestNewVerificationRecord(t *testing.T) {
	v := &domain.IncomeVerification{
		RequestID:              uuid.New(),
		UserID:                 "user-1",
		EstimatedMonthlyIncome: decimal.NewFromInt(3200),
		Stability:              domain.IncomeStable,
		Trend:                  domain.TrendIncreasing,
		VerifiedAt:             time.Date(2026, 3, 25, 12, 0, 0, 0, time.UTC),
	}

	record, err := NewVerificationRecord(v)
	require.NoError(t, err)

	assert.Equal(t, v.RequestID, record.RequestID)
	assert.True(t, record.EstimatedMonthlyIncome.Equal(decimal.NewFromInt(3200)))
	assert.Equal(t, domain.IncomeStable, record.Stability)
	assert.Equal(t, domain.TrendIncreasing, record.Trend)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(record.Payload, &decoded))
	assert.Equal(t, "user-1", decoded["userId"])
	assert.Equal(t, "INCREASING", decoded["incomeTrend"])
}
