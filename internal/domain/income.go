package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeStability classifies the volatility of the monthly income series.
type IncomeStability string

const (
	IncomeVeryStable IncomeStability = "VERY_STABLE"
	IncomeStable     IncomeStability = "STABLE"
	IncomeVariable   IncomeStability = "VARIABLE"
	IncomeIrregular  IncomeStability = "IRREGULAR"
)

// IncomeTrend classifies the recent direction of the income series.
type IncomeTrend string

const (
	TrendIncreasing IncomeTrend = "INCREASING"
	TrendStable     IncomeTrend = "STABLE"
	TrendDecreasing IncomeTrend = "DECREASING"
)

// IncomeStreamType categorises a detected income source.
type IncomeStreamType string

const (
	StreamEmployment IncomeStreamType = "EMPLOYMENT"
	StreamBusiness   IncomeStreamType = "BUSINESS"
	StreamRental     IncomeStreamType = "RENTAL"
	StreamInvestment IncomeStreamType = "INVESTMENT"
	StreamRemittance IncomeStreamType = "REMITTANCE"
	StreamBenefits   IncomeStreamType = "BENEFITS"
	StreamOther      IncomeStreamType = "OTHER"
)

// IncomeFrequency is the inferred payment cadence of a stream.
type IncomeFrequency string

const (
	FrequencyWeekly    IncomeFrequency = "WEEKLY"
	FrequencyBiweekly  IncomeFrequency = "BIWEEKLY"
	FrequencyMonthly   IncomeFrequency = "MONTHLY"
	FrequencyIrregular IncomeFrequency = "IRREGULAR"
)

// IncomeStream is one detected recurring income source.
type IncomeStream struct {
	StreamType       IncomeStreamType `json:"streamType"`
	MonthlyAmount    decimal.Decimal  `json:"monthlyAmount"`
	Frequency        IncomeFrequency  `json:"frequency"`
	ConsistencyScore int              `json:"consistencyScore"`
	DetectedFrom     string           `json:"detectedFrom"`
	FirstSeen        time.Time        `json:"firstSeen"`
	LastSeen         time.Time        `json:"lastSeen"`
}

// AffordabilityAnalysis derives lending-envelope figures from income versus
// a supplied or assumed expense figure.
type AffordabilityAnalysis struct {
	MonthlyIncome         decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses       decimal.Decimal `json:"monthlyExpenses"`
	ExpenseSource         string          `json:"expenseSource"`
	DisposableIncome      decimal.Decimal `json:"disposableIncome"`
	DebtToIncomeRatio     float64         `json:"debtToIncomeRatio"`
	MaxMonthlyPayment     decimal.Decimal `json:"maxMonthlyPayment"`
	MaxAffordableLoan     decimal.Decimal `json:"maxAffordableLoan"`
	OverLeveraged         bool            `json:"overLeveraged"`
	HighExpenseVolatility bool            `json:"highExpenseVolatility"`
}

// IncomeVerification is the income engine's output record. Its lifecycle is
// independent of CreditScore.
type IncomeVerification struct {
	RequestID              uuid.UUID                            `json:"requestId"`
	UserID                 string                               `json:"userId"`
	EstimatedMonthlyIncome decimal.Decimal                      `json:"estimatedMonthlyIncome"`
	IncomeConfidence       float64                              `json:"incomeConfidence"`
	Stability              IncomeStability                      `json:"incomeStability"`
	Streams                []IncomeStream                       `json:"incomeStreams"`
	Last6MonthsIncome      []decimal.Decimal                    `json:"last6MonthsIncome"`
	Last12MonthsIncome     []decimal.Decimal                    `json:"last12MonthsIncome"`
	Trend                  IncomeTrend                          `json:"incomeTrend"`
	Categories             map[IncomeStreamType]decimal.Decimal `json:"incomeCategories"`
	Affordability          AffordabilityAnalysis                `json:"affordabilityAnalysis"`
	VerifiedAt             time.Time                            `json:"verifiedAt"`
}
