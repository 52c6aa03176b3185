package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCategory is the primary category assigned by the upstream
// enrichment service. The taxonomy is closed; unknown values map to
// CategoryOther at the ingestion boundary.
type TransactionCategory string

const (
	CategoryIncome             TransactionCategory = "INCOME"
	CategoryLoanPayments       TransactionCategory = "LOAN_PAYMENTS"
	CategoryRentAndUtilities   TransactionCategory = "RENT_AND_UTILITIES"
	CategoryTransfer           TransactionCategory = "TRANSFER"
	CategoryFoodAndDrink       TransactionCategory = "FOOD_AND_DRINK"
	CategoryGeneralMerchandise TransactionCategory = "GENERAL_MERCHANDISE"
	CategoryTransportation     TransactionCategory = "TRANSPORTATION"
	CategoryEntertainment      TransactionCategory = "ENTERTAINMENT"
	CategoryGeneralServices    TransactionCategory = "GENERAL_SERVICES"
	CategoryOther              TransactionCategory = "OTHER"
)

// Valid reports whether c belongs to the closed taxonomy.
func (c TransactionCategory) Valid() bool {
	switch c {
	case CategoryIncome, CategoryLoanPayments, CategoryRentAndUtilities,
		CategoryTransfer, CategoryFoodAndDrink, CategoryGeneralMerchandise,
		CategoryTransportation, CategoryEntertainment, CategoryGeneralServices,
		CategoryOther:
		return true
	}
	return false
}

// CategoryInfo carries the enrichment service's categorisation.
type CategoryInfo struct {
	Primary  TransactionCategory `json:"primary"`
	Detailed string              `json:"detailed,omitempty"`
}

// Merchant identifies the counterparty resolved by merchant matching.
type Merchant struct {
	Name string `json:"name,omitempty"`
}

// EnrichedTransaction is the read-only input contract owned by the upstream
// transaction-enrichment service. Positive amounts are inflows.
type EnrichedTransaction struct {
	TransactionID string          `json:"transactionId"`
	AccountID     string          `json:"accountId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description,omitempty"`
	Category      CategoryInfo    `json:"category"`
	Merchant      Merchant        `json:"merchant"`
	Pending       bool            `json:"pending,omitempty"`
}

// Inflow reports whether the transaction credits the account.
func (t EnrichedTransaction) Inflow() bool {
	return t.Amount.Sign() > 0
}

// WellFormed reports whether the transaction can participate in statistical
// aggregates. Malformed rows are excluded individually, never failing a batch.
func (t EnrichedTransaction) WellFormed() bool {
	return !t.Date.IsZero()
}

// IdentityHints route alternative-data lookups. The engine never validates
// or stores them.
type IdentityHints struct {
	PhoneNumber string `json:"phoneNumber,omitempty"`
	NationalID  string `json:"nationalId,omitempty"`
}
