// Package enrichment provides the client for the upstream
// transaction-enrichment service, the component that owns the
// EnrichedTransaction contract.
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"altscore/internal/domain"
)

const transactionsPathFmt = "/v1/users/%s/transactions"

// ClientOptions parameterise the enrichment API client.
type ClientOptions struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	UserAgent string
}

// Client fetches enriched transactions over HTTP.
type Client struct {
	opts    ClientOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewClient constructs an enrichment API client.
func NewClient(opts ClientOptions, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		opts:    opts,
		logger:  logger.With().Str("component", "enrichment_client").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
}

type wireTransaction struct {
	TransactionID string      `json:"transactionId"`
	AccountID     string      `json:"accountId"`
	Amount        json.Number `json:"amount"`
	Currency      string      `json:"currency"`
	Date          string      `json:"date"`
	Description   string      `json:"description"`
	Category      struct {
		Primary  string `json:"primary"`
		Detailed string `json:"detailed"`
	} `json:"category"`
	Merchant struct {
		Name string `json:"name"`
	} `json:"merchant"`
	Pending bool `json:"pending"`
}

type transactionsResponse struct {
	Transactions []wireTransaction `json:"transactions"`
}

type errorResponse struct {
	ErrorType   string `json:"errorType"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// FetchTransactions retrieves all enriched transactions for a user.
// Individually malformed rows are skipped; they never fail the batch.
func (c *Client) FetchTransactions(ctx context.Context, userID string) ([]domain.EnrichedTransaction, error) {
	if c.baseURL == "" {
		return nil, errors.New("enrichment base url not configured")
	}
	if userID == "" {
		return nil, errors.New("user id required")
	}

	endpoint := c.baseURL + fmt.Sprintf(transactionsPathFmt, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}
	if ua := strings.TrimSpace(c.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(resp.StatusCode, payload)
	}

	var decoded transactionsResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	txs := make([]domain.EnrichedTransaction, 0, len(decoded.Transactions))
	var skipped int
	for _, wire := range decoded.Transactions {
		tx, ok := c.convert(wire)
		if !ok {
			skipped++
			continue
		}
		txs = append(txs, tx)
	}
	if skipped > 0 {
		c.logger.Warn().Int("skipped", skipped).Str("user_id", userID).
			Msg("dropped malformed transactions")
	}

	return txs, nil
}

func (c *Client) convert(wire wireTransaction) (domain.EnrichedTransaction, bool) {
	amount, err := decimal.NewFromString(wire.Amount.String())
	if err != nil {
		return domain.EnrichedTransaction{}, false
	}

	date, err := time.Parse(time.RFC3339, wire.Date)
	if err != nil {
		if date, err = time.Parse("2006-01-02", wire.Date); err != nil {
			return domain.EnrichedTransaction{}, false
		}
	}

	category := domain.TransactionCategory(wire.Category.Primary)
	if !category.Valid() {
		category = domain.CategoryOther
	}

	tx := domain.EnrichedTransaction{
		TransactionID: wire.TransactionID,
		AccountID:     wire.AccountID,
		Amount:        amount,
		Currency:      wire.Currency,
		Date:          date.UTC(),
		Description:   wire.Description,
		Category: domain.CategoryInfo{
			Primary:  category,
			Detailed: wire.Category.Detailed,
		},
		Merchant: domain.Merchant{Name: wire.Merchant.Name},
		Pending:  wire.Pending,
	}
	return tx, tx.WellFormed()
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Description != "" {
			return fmt.Errorf("enrichment api error (%d): %s", status, apiErr.Description)
		}
		if apiErr.Message != "" {
			return fmt.Errorf("enrichment api error (%d): %s", status, apiErr.Message)
		}
		if apiErr.ErrorType != "" {
			return fmt.Errorf("enrichment api error (%d): %s", status, apiErr.ErrorType)
		}
	}
	if len(payload) > 0 {
		return fmt.Errorf("enrichment api error (%d): %s", status, strings.TrimSpace(string(payload)))
	}
	return fmt.Errorf("enrichment api error (%d)", status)
}

var _ TransactionSource = (*Client)(nil)
