// Package webhook delivers scoring lifecycle events to a consumer-owned
// endpoint. Delivery is best effort; a failed webhook never fails the
// scoring request that produced it.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event types emitted by the service.
const (
	EventScoreCompleted = "credit_score.completed"
	EventIncomeVerified = "income.verified"
)

// Event is the notification envelope posted to the consumer.
type Event struct {
	EventType string    `json:"eventType"`
	RequestID uuid.UUID `json:"requestId"`
	UserID    string    `json:"userId"`
	EmittedAt time.Time `json:"emittedAt"`
	Data      any       `json:"data"`
}

// Notifier delivers events.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// HTTPNotifier posts events as JSON to a configured URL.
type HTTPNotifier struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPNotifier constructs a webhook notifier.
func NewHTTPNotifier(url string, timeout time.Duration, logger zerolog.Logger) *HTTPNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPNotifier{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "webhook_notifier").Logger(),
	}
}

// Notify posts the event. Non-2xx responses are errors so the caller can
// log them; retries belong to the consumer's delivery expectations, not
// the engine.
func (n *HTTPNotifier) Notify(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal webhook event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Altscore-Event", event.EventType)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}

	n.logger.Info().
		Str("event_type", event.EventType).
		Str("user_id", event.UserID).
		Msg("webhook delivered")
	return nil
}

var _ Notifier = (*HTTPNotifier)(nil)
