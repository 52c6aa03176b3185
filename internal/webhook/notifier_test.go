package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyDeliversEvent(t *testing.T) {
	var gotHeader, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Altscore-Event")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL, time.Second, zerolog.Nop())

	requestID := uuid.New()
	event := Event{
		EventType: EventScoreCompleted,
		RequestID: requestID,
		UserID:    "user-1",
		EmittedAt: time.Date(2026, 3, 25, 12, 0, 0, 0, time.UTC),
		Data:      map[string]any{"creditScore": 684},
	}
	require.NoError(t, notifier.Notify(context.Background(), event))

	assert.Equal(t, EventScoreCompleted, gotHeader)
	assert.Equal(t, "application/json", gotContentType)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, EventScoreCompleted, decoded["eventType"])
	assert.Equal(t, requestID.String(), decoded["requestId"])
	assert.Equal(t, "user-1", decoded["userId"])
}

func TestNotifyNon2xxIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewHTTPNotifier(server.URL, time.Second, zerolog.Nop())
	err := notifier.Notify(context.Background(), Event{EventType: EventIncomeVerified, UserID: "user-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNotifyUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	notifier := NewHTTPNotifier(server.URL, time.Second, zerolog.Nop())
	err := notifier.Notify(context.Background(), Event{EventType: EventScoreCompleted, UserID: "user-1"})
	assert.Error(t, err)
}
