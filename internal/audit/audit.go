// Package audit sends best-effort order notifications to an external webhook.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const EventOrderCreated = "order.created"

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	UserID     uint      `json:"user_id"`
	Total      string    `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType string, orderID, userID uint, total string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrderID:    orderID,
		UserID:     userID,
		Total:      total,
		OccurredAt: time.Now().UTC(),
	}
}

// Notifier delivers audit events. Callers treat every error as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Noop is used when no webhook URL is configured.
type Noop struct{}

func (Noop) Notify(context.Context, Event) error { return nil }

type WebhookNotifier struct {
	url    string
	client *http.Client
}

// New returns a webhook notifier, or Noop when url is empty.
func New(url string, timeout time.Duration) Notifier {
	if url == "" {
		return Noop{}
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build audit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-ID", event.ID)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("audit request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("audit webhook returned status %d", resp.StatusCode)
	}
	return nil
}
