package testutil

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"restaurant/internal/audit"
	"restaurant/internal/identity"
	"restaurant/internal/models"
	"restaurant/internal/orderlog"
)

// OrderLogs is an in-memory orderlog.Store. Setting Err makes every call fail.
type OrderLogs struct {
	mu      sync.Mutex
	Entries []models.OrderLogEntry
	Err     error
}

var _ orderlog.Store = (*OrderLogs)(nil)

func (l *OrderLogs) Append(_ context.Context, entry models.OrderLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	l.Entries = append(l.Entries, entry)
	return nil
}

func (l *OrderLogs) ListByOrder(ctx context.Context, orderID uint) ([]bson.M, error) {
	return l.List(ctx, orderlog.Filter{OrderID: orderID})
}

func (l *OrderLogs) List(_ context.Context, filter orderlog.Filter) ([]bson.M, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return nil, l.Err
	}
	docs := []bson.M{}
	for _, e := range l.Entries {
		if filter.OrderID != 0 && e.OrderID != filter.OrderID {
			continue
		}
		docs = append(docs, bson.M{
			"order_id": int64(e.OrderID),
			"user_id":  int64(e.UserID),
			"action":   e.Action,
			"message":  e.Message,
			"status":   e.Status,
			"actor":    e.Actor,
		})
	}
	return docs, nil
}

func (l *OrderLogs) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Entries)
}

// Notifier records audit events. Setting Err makes Notify fail after recording.
type Notifier struct {
	mu     sync.Mutex
	Events []audit.Event
	Err    error
}

func (n *Notifier) Notify(_ context.Context, event audit.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, event)
	return n.Err
}

func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Events)
}

// Verifier maps raw tokens to claims. Unknown tokens fail with
// identity.ErrInvalidToken.
type Verifier map[string]identity.Claims

func (v Verifier) Verify(_ context.Context, token string) (identity.Claims, error) {
	claims, ok := v[token]
	if !ok {
		return identity.Claims{}, identity.ErrInvalidToken
	}
	if claims.Email == "" {
		return identity.Claims{}, identity.ErrMissingEmail
	}
	return claims, nil
}
