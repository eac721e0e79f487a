package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"restaurant/internal/apperr"
	"restaurant/internal/audit"
	"restaurant/internal/config"
	"restaurant/internal/logging"
	"restaurant/internal/metrics"
	"restaurant/internal/models"
	"restaurant/internal/orderlog"
	"restaurant/internal/store"
)

type OrderStore interface {
	CreateOrder(ctx context.Context, userID uint, lines []models.OrderLineRequest) (store.CreatedOrder, error)
	GetOrder(ctx context.Context, orderID uint) (models.Order, error)
	OrderLines(ctx context.Context, orderID uint) ([]models.OrderLine, error)
	ListOrdersByUser(ctx context.Context, userID uint) ([]models.OrderSummary, error)
}

type OrderService struct {
	store        OrderStore
	logs         orderlog.Store
	notifier     audit.Notifier
	admins       config.EmailSet
	auditTimeout time.Duration
	log          logrus.FieldLogger
}

func NewOrderService(st OrderStore, logs orderlog.Store, notifier audit.Notifier, admins config.EmailSet, auditTimeout time.Duration, log logrus.FieldLogger) *OrderService {
	if auditTimeout <= 0 {
		auditTimeout = 3 * time.Second
	}
	return &OrderService{
		store:        st,
		logs:         logs,
		notifier:     notifier,
		admins:       admins,
		auditTimeout: auditTimeout,
		log:          logging.Component(log, "order"),
	}
}

type CreateOrderResult struct {
	OrderID uint            `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

type OrderDetail struct {
	Order models.Order       `json:"order"`
	Items []models.OrderLine `json:"items"`
	Logs  []bson.M           `json:"logs"`
}

// CreateOrder prices and persists an order. Only the relational write is
// atomic; the log append and audit notification run after commit and their
// failures never reach the caller.
func (s *OrderService) CreateOrder(ctx context.Context, ident models.Identity, items []models.OrderLineRequest) (CreateOrderResult, error) {
	if !ident.Authenticated() {
		return CreateOrderResult{}, apperr.Unauthenticated("Login required")
	}
	if len(items) == 0 {
		return CreateOrderResult{}, apperr.InvalidInput("items must not be empty")
	}

	created, err := s.store.CreateOrder(ctx, ident.UserID, items)
	if err != nil {
		return CreateOrderResult{}, apperr.Internal("could not create order", err)
	}
	metrics.OrdersCreated.Inc()

	order := created.Order
	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.Total.StringFixed(2),
		"lines":    len(created.Accepted),
		"skipped":  len(items) - len(created.Accepted),
	}).Info("order created")

	// post-commit steps must outlive a client that hangs up
	detached := context.WithoutCancel(ctx)

	s.appendLog(detached, models.OrderLogEntry{
		OrderID: order.ID,
		UserID:  order.UserID,
		Action:  models.LogActionOrderCreated,
		Message: fmt.Sprintf("Order #%d placed by user %d, total %s", order.ID, order.UserID, order.Total.StringFixed(2)),
		Items:   created.Accepted,
		Total:   order.Total.StringFixed(2),
		Status:  order.Status,
	})
	s.notifyAudit(detached, audit.NewEvent(audit.EventOrderCreated, order.ID, order.UserID, order.Total.StringFixed(2)))

	return CreateOrderResult{OrderID: order.ID, Total: order.Total}, nil
}

func (s *OrderService) appendLog(ctx context.Context, entry models.OrderLogEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		metrics.OrderLogFailures.Inc()
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_id": entry.OrderID,
			"action":   entry.Action,
		}).Warn("order log append failed")
	}
}

func (s *OrderService) notifyAudit(ctx context.Context, event audit.Event) {
	ctx, cancel := context.WithTimeout(ctx, s.auditTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, event); err != nil {
		metrics.AuditFailures.Inc()
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_id": event.OrderID,
			"event_id": event.ID,
		}).Warn("audit notification failed")
	}
}

// GetOrder returns an order with its priced lines and log entries. Owners and
// admins may read it; anyone else is refused.
func (s *OrderService) GetOrder(ctx context.Context, ident models.Identity, orderID uint) (OrderDetail, error) {
	if !ident.Authenticated() {
		return OrderDetail{}, apperr.Unauthenticated("Login required")
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return OrderDetail{}, apperr.NotFound("Order not found")
	}
	if err != nil {
		return OrderDetail{}, apperr.Internal("could not load order", err)
	}

	if order.UserID != ident.UserID && !IsAdmin(s.admins, ident) {
		return OrderDetail{}, apperr.Forbidden("You do not have access to this order")
	}

	lines, err := s.store.OrderLines(ctx, orderID)
	if err != nil {
		return OrderDetail{}, apperr.Internal("could not load order items", err)
	}

	logs, err := s.logs.ListByOrder(ctx, orderID)
	if err != nil {
		s.log.WithError(err).WithField("order_id", orderID).Warn("order log read failed")
		logs = []bson.M{}
	}

	return OrderDetail{Order: order, Items: lines, Logs: logs}, nil
}

// ListOrders returns the caller's own orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, ident models.Identity) ([]models.OrderSummary, error) {
	if !ident.Authenticated() {
		return nil, apperr.Unauthenticated("Login required")
	}
	orders, err := s.store.ListOrdersByUser(ctx, ident.UserID)
	if err != nil {
		return nil, apperr.Internal("could not load orders", err)
	}
	return orders, nil
}

// ListLogs returns raw log documents, optionally for one order.
func (s *OrderService) ListLogs(ctx context.Context, ident models.Identity, filter orderlog.Filter) ([]bson.M, error) {
	if !ident.Authenticated() {
		return nil, apperr.Unauthenticated("Login required")
	}
	docs, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("could not load logs", err)
	}
	return docs, nil
}
