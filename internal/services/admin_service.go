package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"restaurant/internal/apperr"
	"restaurant/internal/config"
	"restaurant/internal/logging"
	"restaurant/internal/models"
	"restaurant/internal/orderlog"
	"restaurant/internal/store"
)

type AdminStore interface {
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) error
	HideOrder(ctx context.Context, orderID uint) error
	ListAdminOrders(ctx context.Context) ([]models.AdminOrder, error)
}

type AdminService struct {
	store  AdminStore
	logs   orderlog.Store
	admins config.EmailSet
	log    logrus.FieldLogger
}

func NewAdminService(st AdminStore, logs orderlog.Store, admins config.EmailSet, log logrus.FieldLogger) *AdminService {
	return &AdminService{
		store:  st,
		logs:   logs,
		admins: admins,
		log:    logging.Component(log, "admin"),
	}
}

type StatusResult struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

func (s *AdminService) requireAdmin(ident models.Identity) error {
	if !ident.Authenticated() {
		return apperr.Unauthenticated("Login required")
	}
	if !IsAdmin(s.admins, ident) {
		return apperr.Forbidden("Admin only")
	}
	return nil
}

// InvalidStatus rejects a status outside the allowed set. An empty status
// covers bodies that carried no usable status at all.
func InvalidStatus(status string) *apperr.Error {
	if status == "" {
		return apperr.InvalidInput("Invalid status. Allowed: %s", allowedStatuses)
	}
	return apperr.InvalidInput("Invalid status %q. Allowed: %s", status, allowedStatuses)
}

// UpdateOrderStatus moves an order to any of the allowed statuses.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, ident models.Identity, orderID uint, status string) (StatusResult, error) {
	if err := s.requireAdmin(ident); err != nil {
		return StatusResult{}, err
	}
	if !models.ValidOrderStatus(status) {
		return StatusResult{}, InvalidStatus(status)
	}

	err := s.store.UpdateOrderStatus(ctx, orderID, status)
	if errors.Is(err, store.ErrNotFound) {
		return StatusResult{}, apperr.NotFound("Order not found")
	}
	if err != nil {
		return StatusResult{}, apperr.Internal("could not update order status", err)
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "status": status, "actor": ident.Email}).Info("order status updated")
	s.appendLog(context.WithoutCancel(ctx), models.OrderLogEntry{
		OrderID: orderID,
		UserID:  ident.UserID,
		Action:  models.LogActionStatusUpdated,
		Message: fmt.Sprintf("Admin %s set order #%d status to %s", ident.Email, orderID, status),
		Status:  status,
		Actor:   ident.Email,
	})

	return StatusResult{OrderID: orderID, Status: status}, nil
}

// HideOrder removes a completed order from the admin listing.
func (s *AdminService) HideOrder(ctx context.Context, ident models.Identity, orderID uint) error {
	if err := s.requireAdmin(ident); err != nil {
		return err
	}

	err := s.store.HideOrder(ctx, orderID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound("Order not found")
	case errors.Is(err, store.ErrNotCompleted):
		return apperr.InvalidInput("Only completed orders can be hidden")
	case err != nil:
		return apperr.Internal("could not hide order", err)
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "actor": ident.Email}).Info("order hidden from admin")
	s.appendLog(context.WithoutCancel(ctx), models.OrderLogEntry{
		OrderID: orderID,
		UserID:  ident.UserID,
		Action:  models.LogActionHidden,
		Message: fmt.Sprintf("Admin %s hid order #%d from the admin list", ident.Email, orderID),
		Status:  models.StatusCompleted,
		Actor:   ident.Email,
	})
	return nil
}

// ListOrders returns all visible orders with owner emails, newest first.
func (s *AdminService) ListOrders(ctx context.Context, ident models.Identity) ([]models.AdminOrder, error) {
	if err := s.requireAdmin(ident); err != nil {
		return nil, err
	}
	orders, err := s.store.ListAdminOrders(ctx)
	if err != nil {
		return nil, apperr.Internal("could not load orders", err)
	}
	return orders, nil
}

func (s *AdminService) appendLog(ctx context.Context, entry models.OrderLogEntry) {
	if err := s.logs.Append(ctx, entry); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"order_id": entry.OrderID,
			"action":   entry.Action,
		}).Warn("order log append failed")
	}
}
