package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant/internal/models"
)

// CreatedOrder is the committed order plus the lines that were accepted.
type CreatedOrder struct {
	Order    models.Order
	Accepted []models.OrderLineRequest
}

// CreateOrder inserts an order and its items in one transaction. Lines with a
// non-positive quantity or an unknown or non-positive menu id are skipped. The
// total is summed from the menu prices read inside the transaction.
func (s *Store) CreateOrder(ctx context.Context, userID uint, lines []models.OrderLineRequest) (CreatedOrder, error) {
	var out CreatedOrder

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			UserID: userID,
			Total:  decimal.Zero,
			Status: models.StatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		total := decimal.Zero
		accepted := make([]models.OrderLineRequest, 0, len(lines))

		for _, line := range lines {
			if line.Quantity <= 0 || line.MenuID <= 0 {
				continue
			}

			var menu []models.MenuItem
			res := tx.Where("id = ?", line.MenuID).Limit(1).Find(&menu)
			if res.Error != nil {
				return res.Error
			}
			if len(menu) == 0 {
				continue
			}

			item := models.OrderItem{
				OrderID:  order.ID,
				MenuID:   menu[0].ID,
				Quantity: line.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			total = total.Add(menu[0].Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			accepted = append(accepted, line)
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("total", total).Error; err != nil {
			return err
		}
		order.Total = total

		out = CreatedOrder{Order: order, Accepted: accepted}
		return nil
	})
	if err != nil {
		return CreatedOrder{}, err
	}
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID uint) (models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Where("id = ?", orderID).Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrNotFound
	}
	return order, err
}

// OrderLines joins the order's items with the menu to price each line.
func (s *Store) OrderLines(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	var rows []struct {
		MenuID   uint
		Name     string
		Price    decimal.Decimal
		Quantity int
	}
	err := s.DB.WithContext(ctx).
		Table("order_items").
		Select("order_items.menu_id, menu.name, menu.price, order_items.quantity").
		Joins("JOIN menu ON menu.id = order_items.menu_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]models.OrderLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, models.OrderLine{
			MenuID:    r.MenuID,
			Name:      r.Name,
			Price:     r.Price,
			Quantity:  r.Quantity,
			LineTotal: r.Price.Mul(decimal.NewFromInt(int64(r.Quantity))),
		})
	}
	return lines, nil
}

// ListOrdersByUser returns the user's orders, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID uint) ([]models.OrderSummary, error) {
	out := []models.OrderSummary{}
	err := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("id, total, status, created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Scan(&out).Error
	return out, err
}

// ListAdminOrders returns every order not hidden from admins joined with the
// owner's email, newest first.
func (s *Store) ListAdminOrders(ctx context.Context) ([]models.AdminOrder, error) {
	out := []models.AdminOrder{}
	err := s.DB.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.user_id, users.email, orders.total, orders.status, orders.created_at").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.hidden_from_admin = ?", false).
		Order("orders.created_at DESC, orders.id DESC").
		Scan(&out).Error
	return out, err
}

// UpdateOrderStatus sets the status of an existing order.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	db := s.DB.WithContext(ctx)

	res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL reports zero affected rows when the value is unchanged.
	_, err := s.GetOrder(ctx, orderID)
	return err
}

// HideOrder flags a completed order as hidden from the admin listing. The
// status guard is part of the UPDATE so a concurrent status change cannot slip
// between check and write.
func (s *Store) HideOrder(ctx context.Context, orderID uint) error {
	db := s.DB.WithContext(ctx)

	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.StatusCompleted).
		Update("hidden_from_admin", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != models.StatusCompleted {
		return ErrNotCompleted
	}
	return nil
}
