package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// totals and prices are emitted as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
)

// OrderStatuses is the closed set of values an order status may take.
var OrderStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted}

// ValidOrderStatus reports whether status belongs to OrderStatuses.
func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order defines the persisted order row. Total is always computed server-side.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status          string          `gorm:"size:20;not null" json:"status"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	HiddenFromAdmin bool            `gorm:"not null" json:"hidden_from_admin"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a single line of an order. The unit price is not stored; it is
// derived by joining menu.
type OrderItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	OrderID  uint `gorm:"not null;index" json:"order_id"`
	MenuID   uint `gorm:"not null" json:"menu_id"`
	Quantity int  `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderLineRequest is one requested line of a new order. MenuID is signed so a
// negative id decodes and is skipped like any other unknown item.
type OrderLineRequest struct {
	MenuID   int64 `json:"menu_id" bson:"menu_id"`
	Quantity int   `json:"quantity" bson:"quantity"`
}

// OrderLine is an order item joined with its menu row.
type OrderLine struct {
	MenuID    uint            `json:"menu_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderSummary is the row shape returned by the per-user order history.
type OrderSummary struct {
	ID        uint            `json:"id"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// AdminOrder is the row shape returned by the admin order listing.
type AdminOrder struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	Email     string          `json:"email"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
