package models

import "time"

const (
	LogActionOrderCreated  = "order_created"
	LogActionStatusUpdated = "status_updated"
	LogActionHidden        = "hidden_from_admin"
)

// OrderLogEntry is an append-only event written to the document log. The
// collection enforces no schema; readers get raw documents back.
type OrderLogEntry struct {
	OrderID   uint               `bson:"order_id" json:"order_id"`
	UserID    uint               `bson:"user_id" json:"user_id"`
	Action    string             `bson:"action" json:"action"`
	Message   string             `bson:"message" json:"message"`
	Items     []OrderLineRequest `bson:"items,omitempty" json:"items,omitempty"`
	Total     string             `bson:"total,omitempty" json:"total,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	Actor     string             `bson:"actor,omitempty" json:"actor,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
