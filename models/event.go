package models

import "time"

// Order statuses the notification layer reacts to.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusProcessed = "processed"
	OrderStatusCancelled = "cancelled"
)

// Modification types of an order event.
const (
	ModificationUpdated   = "updated"
	ModificationCancelled = "cancelled"
)

// Event types accepted from the order/menu layer.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderModified      = "order.modified"
	EventOrderCancelled     = "order.cancelled"
	EventOrderStatusChanged = "order.status_changed"
	EventMenuUpdated        = "menu.updated"
)

// OrderRef is what the notification layer needs to know about an order.
type OrderRef struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Status    string    `json:"status"`
	OrderDate time.Time `json:"orderDate"`
	Items     []string  `json:"items"`
}

// DomainEvent is posted by the order/menu layer.
type DomainEvent struct {
	Type     string    `json:"type"`
	Order    *OrderRef `json:"order,omitempty"`
	MenuDate time.Time `json:"menuDate,omitempty"`
	Actor    Caller    `json:"actor"`
}
