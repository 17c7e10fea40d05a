package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderPlaced   EventType = "order_placed"
	EventStatusChanged EventType = "status_changed"
	EventOrderDeleted  EventType = "order_deleted"
)

// Event is published to Kafka after a successful commit so the audit
// consumer can record what happened.
type Event struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	Status     Status          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}
