// Package queue publishes purchase lifecycle events to RabbitMQ for
// downstream consumers (notifications, analytics) without touching the
// primary request path.
package queue

import "time"

const (
	QueuePurchaseCreated   = "purchase.created"
	QueuePurchaseCancelled = "purchase.cancelled"
	QueuePurchaseExpired   = "purchase.expired"
)

// PurchaseEvent carries enough information for consumers to act without
// querying the primary database.
type PurchaseEvent struct {
	PurchaseID    string    `json:"purchase_id"`
	ShowtimeID    int64     `json:"showtime_id"`
	NumberTickets int       `json:"number_tickets"`
	ChosenSeats   []string  `json:"seats,omitempty"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
