package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corray333/cafe-order/internal/service/models/order"
)

// EventType identifies an order lifecycle event published to the broker.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderCancelled     EventType = "order.cancelled"
)

// OutboxMessage is a broker message staged in the outbox table within the
// same transaction as the order write. A poller worker publishes staged
// messages after commit, so a broker outage never rolls back an order.
type OutboxMessage struct {
	ID           int64
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// OrderEvent is the payload published for order lifecycle events.
type OrderEvent struct {
	EventID     string          `json:"eventId"`
	Type        EventType       `json:"type"`
	OrderID     int64           `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	CustomerID  int64           `json:"customerId"`
	Status      order.Status    `json:"status"`
	Total       decimal.Decimal `json:"total"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

const defaultMaxRetries = 5

// NewOrderMessage stages an order lifecycle event for publication. The
// routing key is the event type; the exchange is chosen by the caller's
// configuration.
func NewOrderMessage(eventType EventType, exchange string, o *order.Order, now time.Time) (OutboxMessage, error) {
	event := OrderEvent{
		EventID:     uuid.NewString(),
		Type:        eventType,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		Status:      o.Status,
		Total:       o.Total,
		OccurredAt:  now,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxMessage{}, fmt.Errorf("failed to marshal order event: %w", err)
	}

	return OutboxMessage{
		ExchangeName: exchange,
		RoutingKey:   string(eventType),
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   defaultMaxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}, nil
}
