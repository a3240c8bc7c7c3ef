package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TopicOrderPlaced    = "order.placed"
	TopicOrderCancelled = "order.cancelled"
	TopicOrderDeleted   = "order.deleted"
	TopicStockLow       = "stock.low"
)

const (
	EventOrderPlaced    = "OrderPlaced"
	EventOrderCancelled = "OrderCancelled"
	EventOrderDeleted   = "OrderDeleted"
	EventStockLow       = "StockLow"
)

// Envelope wraps every published payload.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderLine struct {
	OptionID uint   `json:"option_id"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type OrderPlacedPayload struct {
	OrderID    uint        `json:"order_id"`
	UserID     uint        `json:"user_id"`
	Items      []OrderLine `json:"items"`
	TotalPrice string      `json:"total_price"`
}

type OrderCancelledPayload struct {
	OrderID  uint        `json:"order_id"`
	UserID   uint        `json:"user_id"`
	Restored []OrderLine `json:"restored"`
}

type OrderDeletedPayload struct {
	OrderID uint `json:"order_id"`
	UserID  uint `json:"user_id"`
}

type StockLowPayload struct {
	OptionID      uint   `json:"option_id"`
	ProductID     uint   `json:"product_id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	Threshold     int    `json:"threshold"`
}

// Publisher delivers domain events. Implementations must not block the caller
// on broker round trips for longer than the passed context allows.
type Publisher interface {
	Publish(ctx context.Context, topic, eventType, key string, payload interface{}) error
	Close() error
}

// NewEnvelope builds an envelope with a fresh event id.
func NewEnvelope(producer, eventType, correlationID string, payload interface{}) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal payload: %w", err)
	}

	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       raw,
	}, nil
}

// OrderKey keeps every event of one order on the same partition.
func OrderKey(orderID uint) string {
	return fmt.Sprintf("order-%d", orderID)
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, string, interface{}) error { return nil }
func (NopPublisher) Close() error                                                       { return nil }
