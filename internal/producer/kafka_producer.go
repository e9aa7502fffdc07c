package producer

import (
	"context"
	"encoding/json"
	"time"

	"foodcart-service/internal/service"

	"github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated            = "order.created"
	EventOrderRestaurantAssigned = "order.restaurant_assigned"
	EventOrderStatusChanged      = "order.status_changed"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventProducer publishes order lifecycle events keyed by order id,
// so every event of one order lands in the same partition.
type OrderEventProducer struct {
	writer messageWriter
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func (p *OrderEventProducer) send(ctx context.Context, key, eventType string, at time.Time, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(Envelope{Type: eventType, OccurredAt: at, Payload: payload})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(eventType)}},
	})
}

func (p *OrderEventProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.send(ctx, e.OrderID.String(), EventOrderCreated, e.RegisteredAt, e)
}

func (p *OrderEventProducer) PublishRestaurantAssigned(ctx context.Context, e service.RestaurantAssignedEvent) error {
	return p.send(ctx, e.OrderID.String(), EventOrderRestaurantAssigned, e.AssignedAt, e)
}

func (p *OrderEventProducer) PublishStatusChanged(ctx context.Context, e service.StatusChangedEvent) error {
	return p.send(ctx, e.OrderID.String(), EventOrderStatusChanged, e.ChangedAt, e)
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

var _ service.EventBus = (*OrderEventProducer)(nil)
