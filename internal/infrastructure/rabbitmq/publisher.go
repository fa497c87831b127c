package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ngvyshop/chatorder-api/internal/application/ports"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
)

// Compile-time check that Publisher implements OrderEventPublisher.
var _ ports.OrderEventPublisher = (*Publisher)(nil)

// Publisher emits order lifecycle events to a RabbitMQ topic exchange so
// downstream consumers (dashboard refreshers, notifiers) can react without
// polling.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher connects and declares the topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

type orderCreatedEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"order_id"`
	SenderID     string    `json:"sender_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	ItemName     string    `json:"item_name"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status"`
	OrderGroupID string    `json:"order_group_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ordersMovedEvent struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Count   int    `json:"count"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// OrderCreated publishes one order.created event.
func (p *Publisher) OrderCreated(ctx context.Context, o *entity.Order) error {
	ev := orderCreatedEvent{
		Type:         "order.created",
		OrderID:      o.ID,
		SenderID:     o.SenderID,
		CustomerName: o.CustomerName,
		ItemName:     o.ItemName,
		Quantity:     o.Quantity,
		Status:       string(o.Status),
		OrderGroupID: o.OrderGroupID,
		CreatedAt:    o.CreatedAt,
	}
	return p.publish(ctx, "order.created", ev)
}

// OrdersMoved publishes one order.status_changed event for a transition.
func (p *Publisher) OrdersMoved(ctx context.Context, subject string, count int, from, to domain.Status) error {
	ev := ordersMovedEvent{
		Type:    "order.status_changed",
		Subject: subject,
		Count:   count,
		From:    string(from),
		To:      string(to),
	}
	return p.publish(ctx, "order.status_changed", ev)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, ev any) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}
