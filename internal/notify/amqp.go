package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// EventsExchange is the topic exchange change events are published to.
	EventsExchange = "inventory.events"

	publishTimeout = 5 * time.Second
)

// AMQPListener forwards change events to a RabbitMQ topic exchange so
// external consumers can subscribe without holding the engine hostage.
type AMQPListener struct {
	ch *amqp.Channel
}

// amqpEvent is the wire form of a change event.
type amqpEvent struct {
	Event      string    `json:"event"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewAMQPListener opens a channel on the connection and declares the events
// exchange. The caller owns the connection lifecycle.
func NewAMQPListener(conn *amqp.Connection) (*AMQPListener, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}
	return &AMQPListener{ch: ch}, nil
}

// Notify implements Listener. The event name doubles as the routing key.
func (l *AMQPListener) Notify(event Event) error {
	body, err := json.Marshal(amqpEvent{
		Event:      event.EventName(),
		Message:    event.Message(),
		OccurredAt: event.OccurredAt(),
	})
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return l.ch.PublishWithContext(ctx, EventsExchange, event.EventName(), false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   event.OccurredAt(),
		Body:        body,
	})
}

// Close releases the underlying channel.
func (l *AMQPListener) Close() error {
	return l.ch.Close()
}

var _ Listener = (*AMQPListener)(nil)
