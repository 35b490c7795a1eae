package messaging

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"

	"github.com/intelicop/console/internal/config"
)

// MeetingBindingKey routes every meeting event type into the queue.
const MeetingBindingKey = "meeting.#"

// Channel is the part of *amqp.Channel the broker publishes through.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQBroker publishes meeting events to a topic exchange, keyed by
// event type.
type RabbitMQBroker struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
	cb       *gobreaker.CircuitBreaker
}

// NewRabbitMQBroker dials url and declares the durable topic exchange and
// the queue bound to it. Declarations are idempotent.
func NewRabbitMQBroker(url, exchange, queue string) (*RabbitMQBroker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	if err := declareTopology(ch, exchange, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	b := NewChannelBroker(ch, exchange)
	b.conn = conn
	return b, nil
}

func declareTopology(ch *amqp.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declare exchange %s: %w", exchange, err)
	}
	if queue == "" {
		return nil
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, MeetingBindingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: bind %s to %s: %w", queue, exchange, err)
	}
	return nil
}

// NewChannelBroker publishes through a channel whose exchange is already
// declared.
func NewChannelBroker(ch Channel, exchange string) *RabbitMQBroker {
	return &RabbitMQBroker{
		ch:       ch,
		exchange: exchange,
		cb:       config.NewCircuitBreaker(config.BreakerPublisher),
	}
}

// Close releases the channel, then the connection it was opened on.
func (rmq *RabbitMQBroker) Close() error {
	var chErr error
	if rmq.ch != nil {
		chErr = rmq.ch.Close()
	}
	if rmq.conn != nil {
		if err := rmq.conn.Close(); err != nil {
			return err
		}
	}
	return chErr
}
