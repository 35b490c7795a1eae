package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

var _ ports.MeetingEventPublisher = (*RabbitMQBroker)(nil)

// PublishMeetingEvent sends evt with its type as the routing key. A
// refused publish counts against the publisher breaker.
func (rmq *RabbitMQBroker) PublishMeetingEvent(ctx context.Context, evt domain.MeetingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", evt.Type, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    evt.ID,
		Type:         evt.Type,
		Timestamp:    evt.OccurredAt,
		AppId:        "intelicop-console",
		Body:         body,
	}
	if evt.Actor != "" {
		msg.Headers = amqp.Table{"actor": evt.Actor}
	}

	_, err = rmq.cb.Execute(func() (interface{}, error) {
		return nil, rmq.ch.PublishWithContext(ctx, rmq.exchange, evt.Type, false, false, msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s for meeting %d: %w", evt.Type, evt.MeetingID, err)
	}
	return nil
}
