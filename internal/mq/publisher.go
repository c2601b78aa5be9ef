package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/task-emitter/internal/domain"
)

// DefaultExchange маршрутизирует сообщение напрямую в очередь с именем routing key.
const DefaultExchange = ""

// Publish публикует сообщение в default exchange, routing key равен имени очереди.
func (c *Connection) Publish(ctx context.Context, msg *domain.Message) error {
	if msg.Queue == "" {
		return ErrEmptyQueue
	}

	return c.withChannel(func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			DefaultExchange, // exchange
			msg.Queue,       // routing key
			false,           // mandatory
			false,           // immediate
			amqp.Publishing{
				ContentType: "text/plain",
				MessageId:   msg.ID.String(),
				Timestamp:   msg.CreatedAt,
				Body:        msg.Body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s: %w", msg.Queue, err)
		}

		c.logger.Debug("published message",
			"routing_key", msg.Queue,
			"message_id", msg.ID,
			"source", msg.Source,
		)

		return nil
	})
}
