package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DeclareQueue объявляет durable очередь.
//
// Повторное объявление существующей очереди с теми же свойствами
// ничего не меняет. Если очередь уже объявлена с другими свойствами,
// брокер закроет канал с PRECONDITION_FAILED.
func (c *Connection) DeclareQueue(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyQueue
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.withChannel(func(ch *amqp.Channel) error {
		_, err := ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", name, err)
		}

		c.logger.Debug("queue declared", "queue", name)
		return nil
	})
}
