package emitter

import (
	"context"

	"github.com/shaiso/task-emitter/internal/mq"
)

// AMQPBroker открывает сессии через mq.Dialer.
type AMQPBroker struct {
	dialer *mq.Dialer
}

// NewAMQPBroker создаёт Broker поверх AMQP.
func NewAMQPBroker(dialer *mq.Dialer) *AMQPBroker {
	return &AMQPBroker{dialer: dialer}
}

// Open реализует Broker.
func (b *AMQPBroker) Open(ctx context.Context) (Session, error) {
	conn, err := b.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
