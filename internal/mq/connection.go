package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/task-emitter/internal/telemetry"
)

const (
	defaultHeartbeat = 10 * time.Second
	defaultLocale    = "en_US"

	// connectionName видно в админке RabbitMQ на вкладке Connections.
	connectionName = "task-emitter"
)

// Dialer открывает соединения с RabbitMQ по заданному URL.
type Dialer struct {
	url    string
	logger *slog.Logger
}

// NewDialer создаёт Dialer. При logger == nil логгер берётся из контекста Dial.
func NewDialer(url string, logger *slog.Logger) *Dialer {
	return &Dialer{url: url, logger: logger}
}

// Dial устанавливает соединение и открывает канал.
//
// Ошибки брокера возвращаются как *ConnectionError. Отменённый контекст
// возвращается как есть: это не недоступность брокера.
func (d *Dialer) Dial(ctx context.Context) (*Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := d.logger
	if logger == nil {
		logger = telemetry.FromContext(ctx)
	}

	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(connectionName)

	conn, err := amqp.DialConfig(d.url, amqp.Config{
		Heartbeat:  defaultHeartbeat,
		Locale:     defaultLocale,
		Properties: props,
	})
	if err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("dial amqp: %w", err)}
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, &ConnectionError{Err: fmt.Errorf("open channel: %w", err)}
	}

	logger.Debug("connected to RabbitMQ", "url", RedactURL(d.url))

	return &Connection{
		conn:    conn,
		channel: ch,
		logger:  logger,
	}, nil
}

// Connection объединяет AMQP соединение и его единственный канал.
type Connection struct {
	logger *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

// withChannel выполняет функцию с текущим каналом.
func (c *Connection) withChannel(fn func(ch *amqp.Channel) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.channel == nil {
		return ErrClosed
	}

	return fn(c.channel)
}

// IsClosed проверяет, закрыто ли соединение.
func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed || c.conn == nil || c.conn.IsClosed()
}

// Close закрывает канал, затем соединение. Повторный вызов ничего не делает.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var steps []closeStep
	if c.channel != nil {
		steps = append(steps, closeStep{name: "channel", fn: c.channel.Close})
	}
	if c.conn != nil {
		steps = append(steps, closeStep{name: "connection", fn: c.conn.Close})
	}

	if err := closeAll(steps); err != nil {
		return err
	}

	c.logger.Debug("connection closed")
	return nil
}

// closeStep: один ресурс для закрытия.
type closeStep struct {
	name string
	fn   func() error
}

// closeAll закрывает ресурсы по порядку и возвращает все ошибки сразу.
func closeAll(steps []closeStep) error {
	var errs []error
	for _, step := range steps {
		if err := step.fn(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", step.name, err))
		}
	}
	return errors.Join(errs...)
}
