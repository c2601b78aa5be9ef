package emitter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/shaiso/task-emitter/internal/domain"
	"github.com/shaiso/task-emitter/internal/telemetry"
)

// Broker открывает сессию с брокером на одну отправку.
type Broker interface {
	Open(ctx context.Context) (Session, error)
}

// Session: открытое соединение с каналом.
type Session interface {
	DeclareQueue(ctx context.Context, name string) error
	Publish(ctx context.Context, msg *domain.Message) error
	Close() error
}

// Journal сохраняет опубликованные сообщения.
type Journal interface {
	Record(ctx context.Context, msg *domain.Message) error
}

// Emitter отправляет сообщения в одну очередь.
type Emitter struct {
	broker  Broker
	queue   string
	journal Journal
	metrics *telemetry.Metrics
	out     io.Writer
	logger  *slog.Logger
}

// Config: зависимости Emitter.
type Config struct {
	Broker Broker
	Queue  string

	// Journal (опционально): nil отключает журнал.
	Journal Journal

	// Metrics (опционально).
	Metrics *telemetry.Metrics

	// Out получает подтверждения отправки (default: os.Stdout).
	Out io.Writer

	// Logger (опционально): без него логгер берётся из контекста
	// (telemetry.FromContext).
	Logger *slog.Logger
}

// New создаёт Emitter.
func New(cfg Config) *Emitter {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	return &Emitter{
		broker:  cfg.Broker,
		queue:   cfg.Queue,
		journal: cfg.Journal,
		metrics: cfg.Metrics,
		out:     out,
		logger:  cfg.Logger,
	}
}

// loggerFor возвращает логгер эмиттера или логгер из контекста.
func (e *Emitter) loggerFor(ctx context.Context) *slog.Logger {
	logger := e.logger
	if logger == nil {
		logger = telemetry.FromContext(ctx)
	}
	return telemetry.WithQueue(logger, e.queue)
}

// SendArgs отправляет аргументы, склеенные через пробел.
// Если аргументов нет, отправляется fallback.
func (e *Emitter) SendArgs(ctx context.Context, args []string, fallback string) error {
	msg := domain.MessageFromArgs(args, fallback)
	return e.SendMessage(ctx, []byte(msg), domain.SourceArgs)
}

// SendMessage выполняет один цикл open → declare → publish → close.
//
// Close вызывается ровно один раз на каждую открытую сессию, независимо
// от исхода. Если брокер недоступен, публикации не происходит.
func (e *Emitter) SendMessage(ctx context.Context, body []byte, source domain.Source) (err error) {
	msg := domain.NewMessage(e.queue, body, source)
	logger := telemetry.WithMessageID(e.loggerFor(ctx), msg.ID.String())
	ctx = telemetry.WithLogger(ctx, logger)

	start := time.Now()
	defer func() { e.metrics.ObserveSend(time.Since(start)) }()

	session, err := e.broker.Open(ctx)
	if err != nil {
		e.metrics.SendFailed(telemetry.StageConnect)
		return err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			if err == nil {
				err = fmt.Errorf("close connection: %w", closeErr)
				return
			}
			logger.Warn("failed to close connection", "error", closeErr)
		}
	}()

	if err := session.DeclareQueue(ctx, e.queue); err != nil {
		e.metrics.SendFailed(telemetry.StageDeclare)
		return err
	}

	if err := session.Publish(ctx, msg); err != nil {
		e.metrics.SendFailed(telemetry.StagePublish)
		return err
	}

	e.metrics.MessagePublished(e.queue, string(source))
	fmt.Fprintf(e.out, " [x] Sent %s\n", msg.Body)
	logger.Info("message sent", "source", source, "size", len(msg.Body))

	e.record(ctx, logger, msg)

	return nil
}

// record пишет сообщение в журнал. Сообщение уже у брокера,
// поэтому ошибка журнала только логируется.
func (e *Emitter) record(ctx context.Context, logger *slog.Logger, msg *domain.Message) {
	if e.journal == nil {
		return
	}
	if err := e.journal.Record(ctx, msg); err != nil {
		logger.Warn("failed to record message in journal", "error", err)
	}
}
