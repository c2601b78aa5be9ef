package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/task-emitter/internal/domain"
)

const uniqueViolation = "23505"

// Запросы журнала.
const (
	createJournalTable = `
		CREATE TABLE IF NOT EXISTS emitted_messages (
			id           UUID PRIMARY KEY,
			queue        TEXT NOT NULL,
			source       TEXT NOT NULL,
			body         BYTEA NOT NULL,
			published_at TIMESTAMPTZ NOT NULL
		)
	`

	insertJournalEntry = `
		INSERT INTO emitted_messages (id, queue, source, body, published_at)
		VALUES ($1, $2, $3, $4, $5)
	`
)

// JournalRepo записывает опубликованные сообщения в Postgres.
type JournalRepo struct {
	pool *pgxpool.Pool
}

// NewJournalRepo создаёт новый JournalRepo.
func NewJournalRepo(pool *pgxpool.Pool) *JournalRepo {
	return &JournalRepo{pool: pool}
}

// EnsureSchema создаёт таблицу журнала, если её нет.
func (r *JournalRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createJournalTable); err != nil {
		return fmt.Errorf("create emitted_messages: %w", err)
	}
	return nil
}

// Record сохраняет опубликованное сообщение.
func (r *JournalRepo) Record(ctx context.Context, msg *domain.Message) error {
	_, err := r.pool.Exec(ctx, insertJournalEntry,
		msg.ID,
		msg.Queue,
		string(msg.Source),
		msg.Body,
		msg.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: message %s", ErrAlreadyExists, msg.ID)
		}
		return fmt.Errorf("insert emitted message: %w", err)
	}
	return nil
}
