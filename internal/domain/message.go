package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message описывает одно исходящее сообщение.
//
// Message создаётся на каждую отправку:
// - из аргументов командной строки (одно сообщение на запуск)
// - из строки CSV файла (одно сообщение на строку)
//
// Body публикуется в очередь как есть, без схемы.
type Message struct {
	// ID уникален для каждой отправки, уходит в AMQP MessageId.
	ID uuid.UUID `json:"id"`

	// Queue задаёт очередь назначения (она же routing key).
	Queue string `json:"queue"`

	// Body содержит полезную нагрузку.
	Body []byte `json:"body"`

	// Source показывает, откуда взято сообщение.
	Source Source `json:"source"`

	// CreatedAt фиксирует время создания сообщения.
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage создаёт сообщение с новым ID.
func NewMessage(queue string, body []byte, source Source) *Message {
	return &Message{
		ID:        uuid.New(),
		Queue:     queue,
		Body:      body,
		Source:    source,
		CreatedAt: time.Now(),
	}
}

// String возвращает тело сообщения в виде строки.
func (m *Message) String() string {
	return string(m.Body)
}
