package mq

import "errors"

// Ошибки работы с брокером.
var (
	// ErrConnection: брокер недоступен или отклонил соединение.
	ErrConnection = errors.New("connection to RabbitMQ server failed")

	// ErrClosed: операция над уже закрытым соединением.
	ErrClosed = errors.New("connection is closed")

	// ErrEmptyQueue: имя очереди не задано.
	ErrEmptyQueue = errors.New("queue name is empty")
)

// ConnectionError сохраняет причину, по которой соединение не установлено.
// errors.Is(err, ErrConnection) для неё истинно.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return ErrConnection.Error() + ": " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is сопоставляет ошибку с ErrConnection.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}
