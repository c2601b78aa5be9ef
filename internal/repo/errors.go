package repo

import "errors"

// Ошибки журнала.
var (
	// ErrEmptyDSN: журнал включён, но строка подключения пуста.
	ErrEmptyDSN = errors.New("database dsn is empty")

	// ErrAlreadyExists: сообщение с таким ID уже записано.
	ErrAlreadyExists = errors.New("already exists")
)
