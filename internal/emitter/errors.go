package emitter

import "errors"

// Ошибки эмиттера.
var (
	// ErrReadCSV: CSV файл не удалось прочитать или разобрать.
	ErrReadCSV = errors.New("read csv")

	// ErrUnknownSource: неизвестный источник сообщений.
	ErrUnknownSource = errors.New("unknown message source")
)
