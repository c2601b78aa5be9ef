package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shaiso/task-emitter/internal/mq"
)

const connectionFailed = "Connection to RabbitMQ server failed"

// Output управляет выводом CLI.
type Output struct {
	w    io.Writer // stdout для подтверждений
	errW io.Writer // stderr для ошибок
}

// NewOutput создаёт Output. nil writer заменяется на os.Stdout/os.Stderr.
func NewOutput(w, errW io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	if errW == nil {
		errW = os.Stderr
	}
	return &Output{w: w, errW: errW}
}

// Writer возвращает writer для данных.
func (o *Output) Writer() io.Writer {
	return o.w
}

// Failure печатает ошибку.
//
// Недоступность брокера печатается в stdout в виде
// "Error: Connection to RabbitMQ server failed: <причина>" без префиксов,
// добавленных по пути (например, номера строки CSV). Остальные ошибки
// идут в stderr.
func (o *Output) Failure(err error) {
	var connErr *mq.ConnectionError
	switch {
	case errors.As(err, &connErr):
		fmt.Fprintf(o.w, "Error: %s: %v\n", connectionFailed, connErr.Err)
	case errors.Is(err, mq.ErrConnection):
		fmt.Fprintf(o.w, "Error: %s: %v\n", connectionFailed, err)
	default:
		fmt.Fprintln(o.errW, "Error: "+err.Error())
	}
}
