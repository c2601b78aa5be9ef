package emitter

import (
	"context"
	"fmt"

	"github.com/shaiso/task-emitter/internal/domain"
)

// Request описывает, что отправить за один запуск.
type Request struct {
	// Mode выбирает источник сообщений.
	Mode domain.Source

	// Args: слова сообщения для режима args.
	Args []string

	// DefaultMessage отправляется в режиме args без слов.
	DefaultMessage string

	// CSVFile: файл для режима csv.
	CSVFile string
}

// Run отправляет сообщения из источника, выбранного в req.Mode.
func (e *Emitter) Run(ctx context.Context, req Request) error {
	switch req.Mode {
	case domain.SourceArgs:
		return e.SendArgs(ctx, req.Args, req.DefaultMessage)
	case domain.SourceCSV:
		return e.SendFromCSV(ctx, req.CSVFile)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, req.Mode)
	}
}
