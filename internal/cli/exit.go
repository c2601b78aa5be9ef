package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Коды выхода.
const (
	ExitOK = 0

	// ExitFailure: любая ошибка, включая недоступность брокера.
	ExitFailure = 1
)

// ExitCode возвращает код выхода для ошибки команды.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return ExitFailure
}

// Execute запускает команду, печатает ошибку и возвращает код выхода.
func Execute(ctx context.Context, cmd *cobra.Command, out *Output) int {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		out.Failure(err)
	}
	return ExitCode(err)
}
