// Task Emitter отправляет задачу в durable очередь RabbitMQ и завершается.
//
// Использование:
//
//	task-emitter [flags] [message words...]
//	task-emitter --source csv --csv-file tasks.csv
//
// Без аргументов отправляется "third task.....". Точки в конце сообщения
// делают задачу длиннее для воркера.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/task-emitter/internal/cli"
	"github.com/shaiso/task-emitter/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	out := cli.NewOutput(os.Stdout, os.Stderr)
	cmd := cli.NewRootCmd(version, cli.Deps{
		Stdin:  os.Stdin,
		Output: out,
		Logger: logger,
	})

	code := cli.Execute(ctx, cmd, out)
	cancel()
	os.Exit(code)
}
