package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/task-emitter/internal/admin"
	"github.com/shaiso/task-emitter/internal/config"
	"github.com/shaiso/task-emitter/internal/domain"
	"github.com/shaiso/task-emitter/internal/emitter"
	"github.com/shaiso/task-emitter/internal/mq"
	"github.com/shaiso/task-emitter/internal/repo"
	"github.com/shaiso/task-emitter/internal/telemetry"
)

// Deps: внешние зависимости команды. Пустые поля заполняются реальными.
type Deps struct {
	Stdin  io.Reader
	Output *Output
	Logger *slog.Logger

	// NewBroker создаёт брокер по конфигурации (default: AMQP).
	NewBroker func(cfg *config.Config, logger *slog.Logger) emitter.Broker

	Prompter admin.Prompter
	Opener   admin.Opener
}

func (d *Deps) setDefaults() {
	if d.Stdin == nil {
		d.Stdin = os.Stdin
	}
	if d.Output == nil {
		d.Output = NewOutput(nil, nil)
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.NewBroker == nil {
		// Dialer без логгера берёт его из контекста отправки (с message_id).
		d.NewBroker = func(cfg *config.Config, _ *slog.Logger) emitter.Broker {
			return emitter.NewAMQPBroker(mq.NewDialer(cfg.BrokerURL(), nil))
		}
	}
	if d.Prompter == nil {
		d.Prompter = admin.NewConsolePrompter(d.Stdin, d.Output.Writer())
	}
	if d.Opener == nil {
		d.Opener = admin.BrowserOpener{}
	}
}

// NewRootCmd создаёт команду task-emitter.
func NewRootCmd(version string, deps Deps) *cobra.Command {
	deps.setDefaults()

	var configFile string

	cmd := &cobra.Command{
		Use:   "task-emitter [message words...]",
		Short: "Send a task message to a durable RabbitMQ queue",
		Long: "Sends one message built from the arguments, or one message per row of a CSV file,\n" +
			"to a durable queue through the default exchange.",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}

			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg, args, deps)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "Config file (default ./task-emitter.yaml if present)")
	flags.String("url", "", "AMQP URL, overrides host and port (env RABBITMQ_URL)")
	flags.String("host", config.DefaultHost, "RabbitMQ host")
	flags.Int("port", mq.DefaultPort, "RabbitMQ port")
	flags.String("queue", config.DefaultQueue, "Durable queue name")
	flags.String("source", string(domain.SourceArgs), "Message source: args or csv")
	flags.String("csv-file", config.DefaultCSVFile, "CSV file used with --source csv")
	flags.Bool("offer-admin", false, "Offer to open the RabbitMQ admin site before sending")
	flags.String("admin-url", "", "Admin site URL (default http://<host>:15672/#/queues)")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	flags.String("journal-dsn", "", "Postgres DSN for the sent message journal (env DB_URL)")

	return cmd
}

// run выполняет один запуск эмиттера по готовой конфигурации.
func run(ctx context.Context, cfg *config.Config, args []string, deps Deps) error {
	ctx = telemetry.WithLogger(ctx, deps.Logger)
	logger := telemetry.WithQueue(deps.Logger, cfg.Queue.Name)

	if err := admin.Offer(ctx, cfg.Admin.Offer, deps.Prompter, deps.Opener, deps.Output.Writer(), cfg.Admin.URL); err != nil {
		// Прерывание на вопросе завершает запуск без отправки.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("admin site offer failed", "error", err)
	}

	metrics := telemetry.NewMetrics()
	defer func() {
		if werr := metrics.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			logger.Warn("failed to write metrics", "error", werr)
		}
	}()

	var journal emitter.Journal
	if cfg.Journal.DSN != "" {
		j, closeJournal, err := openJournal(ctx, cfg.Journal.DSN)
		if err != nil {
			return err
		}
		defer closeJournal()
		journal = j
	}

	e := emitter.New(emitter.Config{
		Broker:  deps.NewBroker(cfg, logger),
		Queue:   cfg.Queue.Name,
		Journal: journal,
		Metrics: metrics,
		Out:     deps.Output.Writer(),
	})

	logger.Debug("emitter configured",
		"broker", mq.RedactURL(cfg.BrokerURL()),
		"source", cfg.Source.Mode,
	)

	return e.Run(ctx, emitter.Request{
		Mode:           cfg.Source.Mode,
		Args:           args,
		DefaultMessage: cfg.Source.DefaultMessage,
		CSVFile:        cfg.Source.CSVFile,
	})
}

// openJournal подключается к Postgres и готовит таблицу журнала.
func openJournal(ctx context.Context, dsn string) (*repo.JournalRepo, func(), error) {
	pool, err := repo.NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}

	journal := repo.NewJournalRepo(pool)
	if err := journal.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}

	return journal, pool.Close, nil
}
