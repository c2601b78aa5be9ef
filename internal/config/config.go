package config

import (
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shaiso/task-emitter/internal/domain"
	"github.com/shaiso/task-emitter/internal/mq"
)

// Ошибки конфигурации.
var (
	// ErrEmptyHost: не задан ни host, ни URL брокера.
	ErrEmptyHost = errors.New("rabbitmq host is empty")

	// ErrEmptyQueue: не задано имя очереди.
	ErrEmptyQueue = errors.New("queue name is empty")

	// ErrUnknownSource: неизвестный источник сообщений.
	ErrUnknownSource = errors.New("unknown message source")

	// ErrEmptyCSVFile: выбран источник csv, но файл не указан.
	ErrEmptyCSVFile = errors.New("csv file is empty")
)

// Значения по умолчанию.
const (
	DefaultHost     = "localhost"
	DefaultUser     = "guest"
	DefaultPassword = "guest"
	DefaultVhost    = "/"
	DefaultQueue    = "task_queue2"
	DefaultCSVFile  = "tasks.csv"
	DefaultFileName = "task-emitter"
	EnvPrefix       = "EMITTER"
	adminPort       = 15672
)

// Config описывает всё, что нужно эмиттеру на один запуск.
type Config struct {
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Source   SourceConfig   `mapstructure:"source"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Journal  JournalConfig  `mapstructure:"journal"`
}

// RabbitMQConfig: параметры подключения. URL, если задан, важнее частей.
type RabbitMQConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Vhost    string `mapstructure:"vhost"`
}

type QueueConfig struct {
	Name string `mapstructure:"name"`
}

// SourceConfig выбирает, откуда брать сообщения.
type SourceConfig struct {
	Mode           domain.Source `mapstructure:"mode"`
	CSVFile        string        `mapstructure:"csv_file"`
	DefaultMessage string        `mapstructure:"default_message"`
}

// AdminConfig управляет предложением открыть веб-админку.
type AdminConfig struct {
	Offer bool   `mapstructure:"offer"`
	URL   string `mapstructure:"url"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// JournalConfig: DSN Postgres для журнала отправок. Пустой DSN отключает журнал.
type JournalConfig struct {
	DSN string `mapstructure:"dsn"`
}

// SetDefaults регистрирует значения по умолчанию.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.host", DefaultHost)
	v.SetDefault("rabbitmq.port", mq.DefaultPort)
	v.SetDefault("rabbitmq.user", DefaultUser)
	v.SetDefault("rabbitmq.password", DefaultPassword)
	v.SetDefault("rabbitmq.vhost", DefaultVhost)
	v.SetDefault("queue.name", DefaultQueue)
	v.SetDefault("source.mode", string(domain.SourceArgs))
	v.SetDefault("source.csv_file", DefaultCSVFile)
	v.SetDefault("source.default_message", domain.DefaultMessage)
	v.SetDefault("admin.offer", false)
	v.SetDefault("admin.url", "")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("journal.dsn", "")
}

// flagKeys связывает флаги командной строки с ключами конфигурации.
var flagKeys = map[string]string{
	"url":          "rabbitmq.url",
	"host":         "rabbitmq.host",
	"port":         "rabbitmq.port",
	"queue":        "queue.name",
	"source":       "source.mode",
	"csv-file":     "source.csv_file",
	"offer-admin":  "admin.offer",
	"admin-url":    "admin.url",
	"metrics-file": "metrics.textfile",
	"journal-dsn":  "journal.dsn",
}

// BindFlags привязывает известные флаги к ключам конфигурации.
// Флаги, которых нет в наборе, пропускаются.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// New создаёт viper с умолчаниями и чтением окружения.
//
// Переменные окружения: EMITTER_<SECTION>_<KEY>, например EMITTER_QUEUE_NAME.
// Для совместимости также читаются RABBITMQ_URL и DB_URL.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Ошибка возможна только при пустом ключе.
	_ = v.BindEnv("rabbitmq.url", EnvPrefix+"_RABBITMQ_URL", "RABBITMQ_URL")
	_ = v.BindEnv("journal.dsn", EnvPrefix+"_JOURNAL_DSN", "DB_URL")

	return v
}

// Load читает конфигурацию.
//
// Если configFile пуст, ищется необязательный task-emitter.yaml в текущей
// директории. Явно указанный файл обязан существовать.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Admin.URL == "" {
		cfg.Admin.URL = AdminURL(cfg.BrokerHost())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет обязательные поля.
func (c *Config) Validate() error {
	if c.RabbitMQ.URL == "" && c.RabbitMQ.Host == "" {
		return ErrEmptyHost
	}
	if c.Queue.Name == "" {
		return ErrEmptyQueue
	}
	if !c.Source.Mode.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Source.Mode)
	}
	if c.Source.Mode == domain.SourceCSV && c.Source.CSVFile == "" {
		return ErrEmptyCSVFile
	}
	return nil
}

// BrokerURL возвращает итоговый AMQP URL.
func (c *Config) BrokerURL() string {
	if c.RabbitMQ.URL != "" {
		return c.RabbitMQ.URL
	}
	r := c.RabbitMQ
	return mq.BuildURL(r.Host, r.Port, r.User, r.Password, r.Vhost)
}

// BrokerHost возвращает хост брокера: из URL, если он задан и разбирается,
// иначе из rabbitmq.host.
func (c *Config) BrokerHost() string {
	if c.RabbitMQ.URL != "" {
		if uri, err := amqp.ParseURI(c.RabbitMQ.URL); err == nil && uri.Host != "" {
			return uri.Host
		}
	}
	return c.RabbitMQ.Host
}

// AdminURL возвращает адрес страницы очередей в management UI.
func AdminURL(host string) string {
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("http://%s:%d/#/queues", host, adminPort)
}
