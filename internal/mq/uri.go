package mq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultPort: стандартный порт AMQP.
const DefaultPort = 5672

// BuildURL собирает AMQP URL из частей.
func BuildURL(host string, port int, user, password, vhost string) string {
	if port <= 0 {
		port = DefaultPort
	}
	if vhost == "" {
		vhost = "/"
	}

	return amqp.URI{
		Scheme:   "amqp",
		Host:     host,
		Port:     port,
		Username: user,
		Password: password,
		Vhost:    vhost,
	}.String()
}

// RedactURL возвращает URL без пароля, пригодный для логов.
func RedactURL(raw string) string {
	uri, err := amqp.ParseURI(raw)
	if err != nil {
		return "<invalid amqp url>"
	}
	vhost := uri.Vhost
	if vhost != "/" {
		vhost = "/" + vhost
	}
	return fmt.Sprintf("%s://%s@%s:%d%s", uri.Scheme, uri.Username, uri.Host, uri.Port, vhost)
}
