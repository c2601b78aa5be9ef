// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go: соединение и канал на одну отправку (Dialer, Connection)
//   - topology.go:   объявление durable очереди
//   - publisher.go:  публикация в default exchange
//   - uri.go:        сборка AMQP URL из частей конфигурации
//
// Переподключения нет: соединение живёт ровно одну отправку и
// закрывается вызывающим кодом через Close.
package mq
