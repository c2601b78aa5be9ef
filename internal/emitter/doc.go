// Package emitter отправляет задачи в durable очередь RabbitMQ.
//
// # Обзор
//
// Каждая отправка проходит полный цикл:
//
//	open → declare queue → publish → close
//
// Соединение закрывается всегда, даже если объявление очереди или
// публикация завершились ошибкой. Повторов нет: первая ошибка
// возвращается вызывающему коду.
//
// # Источники
//
//   - SendArgs: аргументы командной строки, склеенные через пробел
//   - SendFromCSV: каждая строка CSV файла, по одной отправке на строку,
//     строго в порядке файла
//
// Broker и Session отделяют эмиттер от AMQP клиента, поэтому в тестах
// брокер подменяется фейком.
package emitter
