// Package cli реализует командную строку task-emitter.
//
// # Обзор
//
// Одна cobra-команда без подкоманд:
//
//	task-emitter [flags] [message words...]
//
// Слова сообщения склеиваются через пробел. Без слов отправляется
// сообщение по умолчанию. С --source csv каждая строка файла
// --csv-file уходит отдельным сообщением.
//
// # Ключевые компоненты
//
//   - NewRootCmd: сборка команды, флаги привязываются к viper (internal/config)
//   - Deps: внешние зависимости (потоки ввода-вывода, брокер, браузер),
//     в тестах подменяются фейками
//   - Output: подтверждения в stdout, ошибки в stderr; ошибка соединения
//     с брокером печатается в stdout, как и подтверждения
//   - Execute: запуск команды и код выхода
package cli
