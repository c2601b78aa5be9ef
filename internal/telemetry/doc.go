// Package telemetry обеспечивает наблюдаемость эмиттера.
//
// Включает:
//   - logging.go: structured logging через slog
//   - metrics.go: Prometheus метрики
//
// Процесс живёт один запуск, поэтому метрики не отдаются по HTTP,
// а записываются в файл для textfile collector node_exporter.
package telemetry
