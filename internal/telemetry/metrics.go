package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Стадии отправки, по которым считаются ошибки.
const (
	StageConnect = "connect"
	StageDeclare = "declare"
	StagePublish = "publish"
)

// Metrics собирает метрики одного запуска эмиттера.
//
// Все методы допускают nil получателя, чтобы метрики можно было не подключать.
type Metrics struct {
	registry *prometheus.Registry

	published *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  prometheus.Histogram
	lastRun   prometheus.Gauge
}

// NewMetrics создаёт метрики в собственном реестре.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "task_emitter_messages_published_total",
			Help: "Messages published to the broker",
		}, []string{"queue", "source"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "task_emitter_send_failures_total",
			Help: "Failed send attempts by stage",
		}, []string{"stage"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "task_emitter_send_duration_seconds",
			Help:    "Duration of a full connect, declare, publish, close cycle",
			Buckets: prometheus.DefBuckets,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "task_emitter_last_run_timestamp_seconds",
			Help: "Unix time of the last emitter run",
		}),
	}

	m.registry.MustRegister(m.published, m.failures, m.duration, m.lastRun)

	return m
}

// Registry возвращает реестр метрик.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// MessagePublished учитывает успешную публикацию.
func (m *Metrics) MessagePublished(queue, source string) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(queue, source).Inc()
}

// SendFailed учитывает неудачную отправку на стадии stage.
func (m *Metrics) SendFailed(stage string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(stage).Inc()
}

// ObserveSend записывает длительность одной отправки.
func (m *Metrics) ObserveSend(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}

// WriteTextfile записывает метрики в файл в текстовом формате Prometheus.
// Пустой path отключает запись.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}

	m.lastRun.SetToCurrentTime()

	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
