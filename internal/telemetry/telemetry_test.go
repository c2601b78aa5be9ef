package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, "json", slog.LevelInfo).Info("hello", "queue", "q")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %s", buf.String())
	}

	buf.Reset()
	NewLogger(&buf, "text", slog.LevelInfo).Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("expected text output, got %s", buf.String())
	}

	buf.Reset()
	NewLogger(&buf, "text", slog.LevelWarn).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at WARN, got %s", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected default logger for empty context")
	}

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Error("expected logger from context")
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.MessagePublished("task_queue2", "args")
	m.MessagePublished("task_queue2", "args")
	m.SendFailed(StageConnect)
	m.ObserveSend(10 * time.Millisecond)

	if got := testutil.ToFloat64(m.published.WithLabelValues("task_queue2", "args")); got != 2 {
		t.Errorf("expected 2 published, got %v", got)
	}
	if got := testutil.ToFloat64(m.failures.WithLabelValues(StageConnect)); got != 1 {
		t.Errorf("expected 1 connect failure, got %v", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	m.MessagePublished("q", "args")
	m.SendFailed(StagePublish)
	m.ObserveSend(time.Second)
	if err := m.WriteTextfile("ignored.prom"); err != nil {
		t.Errorf("nil metrics should not fail: %v", err)
	}
	if m.Registry() != nil {
		t.Error("nil metrics should have nil registry")
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.MessagePublished("task_queue2", "csv")

	path := filepath.Join(t.TempDir(), "emitter.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `task_emitter_messages_published_total{queue="task_queue2",source="csv"} 1`) {
		t.Errorf("published counter missing in textfile:\n%s", data)
	}
	if !strings.Contains(string(data), "task_emitter_last_run_timestamp_seconds") {
		t.Errorf("last run gauge missing in textfile:\n%s", data)
	}
}
