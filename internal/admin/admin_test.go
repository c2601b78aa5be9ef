package admin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

type stubPrompter struct {
	answer string
	err    error
	asked  []string
}

func (p *stubPrompter) Ask(_ context.Context, question string) (string, error) {
	p.asked = append(p.asked, question)
	return p.answer, p.err
}

type stubOpener struct {
	opened []string
	err    error
}

func (o *stubOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

const testURL = "http://localhost:15672/#/queues"

func TestOffer(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		answer   string
		wantAsk  bool
		wantOpen bool
	}{
		{name: "disabled", enabled: false, answer: "y", wantAsk: false, wantOpen: false},
		{name: "yes lower", enabled: true, answer: "y", wantAsk: true, wantOpen: true},
		{name: "yes upper", enabled: true, answer: "Y", wantAsk: true, wantOpen: true},
		{name: "yes with spaces", enabled: true, answer: " y ", wantAsk: true, wantOpen: true},
		{name: "no", enabled: true, answer: "n", wantAsk: true, wantOpen: false},
		{name: "yes word", enabled: true, answer: "yes", wantAsk: true, wantOpen: false},
		{name: "empty", enabled: true, answer: "", wantAsk: true, wantOpen: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPrompter{answer: tt.answer}
			o := &stubOpener{}
			var out bytes.Buffer

			if err := Offer(context.Background(), tt.enabled, p, o, &out, testURL); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if asked := len(p.asked) > 0; asked != tt.wantAsk {
				t.Errorf("expected asked=%v, got %v", tt.wantAsk, asked)
			}
			if tt.wantAsk && p.asked[0] != Question {
				t.Errorf("unexpected question %q", p.asked[0])
			}
			if opened := len(o.opened) > 0; opened != tt.wantOpen {
				t.Errorf("expected opened=%v, got %v", tt.wantOpen, opened)
			}
			if tt.wantOpen && o.opened[0] != testURL {
				t.Errorf("expected %s, got %s", testURL, o.opened[0])
			}
		})
	}
}

func TestOffer_Errors(t *testing.T) {
	askErr := errors.New("stdin closed")
	err := Offer(context.Background(), true, &stubPrompter{err: askErr}, &stubOpener{}, &bytes.Buffer{}, testURL)
	if !errors.Is(err, askErr) {
		t.Errorf("expected prompt error, got %v", err)
	}

	openErr := errors.New("no browser")
	err = Offer(context.Background(), true, &stubPrompter{answer: "y"}, &stubOpener{err: openErr}, &bytes.Buffer{}, testURL)
	if !errors.Is(err, openErr) {
		t.Errorf("expected open error, got %v", err)
	}
}

func TestConsolePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("Y\r\nrest\n"), &out)

	ans, err := p.Ask(context.Background(), "question? ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans != "Y" {
		t.Errorf("expected Y, got %q", ans)
	}
	if out.String() != "question? " {
		t.Errorf("prompt should be printed as is, got %q", out.String())
	}

	ans, err = p.Ask(context.Background(), "again? ")
	if err != nil || ans != "rest" {
		t.Errorf("expected second line, got %q, %v", ans, err)
	}
}

func TestConsolePrompter_EOF(t *testing.T) {
	p := NewConsolePrompter(strings.NewReader(""), &bytes.Buffer{})

	ans, err := p.Ask(context.Background(), "q ")
	if err != nil {
		t.Fatalf("EOF should not be an error: %v", err)
	}
	if ans != "" {
		t.Errorf("expected empty answer, got %q", ans)
	}
}

func TestConsolePrompter_Cancelled(t *testing.T) {
	// Pipe без записи: ввод не придёт никогда.
	r, w := io.Pipe()
	defer w.Close()

	p := NewConsolePrompter(r, &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := p.Ask(ctx, Question)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Ask did not return after cancel")
	}
}

func TestConsolePrompter_LineAfterCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	p := NewConsolePrompter(r, &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Ask(ctx, "q "); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// Строка, пришедшая после отмены, достаётся следующему вопросу.
	go w.Write([]byte("y\n"))

	ans, err := p.Ask(context.Background(), "again ")
	if err != nil || ans != "y" {
		t.Errorf("expected y, got %q, %v", ans, err)
	}
}

func TestOffer_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := &stubOpener{}
	err := Offer(ctx, true, NewConsolePrompter(r, &bytes.Buffer{}), o, &bytes.Buffer{}, testURL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(o.opened) != 0 {
		t.Error("browser must not open after cancel")
	}
}
