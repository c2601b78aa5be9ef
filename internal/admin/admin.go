// Package admin предлагает открыть веб-интерфейс RabbitMQ перед отправкой.
package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/browser"
)

// Question задаётся пользователю при включённом предложении.
const Question = "Would you like to monitor RabbitMQ queues? y or n "

// Prompter задаёт вопрос и возвращает ответ пользователя.
// Ожидание ответа прерывается отменой ctx.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Opener открывает URL во внешнем приложении.
type Opener interface {
	Open(url string) error
}

// line: одна прочитанная строка или ошибка чтения.
type line struct {
	text string
	err  error
}

// ConsolePrompter читает ответы построчно из in, вопросы пишет в out.
//
// Чтение идёт в отдельной горутине, которая запускается при первом Ask
// и живёт до конца ввода. Поэтому отмена ctx не теряет строку, которая
// придёт позже: её получит следующий Ask.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer

	once  sync.Once
	lines chan line
}

// NewConsolePrompter создаёт ConsolePrompter.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan line),
	}
}

// readLines читает ввод до конца и закрывает lines.
func (p *ConsolePrompter) readLines() {
	defer close(p.lines)

	for {
		text, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			p.lines <- line{err: fmt.Errorf("read answer: %w", err)}
			return
		}
		if text != "" || err == nil {
			p.lines <- line{text: strings.TrimRight(text, "\r\n")}
		}
		if err != nil {
			return
		}
	}
}

// Ask печатает вопрос без перевода строки и ждёт одну строку ответа.
// Конец ввода без данных возвращает пустой ответ.
func (p *ConsolePrompter) Ask(ctx context.Context, question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	p.once.Do(func() { go p.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", nil
		}
		return l.text, l.err
	}
}

// BrowserOpener открывает URL в браузере по умолчанию.
type BrowserOpener struct{}

// Open реализует Opener.
func (BrowserOpener) Open(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// Offer спрашивает, открыть ли админку, и открывает url при ответе "y".
//
// При enabled=false ничего не делает. Ответ сравнивается без учёта
// регистра и пробелов по краям.
func Offer(ctx context.Context, enabled bool, p Prompter, o Opener, out io.Writer, url string) error {
	if !enabled {
		return nil
	}

	ans, err := p.Ask(ctx, Question)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)

	if !strings.EqualFold(strings.TrimSpace(ans), "y") {
		return nil
	}

	if err := o.Open(url); err != nil {
		return err
	}
	fmt.Fprintln(out)

	return nil
}
