package emitter

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shaiso/task-emitter/internal/domain"
)

// SendFromCSV отправляет каждую строку файла отдельным сообщением.
//
// Строки обрабатываются по порядку, каждая со своим соединением.
// Первая ошибка прерывает обработку оставшихся строк.
func (e *Emitter) SendFromCSV(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return e.SendFromReader(ctx, f)
}

// SendFromReader разбирает CSV из r и отправляет строки по одной.
//
// Пустая строка файла тоже сообщение: она уходит как "[]".
// Возвращает ошибку с номером записи (с 1), на которой остановился.
func (e *Emitter) SendFromReader(ctx context.Context, r io.Reader) error {
	lc := &lineCounter{r: r}
	reader := csv.NewReader(lc)
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	row := 0
	send := func(record []string) error {
		row++
		body, err := domain.RenderRow(record)
		if err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrReadCSV, row, err)
		}
		if err := e.SendMessage(ctx, []byte(body), domain.SourceCSV); err != nil {
			return fmt.Errorf("send row %d: %w", row, err)
		}
		return nil
	}
	sendBlanks := func(n int) error {
		for ; n > 0; n-- {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := send(nil); err != nil {
				return err
			}
		}
		return nil
	}

	// lastLine: номер последней строки файла, занятой уже прочитанными записями.
	lastLine := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			// csv.Reader пропускает пустые строки, в том числе в конце файла.
			return sendBlanks(lc.lines() - lastLine)
		}
		if err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrReadCSV, row+1, err)
		}

		startLine, _ := reader.FieldPos(0)
		if err := sendBlanks(startLine - lastLine - 1); err != nil {
			return err
		}

		last := len(record) - 1
		endLine, _ := reader.FieldPos(last)
		lastLine = endLine + strings.Count(record[last], "\n")

		if err := send(record); err != nil {
			return err
		}
	}
}

// lineCounter считает строки во всём прочитанном вводе.
type lineCounter struct {
	r        io.Reader
	newlines int
	last     byte
	any      bool
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.newlines += bytes.Count(p[:n], []byte{'\n'})
		c.last = p[n-1]
		c.any = true
	}
	return n, err
}

// lines возвращает число строк с учётом последней строки без перевода строки.
func (c *lineCounter) lines() int {
	if c.any && c.last != '\n' {
		return c.newlines + 1
	}
	return c.newlines
}
