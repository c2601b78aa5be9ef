package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidUTF8: поле строки не является корректным UTF-8.
var ErrInvalidUTF8 = errors.New("field is not valid UTF-8")

// DefaultMessage отправляется, если аргументы не переданы.
const DefaultMessage = "third task....."

// MessageFromArgs склеивает аргументы через пробел.
// Пустой результат заменяется на fallback.
func MessageFromArgs(args []string, fallback string) string {
	msg := strings.Join(args, " ")
	if msg == "" {
		return fallback
	}
	return msg
}

// RenderRow возвращает текстовое представление строки CSV в виде списка:
//
//	["1", "make tea"] -> ['1', 'make tea']
//
// Формат совпадает с тем, что исторически уходило в очередь, поэтому
// потребители, разбирающие такие сообщения, продолжают работать.
// Поле с некорректным UTF-8 даёт ErrInvalidUTF8 с номером поля (с 1).
func RenderRow(row []string) (string, error) {
	var b strings.Builder
	b.WriteByte('[')
	for i, field := range row {
		if !utf8.ValidString(field) {
			return "", fmt.Errorf("%w: field %d", ErrInvalidUTF8, i+1)
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteField(field))
	}
	b.WriteByte(']')
	return b.String(), nil
}

// quoteField берёт поле в одинарные кавычки, а если внутри есть
// одинарная кавычка и нет двойной, то в двойные.
func quoteField(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}
