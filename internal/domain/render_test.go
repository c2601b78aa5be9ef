package domain

import (
	"errors"
	"testing"
)

func TestMessageFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args", args: nil, want: DefaultMessage},
		{name: "empty slice", args: []string{}, want: DefaultMessage},
		{name: "single empty arg", args: []string{""}, want: DefaultMessage},
		{name: "words", args: []string{"a", "b", "c"}, want: "a b c"},
		{name: "dots kept", args: []string{"second", "task.."}, want: "second task.."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MessageFromArgs(tt.args, DefaultMessage)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want string
	}{
		{name: "two fields", row: []string{"1", "make tea"}, want: `['1', 'make tea']`},
		{name: "empty row", row: nil, want: `[]`},
		{name: "empty field", row: []string{""}, want: `['']`},
		{name: "single quote switches to double", row: []string{"it's"}, want: `["it's"]`},
		{name: "both quotes", row: []string{`it's "x"`}, want: `['it\'s "x"']`},
		{name: "double quote only", row: []string{`say "hi"`}, want: `['say "hi"']`},
		{name: "backslash", row: []string{`a\b`}, want: `['a\\b']`},
		{name: "newline and tab", row: []string{"a\nb\tc"}, want: `['a\nb\tc']`},
		{name: "control byte", row: []string{"\x01"}, want: `['\x01']`},
		{name: "unicode kept", row: []string{"чай"}, want: `['чай']`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderRow(tt.row)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRenderRow_InvalidUTF8(t *testing.T) {
	_, err := RenderRow([]string{"ok", "caf\xe9"})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if err.Error() != "field is not valid UTF-8: field 2" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestSource_IsValid(t *testing.T) {
	if !SourceArgs.IsValid() || !SourceCSV.IsValid() {
		t.Error("known sources should be valid")
	}
	if Source("stdin").IsValid() {
		t.Error("unknown source should be invalid")
	}
}

func TestNewMessage(t *testing.T) {
	a := NewMessage("task_queue2", []byte("x"), SourceArgs)
	b := NewMessage("task_queue2", []byte("x"), SourceArgs)

	if a.ID == b.ID {
		t.Error("each message should get its own ID")
	}
	if a.String() != "x" {
		t.Errorf("expected body x, got %q", a.String())
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}
