package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in   string
		max  int
		want string
	}{
		"short":       {in: "hello", max: 10, want: "hello"},
		"exact":       {in: "hello", max: 5, want: "hello"},
		"cut":         {in: "hello world", max: 8, want: "hello..."},
		"tiny max":    {in: "hello", max: 2, want: "..."},
		"multi-byte":  {in: "👤👤👤👤👤👤", max: 5, want: "👤👤..."},
		"empty input": {in: "", max: 3, want: ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateString(tc.in, tc.max); got != tc.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "warn", true)
	log.Info("hidden")
	log.Warn("shown", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "shown" || rec["k"] != "v" {
		t.Errorf("record = %v", rec)
	}
}

func TestMiddlewareCallsNext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := Middleware(New(&buf, "debug", false))

	var called bool
	h := mw(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		called = true
	})
	h(t.Context(), nil, &models.Update{
		ID: 7,
		Message: &models.Message{
			ID:   3,
			Chat: models.Chat{ID: 42},
			From: &models.User{ID: 99},
			Text: "/bottts Ali",
		},
	})

	if !called {
		t.Fatal("next handler was not called")
	}
	out := buf.String()
	for _, want := range []string{"update_id=7", "chat_id=42", "user_id=99", "update_type=message", "Queued update"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestMiddlewareNonMessageUpdate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var called bool
	h := Middleware(New(&buf, "debug", false))(func(context.Context, *bot.Bot, *models.Update) { called = true })
	h(t.Context(), nil, &models.Update{ID: 1})

	if !called {
		t.Fatal("next handler was not called")
	}
	if !strings.Contains(buf.String(), "update_type=other") {
		t.Errorf("log output = %s", buf.String())
	}
}
