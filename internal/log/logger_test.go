package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestLogger_JSONIncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentRecurring, Output: &buf})

	l.Info("Recurring pass complete", FieldCount, 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if entry[FieldComponent] != ComponentRecurring {
		t.Errorf("component = %v, want %s", entry[FieldComponent], ComponentRecurring)
	}
	if entry[FieldCount] != float64(2) {
		t.Errorf("count = %v, want 2", entry[FieldCount])
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
	l.WithComponent(ComponentWorker).Warn("shown")
	if !bytes.Contains(buf.Bytes(), []byte("component=worker")) {
		t.Errorf("expected worker component in %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Component: ComponentWorker, Output: &buf})

	ctx := WithContext(context.Background(), l)
	if got := FromContext(ctx); got != l {
		t.Fatalf("FromContext() = %p, want %p", got, l)
	}
	if got := FromContext(context.Background()); got.Component() != "unknown" {
		t.Errorf("fallback component = %q, want unknown", got.Component())
	}
}

func TestLogFields(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentRecurring).
		WithOperation(OpProcess).
		WithMoney(12.5, "USD").
		WithError(nil)

	if _, ok := fields[FieldError]; ok {
		t.Error("nil error should not add a field")
	}
	if fields[FieldCurrency] != "USD" || fields[FieldAmount] != 12.5 {
		t.Errorf("fields = %v", fields)
	}
	if len(fields.ToSlice()) != 2*len(fields) {
		t.Errorf("ToSlice() length = %d, want %d", len(fields.ToSlice()), 2*len(fields))
	}
}
