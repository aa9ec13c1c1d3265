package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.InfoLevel, "json", "")

	l.With(String("run", "abc")).Info("merged",
		Int("rows", 42),
		Float64("corr", 0.5),
		Date("from", time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)),
		Bool("overlap", true),
		Error(errors.New("boom")),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if got["message"] != "merged" || got["run"] != "abc" || got["from"] != "2024-01-02" {
		t.Fatalf("unexpected line %v", got)
	}
	if got["rows"].(float64) != 42 || got["error"] != "boom" || got["overlap"] != true {
		t.Fatalf("unexpected line %v", got)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.WarnLevel, "json", "")
	l.Info("hidden")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing, got %q", buf.String())
	}
	l.Warn("shown")
	if buf.Len() == 0 {
		t.Fatalf("expected warn line")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(&Config{Level: "loud", Output: "stdout"}); err == nil {
		t.Fatalf("expected error")
	}
}
