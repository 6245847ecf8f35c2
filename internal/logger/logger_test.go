package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		warnSeen  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"", false, true},
		{"WARN", false, true},
		{"error", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Level: tt.level, Output: &buf})
			l.Debug().Msg("d")
			l.Warn().Msg("w")
			out := buf.String()
			if got := strings.Contains(out, `"message":"d"`); got != tt.debugSeen {
				t.Errorf("debug seen = %v, want %v", got, tt.debugSeen)
			}
			if got := strings.Contains(out, `"message":"w"`); got != tt.warnSeen {
				t.Errorf("warn seen = %v, want %v", got, tt.warnSeen)
			}
		})
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Output: &buf})
	l.Info().Str("phrase", "MERRY").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if entry["phrase"] != "MERRY" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestNewPretty(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Pretty: true, Output: &buf})
	l.Info().Msg("snow")
	if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "snow") {
		t.Errorf("pretty output = %q", buf.String())
	}
}
