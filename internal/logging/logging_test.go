package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/crate/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWriter_FiltersByLevelAndEncodesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, zapcore.WarnLevel)

	logger.Info("hidden")
	logger.Warn("fetch failed", zap.String("key", "42"))
	_ = logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if rec["msg"] != "fetch failed" || rec["key"] != "42" || rec["level"] != "WARN" {
		t.Fatalf("record = %v, want msg/key/level set", rec)
	}
	if _, ok := rec["timestamp"]; !ok {
		t.Fatalf("record missing timestamp: %v", rec)
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "crate.log")
	logger, closeFn, err := New(config.LogConfig{File: path, Level: "debug", MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("log file = %q, want hello record", data)
	}
}

func TestNew_EmptyPathErrors(t *testing.T) {
	if _, _, err := New(config.LogConfig{File: "  "}); err == nil {
		t.Fatalf("New returned nil error for empty path")
	}
}
