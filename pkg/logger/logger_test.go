package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: WARN, Output: &buf})

	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("INFO record should be filtered at WARN: %s", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("expected WARN record, got: %s", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Output: &buf})

	l.Debugf("before")
	l.SetLevel(DEBUG)
	l.Debugf("after")

	out := buf.String()
	if strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: DEBUG, Format: FormatJSON, Prefix: "perform", Output: &buf})

	l.Errorf("render failed for %s", "song-1")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if rec["msg"] != "render failed for song-1" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["level"] != "ERROR" {
		t.Errorf("level = %v", rec["level"])
	}
	if rec["component"] != "perform" {
		t.Errorf("component = %v", rec["component"])
	}
}

func TestFatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Output: &buf})
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatalf("cannot open %s", "db")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "level=FATAL") {
		t.Errorf("expected FATAL level in output: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"Error", ERROR},
		{"fatal", FATAL},
		{"verbose", INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %s, expected %s", tt.in, got, tt.expected)
		}
	}
}
