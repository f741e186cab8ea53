package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestConfigureRejectsBadLevel(t *testing.T) {
	l := Logger()
	if err := l.Configure("chatty", "json", "stdout", 0); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestConfigureRejectsBadFormat(t *testing.T) {
	l := Logger()
	if err := l.Configure("info", "xml", "stdout", 0); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestJSONOutputCarriesComponentField(t *testing.T) {
	l := Logger()
	if err := l.Configure("debug", "json", "stdout", 0); err != nil {
		t.Fatalf("configure: %v", err)
	}

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.WithComponent("extractor").WithFields(Fields{"game_pk": 745804}).Info("pitch records extracted")

	line := strings.TrimSpace(buf.String())
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	if payload["component"] != "extractor" {
		t.Fatalf("expected component field, got %#v", payload)
	}
	if payload["message"] != "pitch records extracted" {
		t.Fatalf("unexpected message: %#v", payload["message"])
	}
	if payload["game_pk"] != float64(745804) {
		t.Fatalf("unexpected game_pk: %#v", payload["game_pk"])
	}
}

func TestLogPerformanceEntryEmitsDurationAndOperation(t *testing.T) {
	l := Logger()
	if err := l.Configure("debug", "json", "stdout", 0); err != nil {
		t.Fatalf("configure: %v", err)
	}

	var buf bytes.Buffer
	l.SetOutput(&buf)
	LogPerformanceEntry(l.WithFields(Fields{"game_pk": 745804}), "dashboard", "build_report", 1500*time.Microsecond, nil)

	line := strings.TrimSpace(buf.String())
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	if payload["component"] != "dashboard" {
		t.Fatalf("expected component field, got %#v", payload)
	}
	if payload["operation"] != "build_report" {
		t.Fatalf("unexpected operation: %#v", payload["operation"])
	}
	if payload["duration_ms"] != float64(1.5) {
		t.Fatalf("unexpected duration_ms: %#v", payload["duration_ms"])
	}
	if payload["message"] != "performance metric" {
		t.Fatalf("unexpected message: %#v", payload["message"])
	}
}
