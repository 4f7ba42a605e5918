package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("ParseFormat(json) should be FormatJSON")
	}
	if ParseFormat("text") != FormatText {
		t.Error("ParseFormat(text) should be FormatText")
	}
	if ParseFormat("") != FormatText {
		t.Error("ParseFormat empty should default to FormatText")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, LevelDebug, FormatJSON)
	defer InitLogger(LevelWarn, FormatText)

	Info("parse_result", "path", "refs.bib", "elements", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "parse_result" {
		t.Errorf("msg = %v, want parse_result", record["msg"])
	}
	if record["path"] != "refs.bib" {
		t.Errorf("path = %v, want refs.bib", record["path"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, LevelError, FormatText)
	defer InitLogger(LevelWarn, FormatText)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Error("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("suppressed messages leaked: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("error message missing: %q", out)
	}
}

func TestParseResultLevel(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, LevelDebug, FormatText)
	defer InitLogger(LevelWarn, FormatText)

	ParseResult("clean.bib", 5, 0)
	ParseResult("broken.bib", 5, 2)

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("clean parse should log at debug: %q", out)
	}
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("parse with retained errors should warn: %q", out)
	}
}
