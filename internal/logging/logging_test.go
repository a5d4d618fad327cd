package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		" INFO ":  log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Fatal("expected json formatter")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Fatal("expected logfmt formatter")
	}
	if ParseFormatter("") != log.TextFormatter {
		t.Fatal("expected text formatter by default")
	}
}

func TestFromConfigRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := FromConfig(&buf, "warn", "logfmt")
	logger.Info("hidden")
	logger.Warn("shown", "path", "tasks.json")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "path=tasks.json") {
		t.Fatalf("expected warn record with fields: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing happens")
}
