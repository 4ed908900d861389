package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.WithField("slot", "hero").Debug("resolved")

	out := buf.String()
	if !strings.Contains(out, "resolved") || !strings.Contains(out, "slot=hero") {
		t.Errorf("debug entry missing from output: %q", out)
	}
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warning missing: %q", out)
	}
}
