package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestDebugRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected no output when verbose is off, got %q", buf.String())
	}

	SetVerbose(true)
	defer SetVerbose(false)
	Debug("shown %d", 2)
	if !strings.Contains(buf.String(), "[DEBUG] shown 2") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestSectionHeader(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(true)
	defer SetVerbose(false)

	Section("embed")
	if !strings.Contains(buf.String(), "=== embed ===") {
		t.Errorf("expected section header, got %q", buf.String())
	}
}

func TestIsVerbose(t *testing.T) {
	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be enabled")
	}
	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be disabled")
	}
}
