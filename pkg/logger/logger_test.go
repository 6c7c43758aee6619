package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_FormatsKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "info")

	l.Info("extraction complete", "pages", 3, "file", "doc.pdf")

	out := buf.String()
	if !strings.Contains(out, "INFO: extraction complete") {
		t.Fatalf("expected level and message, got %q", out)
	}
	if !strings.Contains(out, "pages=3") || !strings.Contains(out, "file=doc.pdf") {
		t.Fatalf("expected key=value fields, got %q", out)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "warn")

	l.Debug("noise")
	l.Info("still noise")
	if buf.Len() != 0 {
		t.Fatalf("expected debug/info suppressed at warn level, got %q", buf.String())
	}

	l.Warn("engine reset")
	if !strings.Contains(buf.String(), "WARN: engine reset") {
		t.Fatalf("expected warning emitted, got %q", buf.String())
	}
}

func TestLogger_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "error")

	l.Error("recognition failed", errors.New("tessdata missing"))
	if !strings.Contains(buf.String(), "error=tessdata missing") {
		t.Fatalf("expected cause in output, got %q", buf.String())
	}
}

func TestWithComponent_TagsEveryEntry(t *testing.T) {
	var buf bytes.Buffer
	l := WithComponent(NewLoggerTo(&buf, "debug"), "ocr")

	l.Info("profile selected", "profile", "arabic")
	out := buf.String()
	if !strings.Contains(out, "component=ocr") {
		t.Fatalf("expected component tag, got %q", out)
	}
	if !strings.Contains(out, "profile=arabic") {
		t.Fatalf("expected caller fields preserved, got %q", out)
	}

	buf.Reset()
	l.Error("recognition failed", errors.New("boom"), "page", 2)
	out = buf.String()
	if !strings.Contains(out, "component=ocr") || !strings.Contains(out, "page=2") {
		t.Fatalf("expected component and fields on error entries, got %q", out)
	}
}
