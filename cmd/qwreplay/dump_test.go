package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ernie/qwgo/internal/mvd"
	"github.com/ernie/qwgo/internal/protoflags"
)

func TestDumpFrameWithoutColorHasNoEscapeCodes(t *testing.T) {
	var buf bytes.Buffer
	dumpFrame(&buf, 3, mvd.Frame{Target: mvd.Target{To: 2, Command: protoflags.DemoCommandAll}}, false)
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes, got %q", out)
	}
	if !strings.Contains(out, "frame     3") {
		t.Fatalf("expected frame index rendered, got %q", out)
	}
}

func TestDumpFrameWithColorWrapsInAnsi(t *testing.T) {
	var buf bytes.Buffer
	dumpFrame(&buf, 0, mvd.Frame{}, true)
	out := buf.String()
	if !strings.HasPrefix(out, ansiDim) {
		t.Fatalf("expected ansi dim prefix, got %q", out)
	}
}
