package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestZeroLoggerDiscards(t *testing.T) {
	var l Logger

	l.Info("ignored")
	l.Error("ignored", slog.Int("n", 1))

	if l.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", l.Level(), DefaultLevel)
	}

	if w := l.Wrap(WithLevel(LevelDebug)); w.Level() != LevelDebug {
		t.Errorf("Wrap level = %v, want debug", w.Level())
	}
}

func TestMakeText(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"))
	l.Info("hello", slog.String("entry", "section"))
	l.Debug("filtered")

	got := buf.String()
	if !strings.Contains(got, "level=INFO") {
		t.Errorf("missing level in %q", got)
	}

	if !strings.Contains(got, "msg=hello") || !strings.Contains(got, "entry=section") {
		t.Errorf("missing message or attribute in %q", got)
	}

	if strings.Contains(got, "filtered") {
		t.Errorf("debug message written at info level: %q", got)
	}

	if strings.Contains(got, "time=") {
		t.Errorf("time written with layout none: %q", got)
	}
}

func TestMakeJSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace))
	l.Trace("deep", slog.Int("depth", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", rec["level"])
	}

	if rec["depth"] != float64(3) {
		t.Errorf("depth = %v, want 3", rec["depth"])
	}
}

func TestWithAttrs(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("")).With(slog.String("pkg", "render"))
	l.Warn("careful")

	if !strings.Contains(buf.String(), "pkg=render") {
		t.Errorf("With attribute missing from %q", buf.String())
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("With changed configuration")
	}
}

func TestWrapDoesNotMutate(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf)
	debug := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelInfo {
		t.Errorf("base level = %v, want info", base.Level())
	}

	if debug.Level() != LevelDebug {
		t.Errorf("wrapped level = %v, want debug", debug.Level())
	}
}

func TestCaller(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithCaller(true), WithTimeLayout("none"))
	l.InfoContext(context.Background(), "where")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("caller is not the test file: %q", buf.String())
	}
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	l.Error("broken", slog.Bool("ok", false))

	got := buf.String()
	if !strings.Contains(got, ansiRed) {
		t.Errorf("pretty output not colorized: %q", got)
	}

	if !strings.Contains(got, "broken") || !strings.Contains(got, "ERROR") {
		t.Errorf("pretty output missing content: %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if s := LevelTrace.String(); s != "trace" {
		t.Errorf("LevelTrace.String() = %q", s)
	}

	if s := (LevelInfo + 2).String(); s != "info+2" {
		t.Errorf("(LevelInfo+2).String() = %q", s)
	}

	if got := slices.Collect(Levels()); len(got) != 5 || got[0] != "trace" {
		t.Errorf("Levels() = %v", got)
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Error("ParseFormat(JSON) != FormatJSON")
	}

	if ParseFormat("xml") != DefaultFormat {
		t.Error("ParseFormat(xml) != DefaultFormat")
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	saved := defaultLog
	defer func() { defaultLog = saved }()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithTimeLayout("none"), WithLevel(LevelDebug))
	Debug("from default")

	if !strings.Contains(buf.String(), "from default") {
		t.Errorf("default logger output = %q", buf.String())
	}

	if Default().Level() != LevelDebug {
		t.Errorf("Default().Level() = %v", Default().Level())
	}
}
