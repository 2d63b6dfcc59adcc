package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiCyan   = "\033[36m"
)

// prettyHandler writes colorized key=value records for terminals.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	prefix string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		h.emit(&buf, nil, slog.Time(slog.TimeKey, r.Time))
	}

	h.emit(&buf, nil, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			h.emit(&buf, nil,
				slog.String(slog.SourceKey, src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	h.emit(&buf, nil, slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		h.emit(&buf, nil, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.emit(&buf, nil, h.qualify(a))

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.qualifyAll(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) qualify(a slog.Attr) slog.Attr {
	a.Key = h.prefix + a.Key

	return a
}

func (h *prettyHandler) qualifyAll(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.qualify(a)
	}

	return out
}

// emit writes a, passing it through ReplaceAttr first. Group values are
// flattened into dotted keys.
func (h *prettyHandler) emit(buf *bytes.Buffer, groups []string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
	}

	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			g.Key = a.Key + "." + g.Key
			h.emit(buf, append(groups, a.Key), g)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(ansiDim + a.Key + ansiReset + "=")
	buf.WriteString(paint(a.Key, a.Value))
}

func paint(key string, v slog.Value) string {
	color := ansiCyan

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		color = ansiYellow
	case slog.KindBool:
		color = ansiRed
		if v.Bool() {
			color = ansiGreen
		}
	case slog.KindTime:
		color = ansiBlue
	}

	s := v.String()

	if key == slog.LevelKey {
		switch level := ParseLevel(s); {
		case level >= LevelError:
			color = ansiRed
		case level >= LevelWarn:
			color = ansiYellow
		case level >= LevelInfo:
			color = ansiGreen
		default:
			color = ansiBlue
		}
	}

	if strings.ContainsAny(s, " \t\n\"") && key != slog.MessageKey {
		s = strconv.Quote(s)
	}

	return color + s + ansiReset
}
