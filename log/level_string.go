package log

import (
	"log/slog"
	"strconv"
	"strings"
)

// String returns the lowercase level name. Levels between the named ones are
// rendered as an offset from the nearest lower name, e.g. "info+2".
func (l Level) String() string {
	for i := len(levels) - 1; i >= 0; i-- {
		base := levels[i]
		if l < base {
			continue
		}

		name := strings.ToLower(baseName(base))
		if l == base {
			return name
		}

		return name + "+" + strconv.Itoa(int(l-base))
	}

	return "trace" + strconv.Itoa(int(l-LevelTrace))
}

func baseName(l Level) string {
	if l == LevelTrace {
		return "trace"
	}

	return slog.Level(l).String()
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}
