package render

import (
	"log/slog"

	"github.com/ardnew/calcrst/model"
)

// Class groups the failures a render recovers from.
type Class int

const (
	ClassDecimals     Class = iota // decimals
	ClassSyntax                    // syntax
	ClassEvaluate                  // evaluate
	ClassSubstitution              // substitution
	ClassTable                     // table
	ClassFile                      // file
)

var classNames = [...]string{"decimals", "syntax", "evaluate", "substitution", "table", "file"}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}

	return classNames[c]
}

// Diagnostic records a failure that degraded the rendering of one entry.
type Diagnostic struct {
	// Index is the position of the entry in the model, or -1 after the walk.
	Index int
	Kind  model.Kind
	Class Class
	Err   error
}

// LogValue implements [slog.LogValuer].
func (d Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("entry", d.Index),
		slog.String("kind", d.Kind.String()),
		slog.String("class", d.Class.String()),
		slog.Any("error", d.Err),
	)
}

// Report summarizes a render.
type Report struct {
	// Entries is the number of entries rendered, excluding unknown kinds.
	Entries int
	// Skipped is the number of entries of unknown kind.
	Skipped     int
	Diagnostics []Diagnostic
}

// OK reports whether no failure was recorded.
func (r *Report) OK() bool { return len(r.Diagnostics) == 0 }

// Count returns the number of diagnostics of class c.
func (r *Report) Count(c Class) int {
	n := 0

	for _, d := range r.Diagnostics {
		if d.Class == c {
			n++
		}
	}

	return n
}
