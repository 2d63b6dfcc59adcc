package calc

import (
	"bufio"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/klauspost/readahead"
)

// Func is a documented callable. Either Body, an expression over Params, or
// Native is set.
type Func struct {
	Name   string
	Params []string
	Doc    string
	Body   string
	Native func(args ...any) (any, error)
}

// Signature returns "name(a, b)".
func (f *Func) Signature() string {
	return f.Name + "(" + strings.Join(f.Params, ", ") + ")"
}

// caller adapts f for registration as an expression function evaluated in e.
func (e *Env) caller(f *Func) func(args ...any) (any, error) {
	return func(args ...any) (any, error) {
		if f.Native != nil {
			return f.Native(args...)
		}

		if len(args) != len(f.Params) {
			return nil, ErrArgument.With(
				slog.String("func", f.Name),
				slog.Int("want", len(f.Params)),
				slog.Int("got", len(args)),
			)
		}

		bindings := make(map[string]any, len(args))
		for i, p := range f.Params {
			bindings[p] = args[i]
		}

		return e.EvalWith(f.Body, bindings)
	}
}

var fnDecl = regexp.MustCompile(`^fn\s+([\pL_][\pL\pN_]*)\s*\(([^)]*)\)\s*=\s*(.+)$`)

// ParseFunc parses a declaration "fn name(a, b) = expr".
func ParseFunc(line string) (*Func, bool) {
	m := fnDecl.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil, false
	}

	f := &Func{Name: m[1], Body: strings.TrimSpace(m[3])}

	for p := range strings.SplitSeq(m[2], ",") {
		if p = strings.TrimSpace(p); p != "" {
			f.Params = append(f.Params, p)
		}
	}

	return f, true
}

// ExecScript executes a script in e. Each line is one of:
//
//	# comment
//	## documentation for the next function
//	fn name(a, b) = expr
//	name = expr
//
// Blank lines are ignored. Execution stops at the first failing line, and the
// error reports its line number.
func (e *Env) ExecScript(r io.Reader) error {
	ra := readahead.NewReader(r)
	defer ra.Close()

	var doc []string

	scanner := bufio.NewScanner(ra)

	for num := 1; scanner.Scan(); num++ {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, "##"):
			doc = append(doc, strings.TrimSpace(strings.TrimPrefix(line, "##")))

			continue

		case strings.HasPrefix(line, "#"):
			continue
		}

		if f, ok := ParseFunc(line); ok {
			f.Doc = strings.Join(doc, "\n")
			e.Define(f)

			doc = nil

			continue
		}

		doc = nil

		if _, _, err := e.Exec(line); err != nil {
			return ErrScript.Wrap(err).With(
				slog.Int("line", num),
				slog.String("statement", line),
			)
		}
	}

	if err := scanner.Err(); err != nil {
		return ErrScript.Wrap(err)
	}

	return nil
}
