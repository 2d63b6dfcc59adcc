package table

import (
	"log/slog"
	"strings"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/format"
)

// Evaluator runs statements and expressions. [*calc.Env] implements it.
type Evaluator interface {
	Exec(stmt string) (name string, v any, err error)
	Eval(src string) (any, error)
	EvalWith(src string, bindings map[string]any) (any, error)
}

// Spec describes a table.
type Spec struct {
	// Statement "name = expr" produces the table body.
	Statement string
	// Range1 "i = ..." supplies the column headers; Range2, when set, the row
	// labels of a 2-D table.
	Range1, Range2 string
	// Label1 prefixes each column header as "label=value"; Label2 is the
	// corner header of a 2-D table.
	Label1, Label2 string
	// Precision is the number of decimals of float cells.
	Precision int
}

// Table is a header row and body rows.
type Table struct {
	Headers   []string
	Rows      [][]any
	Precision int
}

// Build evaluates s. With an empty Range2 the result has exactly one body
// row; otherwise it has one row per Range2 value and a leading label column.
//
// A 2-D table whose statement is not a literal list evaluates the right-hand
// side once per pair of range values, binding both range variables. The two
// variable names must differ and neither may contain the other.
func Build(ev Evaluator, s Spec) (*Table, error) {
	name1, vals1, err := rangeValues(ev, s.Range1)
	if err != nil {
		return nil, err
	}

	t := &Table{Precision: s.Precision}

	for _, v := range vals1 {
		t.Headers = append(t.Headers, s.Label1+"="+format.Repr(v))
	}

	_, rhs, ok := calc.SplitStatement(s.Statement)
	if !ok {
		return nil, ErrStatement.With(slog.String("statement", s.Statement))
	}

	if strings.TrimSpace(s.Range2) == "" {
		row, err := oneRow(ev, s.Statement, rhs)
		if err != nil {
			return nil, err
		}

		t.Rows = [][]any{row}

		return t, nil
	}

	name2, vals2, err := rangeValues(ev, s.Range2)
	if err != nil {
		return nil, err
	}

	if name1 == name2 || strings.Contains(name1, name2) || strings.Contains(name2, name1) {
		return nil, ErrRangeOverlap.With(
			slog.String("range1", name1),
			slog.String("range2", name2),
		)
	}

	t.Headers = append([]string{s.Label2}, t.Headers...)

	var body [][]any

	if isList(rhs) {
		body, err = literalRows(ev, s.Statement)
	} else {
		body, err = gridRows(ev, rhs, name1, vals1, name2, vals2)
	}

	if err != nil {
		return nil, err
	}

	for i, row := range body {
		label := ""
		if i < len(vals2) {
			label = format.Repr(vals2[i])
		}

		t.Rows = append(t.Rows, append([]any{label}, row...))
	}

	return t, nil
}

// rangeValues executes a range statement and lists its values.
func rangeValues(ev Evaluator, stmt string) (string, []any, error) {
	name, v, err := ev.Exec(stmt)
	if err != nil {
		return "", nil, ErrRange.Wrap(err).With(slog.String("range", stmt))
	}

	if name == "" {
		return "", nil, ErrRange.With(slog.String("range", stmt))
	}

	return name, elements(v), nil
}

func oneRow(ev Evaluator, stmt, rhs string) ([]any, error) {
	name, v, err := ev.Exec(stmt)
	if err != nil {
		return nil, ErrStatement.Wrap(err).With(slog.String("statement", stmt))
	}

	if isList(rhs) {
		return elements(v), nil
	}

	if v, err = ev.Eval(name); err != nil {
		return nil, ErrStatement.Wrap(err).With(slog.String("statement", stmt))
	}

	return elements(v), nil
}

// literalRows takes each row of each outer element of a literal list. An
// outer element that is itself a flat list is one row.
func literalRows(ev Evaluator, stmt string) ([][]any, error) {
	_, v, err := ev.Exec(stmt)
	if err != nil {
		return nil, ErrStatement.Wrap(err).With(slog.String("statement", stmt))
	}

	var rows [][]any

	for _, outer := range elements(v) {
		inner := elements(outer)

		if len(inner) > 0 && isSequence(inner[0]) {
			for _, r := range inner {
				rows = append(rows, elements(r))
			}

			continue
		}

		rows = append(rows, inner)
	}

	return rows, nil
}

// gridRows evaluates rhs for every pair (x, y), y in the outer loop.
func gridRows(
	ev Evaluator,
	rhs, name1 string, vals1 []any,
	name2 string, vals2 []any,
) ([][]any, error) {
	rows := make([][]any, 0, len(vals2))

	for _, y := range vals2 {
		row := make([]any, 0, len(vals1))

		for _, x := range vals1 {
			v, err := ev.EvalWith(rhs, map[string]any{name1: x, name2: y})
			if err != nil {
				return nil, ErrStatement.Wrap(err).With(
					slog.String("expr", rhs),
					slog.Any(name1, x),
					slog.Any(name2, y),
				)
			}

			row = append(row, v)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func isList(rhs string) bool { return strings.HasPrefix(strings.TrimSpace(rhs), "[") }

func isSequence(v any) bool {
	switch v.(type) {
	case []any, []int, []float64, calc.Array:
		return true
	}

	return false
}

// elements lists the items of a sequence; any other value is a single item.
func elements(v any) []any {
	switch v := v.(type) {
	case []any:
		return v

	case calc.Array:
		return v.ToList()

	case []int:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}

		return out

	case []float64:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}

		return out
	}

	return []any{v}
}
