package table

import (
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ardnew/calcrst/format"
)

// gutter separates adjacent columns.
const gutter = "  "

// headerPadding is the minimum space added to each header's width.
const headerPadding = 2

type column struct {
	numeric bool
	width   int
	cells   []string
}

// Write writes t as a reStructuredText simple table. Numeric columns are
// right-aligned; a column containing any float formats every number with
// t.Precision decimals.
func (t *Table) Write(w io.Writer) error {
	_, err := io.WriteString(w, t.String())

	return err
}

// String returns the table as written by [Table.Write].
func (t *Table) String() string {
	cols := t.columns()
	if len(cols) == 0 {
		return ""
	}

	headers := make([]string, len(cols))
	copy(headers, t.Headers)

	rule := make([]string, len(cols))
	for i, c := range cols {
		rule[i] = strings.Repeat("=", c.width)
	}

	var sb strings.Builder

	line := func(cells []string) {
		parts := make([]string, len(cols))
		for i, c := range cols {
			if c.numeric {
				parts[i] = runewidth.FillLeft(cells[i], c.width)
			} else {
				parts[i] = runewidth.FillRight(cells[i], c.width)
			}
		}

		sb.WriteString(strings.TrimRight(strings.Join(parts, gutter), " "))
		sb.WriteByte('\n')
	}

	sb.WriteString(strings.Join(rule, gutter) + "\n")
	line(headers)
	sb.WriteString(strings.Join(rule, gutter) + "\n")

	for r := range t.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.cells[r]
		}

		line(cells)
	}

	sb.WriteString(strings.Join(rule, gutter) + "\n")

	return sb.String()
}

func (t *Table) columns() []column {
	n := len(t.Headers)
	for _, row := range t.Rows {
		n = max(n, len(row))
	}

	cols := make([]column, n)

	for i := range cols {
		cells := make([]any, len(t.Rows))
		for r, row := range t.Rows {
			if i < len(row) {
				cells[r] = row[i]
			}
		}

		cols[i] = t.column(cells)

		if i < len(t.Headers) {
			cols[i].width = max(cols[i].width, runewidth.StringWidth(t.Headers[i])+headerPadding)
		}
	}

	return cols
}

func (t *Table) column(cells []any) column {
	c := column{numeric: len(cells) > 0, cells: make([]string, len(cells))}
	float := false

	for _, v := range cells {
		switch v.(type) {
		case int:
		case float64:
			float = true
		default:
			c.numeric = false
		}
	}

	for i, v := range cells {
		switch n := v.(type) {
		case int:
			if float && c.numeric {
				c.cells[i] = strconv.FormatFloat(float64(n), 'f', t.Precision, 64)
			} else {
				c.cells[i] = strconv.Itoa(n)
			}

		case float64:
			if c.numeric {
				c.cells[i] = strconv.FormatFloat(n, 'f', t.Precision, 64)
			} else {
				c.cells[i] = format.Repr(n)
			}

		case nil:

		default:
			c.cells[i] = format.Repr(n)
		}

		c.width = max(c.width, runewidth.StringWidth(c.cells[i]))
	}

	return c
}
