package calc

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/calcrst/unit"
)

// Array is a dense one- or two-dimensional array of float64.
type Array struct {
	rows, cols int // rows is zero for a 1-D array
	data       []float64
}

// Vector returns a 1-D array holding a copy of v.
func Vector(v ...float64) Array {
	return Array{cols: len(v), data: append([]float64(nil), v...)}
}

// Matrix returns a 2-D array from equal-length rows.
func Matrix(rows ...[]float64) (Array, error) {
	if len(rows) == 0 {
		return Array{}, nil
	}

	a := Array{rows: len(rows), cols: len(rows[0])}

	for i, r := range rows {
		if len(r) != a.cols {
			return Array{}, ErrShape.With(
				slog.Int("row", i),
				slog.Int("want", a.cols),
				slog.Int("got", len(r)),
			)
		}

		a.data = append(a.data, r...)
	}

	return a, nil
}

// Shape returns the length of each dimension.
func (a Array) Shape() []int {
	if a.rows == 0 {
		return []int{a.cols}
	}

	return []int{a.rows, a.cols}
}

// Ndim returns 1 or 2.
func (a Array) Ndim() int { return len(a.Shape()) }

// Len returns the length of the first dimension.
func (a Array) Len() int { return a.Shape()[0] }

// Data returns the elements in row-major order. The slice must not be
// modified.
func (a Array) Data() []float64 { return a.data }

// Index returns element i of a 1-D array, or row i of a 2-D array. Negative
// indices count from the end.
func (a Array) Index(i int) (any, error) {
	n := a.Len()
	if i < 0 {
		i += n
	}

	if i < 0 || i >= n {
		return nil, ErrArgument.With(slog.Int("index", i), slog.Int("len", n))
	}

	if a.rows == 0 {
		return a.data[i], nil
	}

	return Vector(a.data[i*a.cols : (i+1)*a.cols]...), nil
}

// ToList converts a to nested []any of float64.
func (a Array) ToList() []any {
	if a.rows == 0 {
		out := make([]any, len(a.data))
		for i, v := range a.data {
			out[i] = v
		}

		return out
	}

	out := make([]any, a.rows)

	for r := range a.rows {
		row := make([]any, a.cols)
		for c := range a.cols {
			row[c] = a.data[r*a.cols+c]
		}

		out[r] = row
	}

	return out
}

// Map returns a new array with fn applied to every element.
func (a Array) Map(fn func(float64) float64) Array {
	out := Array{rows: a.rows, cols: a.cols, data: make([]float64, len(a.data))}
	for i, v := range a.data {
		out.data[i] = fn(v)
	}

	return out
}

// zip combines two arrays of equal shape elementwise.
func (a Array) zip(b Array, fn func(x, y float64) float64) (Array, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return Array{}, ErrShape.With(
			slog.Any("left", a.Shape()),
			slog.Any("right", b.Shape()),
		)
	}

	out := Array{rows: a.rows, cols: a.cols, data: make([]float64, len(a.data))}
	for i := range a.data {
		out.data[i] = fn(a.data[i], b.data[i])
	}

	return out, nil
}

// Slice returns elements (or rows) i through j-1, clamped to the bounds of
// a. Negative indices count from the end.
func (a Array) Slice(i, j int) Array {
	n := a.Len()

	clamp := func(k int) int {
		if k < 0 {
			k += n
		}

		return min(max(k, 0), n)
	}

	i, j = clamp(i), clamp(j)
	if j <= i {
		return Array{}
	}

	if a.rows == 0 {
		return Vector(a.data[i:j]...)
	}

	return Array{
		rows: j - i,
		cols: a.cols,
		data: append([]float64(nil), a.data[i*a.cols:j*a.cols]...),
	}
}

// Format renders a in the bracketed style of numeric array printers, with
// every element right-aligned to a common width:
//
//	[ 1.000 20.000]
//	[[1.000 2.000]
//	 [3.000 4.000]]
func (a Array) Format(prec int) string {
	cells := make([]string, len(a.data))
	width := 0

	for i, v := range a.data {
		cells[i] = strconv.FormatFloat(v, 'f', prec, 64)
		width = max(width, len(cells[i]))
	}

	row := func(cells []string) string {
		padded := make([]string, len(cells))
		for i, c := range cells {
			padded[i] = strings.Repeat(" ", width-len(c)) + c
		}

		return "[" + strings.Join(padded, " ") + "]"
	}

	if a.rows == 0 {
		return row(cells)
	}

	lines := make([]string, a.rows)
	for r := range a.rows {
		lines[r] = row(cells[r*a.cols : (r+1)*a.cols])
	}

	return "[" + strings.Join(lines, "\n ") + "]"
}

// String formats a at the ambient quantity precision.
func (a Array) String() string { return a.Format(unit.Precision()) }

// asArray converts a list of numbers (or of equal-length lists of numbers)
// into an Array.
func asArray(v any) (Array, error) {
	switch v := v.(type) {
	case Array:
		return v, nil

	case []float64:
		return Vector(v...), nil

	case []any:
		if len(v) == 0 {
			return Array{}, nil
		}

		if _, nested := v[0].([]any); !nested {
			out := make([]float64, len(v))

			for i, e := range v {
				f, ok := toFloat(e)
				if !ok {
					return Array{}, ErrArgument.With(slog.String("element", typeName(e)))
				}

				out[i] = f
			}

			return Vector(out...), nil
		}

		rows := make([][]float64, len(v))

		for i, e := range v {
			r, err := asArray(e)
			if err != nil {
				return Array{}, err
			}

			if r.Ndim() != 1 {
				return Array{}, ErrShape.With(slog.Int("row", i))
			}

			rows[i] = r.data
		}

		return Matrix(rows...)

	default:
		return Array{}, ErrArgument.With(slog.String("type", typeName(v)))
	}
}
