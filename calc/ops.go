package calc

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"slices"

	"github.com/ardnew/calcrst/unit"
)

// binary applies an arithmetic or comparison operator to two values of any
// supported kind: int, float64, [unit.Quantity], [Array] or []any.
func binary(op string, a, b any) (any, error) {
	if isComparison(op) {
		return compare(op, a, b)
	}

	switch {
	case isArray(a) || isArray(b):
		return arrayOp(op, a, b)

	case isQuantity(a) || isQuantity(b):
		return quantityOp(op, a, b)
	}

	if x, ok := a.(int); ok {
		if y, ok := b.(int); ok {
			if v, ok := intOp(op, x, y); ok {
				return v, nil
			}
		}
	}

	x, okx := toFloat(a)
	y, oky := toFloat(b)

	if okx && oky {
		return floatOp(op, x, y)
	}

	if la, ok := a.([]any); ok && op == "+" {
		if lb, ok := b.([]any); ok {
			return slices.Concat(la, lb), nil
		}
	}

	if sa, ok := a.(string); ok && op == "+" {
		if sb, ok := b.(string); ok {
			return sa + sb, nil
		}
	}

	return nil, operandError(op, a, b)
}

func intOp(op string, x, y int) (any, bool) {
	switch op {
	case "+":
		return x + y, true
	case "-":
		return x - y, true
	case "*":
		return x * y, true
	case "%":
		if y != 0 {
			return x % y, true
		}
	case "**", "^":
		if y >= 0 {
			r := 1
			for range y {
				r *= x
			}

			return r, true
		}
	}

	return nil, false
}

func floatOp(op string, x, y float64) (any, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		return x / y, nil
	case "%":
		return math.Mod(x, y), nil
	case "**", "^":
		return math.Pow(x, y), nil
	}

	return nil, operandError(op, x, y)
}

func quantityOp(op string, a, b any) (any, error) {
	switch op {
	case "**", "^":
		q, ok := toQuantity(a)
		e, oke := toFloat(b)

		if !ok || !oke {
			return nil, operandError(op, a, b)
		}

		r, err := q.Pow(e)
		if err != nil {
			return nil, err
		}

		return collapse(r), nil
	}

	x, okx := toQuantity(a)
	y, oky := toQuantity(b)

	if !okx || !oky {
		return nil, operandError(op, a, b)
	}

	var (
		r   unit.Quantity
		err error
	)

	switch op {
	case "+":
		r, err = x.Add(y)
	case "-":
		r, err = x.Sub(y)
	case "*":
		r = x.Mul(y)
	case "/":
		r = x.Div(y)
	default:
		return nil, operandError(op, a, b)
	}

	if err != nil {
		return nil, err
	}

	return collapse(r), nil
}

func arrayOp(op string, a, b any) (any, error) {
	fn := func(x, y float64) float64 {
		v, _ := floatOp(op, x, y)
		f, _ := v.(float64)

		return f
	}

	if _, err := floatOp(op, 0, 1); err != nil {
		return nil, operandError(op, a, b)
	}

	x, xa := a.(Array)
	y, ya := b.(Array)

	switch {
	case xa && ya:
		return x.zip(y, fn)

	case xa:
		s, ok := toFloat(b)
		if !ok {
			return nil, operandError(op, a, b)
		}

		return x.Map(func(v float64) float64 { return fn(v, s) }), nil

	default:
		s, ok := toFloat(a)
		if !ok {
			return nil, operandError(op, a, b)
		}

		return y.Map(func(v float64) float64 { return fn(s, v) }), nil
	}
}

func isComparison(op string) bool {
	switch op {
	case "<", "<=", ">", ">=", "==", "!=":
		return true
	}

	return false
}

// compare orders numbers and quantities. Equality of other values falls back
// to deep equality.
func compare(op string, a, b any) (any, error) {
	var (
		c   int
		err error
	)

	x, okx := toQuantity(a)
	y, oky := toQuantity(b)

	switch {
	case okx && oky:
		c, err = x.Compare(y)
		if err != nil {
			return nil, err
		}

	case op == "==":
		return reflect.DeepEqual(a, b), nil

	case op == "!=":
		return !reflect.DeepEqual(a, b), nil

	default:
		return nil, operandError(op, a, b)
	}

	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	case "==":
		return c == 0, nil
	default:
		return c != 0, nil
	}
}

func negate(v any) (any, error) {
	switch v := v.(type) {
	case int:
		return -v, nil
	case float64:
		return -v, nil
	case unit.Quantity:
		return v.Neg(), nil
	case Array:
		return v.Map(func(x float64) float64 { return -x }), nil
	}

	if f, ok := toFloat(v); ok {
		return -f, nil
	}

	return nil, ErrOperand.With(slog.String("op", "-"), slog.String("operand", typeName(v)))
}

// index implements coll[i] for lists, arrays, strings and maps.
func index(coll, key any) (any, error) {
	if m, ok := coll.(map[string]any); ok {
		s, _ := key.(string)

		return m[s], nil
	}

	i, ok := key.(int)
	if !ok {
		f, okf := toFloat(key)
		if !okf || f != math.Trunc(f) {
			return nil, ErrArgument.With(slog.String("index", typeName(key)))
		}

		i = int(f)
	}

	switch c := coll.(type) {
	case Array:
		return c.Index(i)

	case []any:
		if i < 0 {
			i += len(c)
		}

		if i < 0 || i >= len(c) {
			return nil, ErrArgument.With(slog.Int("index", i), slog.Int("len", len(c)))
		}

		return c[i], nil

	case string:
		r := []rune(c)
		if i < 0 {
			i += len(r)
		}

		if i < 0 || i >= len(r) {
			return nil, ErrArgument.With(slog.Int("index", i), slog.Int("len", len(r)))
		}

		return string(r[i]), nil
	}

	return nil, ErrOperand.With(slog.String("op", "[]"), slog.String("operand", typeName(coll)))
}

// collapse turns a quantity without dimension or display unit into a plain
// float64.
func collapse(q unit.Quantity) any {
	if q.Unitless() && q.Dim().IsZero() {
		return q.Value()
	}

	return q
}

func isArray(v any) bool {
	_, ok := v.(Array)

	return ok
}

func isQuantity(v any) bool {
	_, ok := v.(unit.Quantity)

	return ok
}

func toQuantity(v any) (unit.Quantity, bool) {
	if q, ok := v.(unit.Quantity); ok {
		return q, true
	}

	if f, ok := toFloat(v); ok {
		return unit.Scalar(f), true
	}

	return unit.Quantity{}, false
}

// toFloat converts any Go number, or a dimensionless quantity, to float64.
func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case unit.Quantity:
		if v.Dim().IsZero() {
			return v.Value(), true
		}
	}

	return 0, false
}

func operandError(op string, a, b any) error {
	return ErrOperand.With(
		slog.String("op", op),
		slog.String("left", typeName(a)),
		slog.String("right", typeName(b)),
	)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return fmt.Sprintf("%T", v)
}

// Number reports whether v is a plain int or float64, returning it as
// float64.
func Number(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}

	return 0, false
}

// Ordered compares two values with op, one of < <= > >= == !=. Quantities
// must share a dimension.
func Ordered(op string, a, b any) (bool, error) {
	r, err := compare(op, a, b)
	if err != nil {
		return false, err
	}

	ok, _ := r.(bool)

	return ok, nil
}
