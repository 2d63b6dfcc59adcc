package calc

import (
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/ardnew/calcrst/unit"
)

// native is a Go function callable from expressions.
type native func(args ...any) (any, error)

// builtins are the functions every environment provides.
var builtins = map[string]native{
	"sqrt": sqrtFn,
	// Angle quantities are dimensionless with a radian magnitude, so
	// sin(30*deg) needs no conversion.
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"exp":   unary(math.Exp),
	"ln":    unary(math.Log),
	"log10": unary(math.Log10),
	"atan2": atan2Fn,

	"array":    arrayFn,
	"arange":   arangeFn,
	"linspace": linspaceFn,
	"zeros":    zerosFn,
}

// Builtins returns the names of the built-in functions in sorted order.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// constants are bound in every environment alongside the unit names.
func constants() map[string]any {
	c := map[string]any{"pi": math.Pi}

	for name := range unit.Names() {
		c[name] = unit.MustLookup(name)
	}

	return c
}

func arity(name string, args []any, n ...int) error {
	if slices.Contains(n, len(args)) {
		return nil
	}

	return ErrArgument.With(
		slog.String("func", name),
		slog.Int("args", len(args)),
		slog.Any("want", n),
	)
}

// unary lifts fn over numbers, dimensionless quantities and arrays.
func unary(fn func(float64) float64) native {
	return func(args ...any) (any, error) {
		if err := arity("function", args, 1); err != nil {
			return nil, err
		}

		switch v := args[0].(type) {
		case Array:
			return v.Map(fn), nil
		}

		x, ok := toFloat(args[0])
		if !ok {
			return nil, ErrArgument.With(slog.String("type", typeName(args[0])))
		}

		return fn(x), nil
	}
}

func sqrtFn(args ...any) (any, error) {
	if err := arity("sqrt", args, 1); err != nil {
		return nil, err
	}

	if q, ok := args[0].(unit.Quantity); ok && !q.Dim().IsZero() {
		r, err := q.Pow(0.5)
		if err != nil {
			return nil, err
		}

		return collapse(r), nil
	}

	return unary(math.Sqrt)(args...)
}

func atan2Fn(args ...any) (any, error) {
	if err := arity("atan2", args, 2); err != nil {
		return nil, err
	}

	y, oky := toQuantity(args[0])
	x, okx := toQuantity(args[1])

	if !oky || !okx || y.Dim() != x.Dim() {
		return nil, operandError("atan2", args[0], args[1])
	}

	return math.Atan2(y.Value(), x.Value()), nil
}

func arrayFn(args ...any) (any, error) {
	if err := arity("array", args, 1); err != nil {
		return nil, err
	}

	return asArray(args[0])
}

// arangeFn is arange(stop), arange(start, stop) or arange(start, stop, step)
// over the half-open interval.
func arangeFn(args ...any) (any, error) {
	if err := arity("arange", args, 1, 2, 3); err != nil {
		return nil, err
	}

	f, err := floats("arange", args)
	if err != nil {
		return nil, err
	}

	start, stop, step := 0.0, f[0], 1.0

	switch len(f) {
	case 2:
		start, stop = f[0], f[1]
	case 3:
		start, stop, step = f[0], f[1], f[2]
	}

	if step == 0 {
		return nil, ErrArgument.With(slog.String("func", "arange"), slog.String("step", "0"))
	}

	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, 0, max(n, 0))

	for i := range max(n, 0) {
		out = append(out, start+float64(i)*step)
	}

	return Vector(out...), nil
}

// linspaceFn is linspace(start, stop, num) including both ends.
func linspaceFn(args ...any) (any, error) {
	if err := arity("linspace", args, 3); err != nil {
		return nil, err
	}

	f, err := floats("linspace", args)
	if err != nil {
		return nil, err
	}

	n := int(f[2])
	if n < 1 {
		return Vector(), nil
	}

	if n == 1 {
		return Vector(f[0]), nil
	}

	out := make([]float64, n)
	step := (f[1] - f[0]) / float64(n-1)

	for i := range out {
		out[i] = f[0] + float64(i)*step
	}

	return Vector(out...), nil
}

// zerosFn is zeros(n) or zeros(rows, cols).
func zerosFn(args ...any) (any, error) {
	if err := arity("zeros", args, 1, 2); err != nil {
		return nil, err
	}

	f, err := floats("zeros", args)
	if err != nil {
		return nil, err
	}

	if len(f) == 1 {
		return Vector(make([]float64, max(int(f[0]), 0))...), nil
	}

	rows := make([][]float64, max(int(f[0]), 0))
	for i := range rows {
		rows[i] = make([]float64, max(int(f[1]), 0))
	}

	return Matrix(rows...)
}

func floats(name string, args []any) ([]float64, error) {
	out := make([]float64, len(args))

	for i, a := range args {
		f, ok := toFloat(a)
		if !ok {
			return nil, ErrArgument.With(
				slog.String("func", name),
				slog.Int("arg", i),
				slog.String("type", typeName(a)),
			)
		}

		out[i] = f
	}

	return out, nil
}
