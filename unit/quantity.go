package unit

import (
	"cmp"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// DefaultPrecision is the ambient number of decimals used by
// [Quantity.String].
const DefaultPrecision = 3

var precision atomic.Int32

func init() { precision.Store(DefaultPrecision) }

// SetPrecision sets the ambient display precision. Negative values are
// treated as zero.
func SetPrecision(n int) { precision.Store(int32(max(n, 0))) }

// Precision returns the ambient display precision.
func Precision() int { return int(precision.Load()) }

// ResetPrecision restores [DefaultPrecision].
func ResetPrecision() { SetPrecision(DefaultPrecision) }

// Quantity is a magnitude with a physical dimension.
//
// The zero value is the unitless number zero.
type Quantity struct {
	si   float64
	dim  Dim
	disp display
}

// Scalar returns the unitless quantity v.
func Scalar(v float64) Quantity { return Quantity{si: v} }

// Value returns the magnitude in SI base units.
func (q Quantity) Value() float64 { return q.si }

// Dim returns the dimension vector.
func (q Quantity) Dim() Dim { return q.dim }

// Unitless reports whether q has no display unit.
func (q Quantity) Unitless() bool { return len(q.disp) == 0 }

// AsNumber returns the magnitude expressed in the display unit.
func (q Quantity) AsNumber() float64 { return q.si / q.disp.scale() }

// StrUnit returns the display unit, or "" for a unitless quantity.
func (q Quantity) StrUnit() string { return q.disp.String() }

// String formats the magnitude at the ambient precision followed by the unit.
func (q Quantity) String() string {
	s := strconv.FormatFloat(q.AsNumber(), 'f', Precision(), 64)
	if u := q.StrUnit(); u != "" {
		s += " " + u
	}

	return s
}

// LogValue implements [slog.LogValuer].
func (q Quantity) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("value", q.AsNumber()),
		slog.String("unit", q.StrUnit()),
	)
}

// AsUnit converts q to the display unit of target.
func (q Quantity) AsUnit(target Quantity) (Quantity, error) {
	if q.dim != target.dim {
		return Quantity{}, q.mismatch(target)
	}

	return Quantity{si: q.si, dim: q.dim, disp: target.disp}, nil
}

// Add returns q+r in the display unit of q (or of r when q is unitless).
func (q Quantity) Add(r Quantity) (Quantity, error) {
	if q.dim != r.dim {
		return Quantity{}, q.mismatch(r)
	}

	return Quantity{si: q.si + r.si, dim: q.dim, disp: q.pick(r)}, nil
}

// Sub returns q-r in the display unit of q (or of r when q is unitless).
func (q Quantity) Sub(r Quantity) (Quantity, error) {
	return q.Add(r.Neg())
}

// Mul returns q*r. A product whose dimensions cancel is unitless.
func (q Quantity) Mul(r Quantity) Quantity { return q.combine(r, 1) }

// Div returns q/r. A quotient whose dimensions cancel is unitless.
func (q Quantity) Div(r Quantity) Quantity { return q.combine(r, -1) }

// Scale multiplies the magnitude by k.
func (q Quantity) Scale(k float64) Quantity {
	q.si *= k

	return q
}

// Neg returns -q.
func (q Quantity) Neg() Quantity { return q.Scale(-1) }

// Pow raises q to the power e. Dimensioned quantities accept integer
// exponents and fractional ones that leave every dimension exponent
// integral, such as the square root of an area.
func (q Quantity) Pow(e float64) (Quantity, error) {
	if q.dim.IsZero() {
		return Quantity{si: math.Pow(q.si, e), disp: powOrNil(q.disp, e)}, nil
	}

	num, den, ok := rational(e)
	if !ok {
		return Quantity{}, ErrExponent.Wrap(errorString(strconv.FormatFloat(e, 'g', -1, 64)))
	}

	dim, ok := q.dim.scale(num, den)
	if !ok {
		return Quantity{}, ErrExponent.Wrap(errorString(
			q.StrUnit() + "^" + strconv.FormatFloat(e, 'g', -1, 64)))
	}

	disp, ok := q.disp.pow(num, den)
	if !ok {
		disp = baseDisplay(dim)
	}

	return Quantity{si: math.Pow(q.si, e), dim: dim, disp: disp}, nil
}

// tolerance is the relative difference below which two magnitudes compare
// equal. Conversion through SI scale factors is not exact.
const tolerance = 1e-9

// Compare returns -1, 0 or +1 ordering q against r. Magnitudes within a
// relative [tolerance] of each other are equal.
func (q Quantity) Compare(r Quantity) (int, error) {
	if q.dim != r.dim {
		return 0, q.mismatch(r)
	}

	if math.Abs(q.si-r.si) <= tolerance*max(math.Abs(q.si), math.Abs(r.si)) {
		return 0, nil
	}

	return cmp.Compare(q.si, r.si), nil
}

func (q Quantity) combine(r Quantity, sign int) Quantity {
	out := Quantity{disp: q.disp.mul(r.disp, sign)}

	if sign > 0 {
		out.si, out.dim = q.si*r.si, q.dim.add(r.dim)
	} else {
		out.si, out.dim = q.si/r.si, q.dim.sub(r.dim)
	}

	if out.dim.IsZero() && !(q.dim.IsZero() && r.dim.IsZero()) {
		out.disp = nil
	}

	return out
}

func (q Quantity) pick(r Quantity) display {
	if len(q.disp) > 0 {
		return q.disp
	}

	return r.disp
}

func (q Quantity) mismatch(r Quantity) error {
	return ErrDimension.With(
		slog.String("left", q.dim.String()),
		slog.String("right", r.dim.String()),
	)
}

func powOrNil(d display, e float64) display {
	num, den, ok := rational(e)
	if !ok {
		return nil
	}

	p, ok := d.pow(num, den)
	if !ok {
		return nil
	}

	return p
}

// rational expresses e as num/den with den in 1..4.
func rational(e float64) (num, den int, ok bool) {
	for den = 1; den <= 4; den++ {
		n := e * float64(den)
		if r := math.Round(n); math.Abs(n-r) < 1e-9 {
			return int(r), den, true
		}
	}

	return 0, 0, false
}

// Parse reads a unit expression such as "kip*ft", "kip/in^2" or "N/(m*s)"
// and returns the quantity of magnitude one in that unit. Both identifiers
// ("inch") and display symbols ("in") are accepted.
func Parse(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "1" {
		return Scalar(1), nil
	}

	q := Scalar(1)
	sign, group := 1, 0

	for tok := range tokens(s) {
		switch tok {
		case "*":
			if group == 0 {
				sign = 1
			}
		case "/":
			sign = -1
		case "(":
			group++
		case ")":
			group--
			if group == 0 {
				sign = 1
			}
		default:
			f, err := parseFactor(tok)
			if err != nil {
				return Quantity{}, err
			}

			q = q.combine(f, sign)
		}
	}

	return q, nil
}

func parseFactor(tok string) (Quantity, error) {
	symbol, exp, _ := strings.Cut(tok, "^")
	if symbol == "1" {
		return Scalar(1), nil
	}

	d, ok := bySymbol(symbol)
	if !ok {
		return Quantity{}, ErrUnknownUnit.Wrap(errorString(symbol))
	}

	q := d.quantity()
	if exp == "" {
		return q, nil
	}

	e, err := strconv.ParseFloat(exp, 64)
	if err != nil {
		return Quantity{}, ErrExponent.Wrap(err)
	}

	return q.Pow(e)
}

func tokens(s string) func(func(string) bool) {
	return func(yield func(string) bool) {
		start := -1

		for i, r := range s {
			if strings.ContainsRune("*/() ", r) {
				if start >= 0 && !yield(s[start:i]) {
					return
				}

				start = -1

				if r != ' ' && !yield(string(r)) {
					return
				}

				continue
			}

			if start < 0 {
				start = i
			}
		}

		if start >= 0 {
			yield(s[start:])
		}
	}
}
