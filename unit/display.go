package unit

import (
	"math"
	"strconv"
	"strings"
)

// factor is one unit symbol raised to an integer power within a display unit.
type factor struct {
	symbol string
	scale  float64
	dim    Dim
	pow    int
}

// display is the unit a quantity is written in, as a product of factors in
// order of first appearance.
type display []factor

func (d display) scale() float64 {
	s := 1.0
	for _, f := range d {
		s *= math.Pow(f.scale, float64(f.pow))
	}

	return s
}

// mul merges e into d, adding the powers of equal symbols and dropping
// factors whose power cancels.
func (d display) mul(e display, sign int) display {
	out := make(display, len(d), len(d)+len(e))
	copy(out, d)

	for _, f := range e {
		f.pow *= sign

		i := indexSymbol(out, f.symbol)
		if i < 0 {
			out = append(out, f)

			continue
		}

		out[i].pow += f.pow
	}

	kept := out[:0]

	for _, f := range out {
		if f.pow != 0 {
			kept = append(kept, f)
		}
	}

	if len(kept) == 0 {
		return nil
	}

	return kept
}

func (d display) pow(num, den int) (display, bool) {
	out := make(display, len(d))

	for i, f := range d {
		p := f.pow * num
		if p%den != 0 {
			return nil, false
		}

		f.pow = p / den
		out[i] = f
	}

	return out, true
}

func indexSymbol(d display, symbol string) int {
	for i, f := range d {
		if f.symbol == symbol {
			return i
		}
	}

	return -1
}

// baseDisplay writes dimension dim in SI base units.
func baseDisplay(dim Dim) display {
	var d display

	for i, p := range dim {
		if p == 0 {
			continue
		}

		var unit Dim
		unit[i] = 1

		d = append(d, factor{symbol: baseSymbol[i], scale: 1, dim: unit, pow: int(p)})
	}

	return d
}

// String renders numerator factors joined by "*", then denominator factors
// after "/", parenthesized when there are several: "kip*ft", "kip/in^2",
// "N/(m*s)", "1/s".
func (d display) String() string {
	var num, den []string

	for _, f := range d {
		switch {
		case f.pow > 0:
			num = append(num, power(f.symbol, f.pow))
		case f.pow < 0:
			den = append(den, power(f.symbol, -f.pow))
		}
	}

	if len(num) == 0 && len(den) == 0 {
		return ""
	}

	s := strings.Join(num, "*")
	if s == "" {
		s = "1"
	}

	switch len(den) {
	case 0:
		return s
	case 1:
		return s + "/" + den[0]
	default:
		return s + "/(" + strings.Join(den, "*") + ")"
	}
}

func power(symbol string, p int) string {
	if p == 1 {
		return symbol
	}

	return symbol + "^" + strconv.Itoa(p)
}
