package unit

import (
	"strconv"
	"strings"
)

// Dim is a dimension vector of integer exponents over the SI base quantities
// length, mass, time, electric current and temperature.
type Dim [5]int8

var baseSymbol = [len(Dim{})]string{"m", "kg", "s", "A", "K"}

// IsZero reports whether d is dimensionless.
func (d Dim) IsZero() bool { return d == Dim{} }

func (d Dim) add(e Dim) (r Dim) {
	for i := range d {
		r[i] = d[i] + e[i]
	}

	return r
}

func (d Dim) sub(e Dim) (r Dim) {
	for i := range d {
		r[i] = d[i] - e[i]
	}

	return r
}

// scale multiplies every exponent by num/den, failing when the result is not
// integral.
func (d Dim) scale(num, den int) (r Dim, ok bool) {
	for i := range d {
		p := int(d[i]) * num
		if p%den != 0 {
			return Dim{}, false
		}

		r[i] = int8(p / den)
	}

	return r, true
}

func (d Dim) String() string {
	var b strings.Builder

	for i, p := range d {
		if p == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('*')
		}

		b.WriteString(baseSymbol[i])

		if p != 1 {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(int(p)))
		}
	}

	if b.Len() == 0 {
		return "1"
	}

	return b.String()
}
