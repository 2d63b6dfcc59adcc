package unit

import (
	"iter"
	"maps"
	"math"
	"slices"
)

// def is a named unit: its display symbol, SI scale factor and dimension.
type def struct {
	symbol string
	scale  float64
	dim    Dim
}

var (
	length   = Dim{1, 0, 0, 0, 0}
	mass     = Dim{0, 1, 0, 0, 0}
	duration = Dim{0, 0, 1, 0, 0}
	force    = Dim{1, 1, -2, 0, 0}
	stress   = Dim{-1, 1, -2, 0, 0}
)

const (
	newton   = 1.0
	poundF   = 4.4482216152605
	inchM    = 0.0254
	footM    = 0.3048
	psiPa    = poundF / (inchM * inchM)
	psfPa    = poundF / (footM * footM)
	degToRad = math.Pi / 180
)

// registry maps identifier names to units. The identifier for inches is
// "inch" because "in" is an operator in expressions; it still displays as
// "in".
var registry = map[string]def{
	"m":    {"m", 1, length},
	"mm":   {"mm", 1e-3, length},
	"cm":   {"cm", 1e-2, length},
	"km":   {"km", 1e3, length},
	"inch": {"in", inchM, length},
	"ft":   {"ft", footM, length},
	"yd":   {"yd", 0.9144, length},
	"mi":   {"mi", 1609.344, length},

	"N":   {"N", newton, force},
	"kN":  {"kN", 1e3, force},
	"MN":  {"MN", 1e6, force},
	"lbf": {"lbf", poundF, force},
	"kip": {"kip", 1e3 * poundF, force},

	"kg":    {"kg", 1, mass},
	"g":     {"g", 1e-3, mass},
	"tonne": {"tonne", 1e3, mass},

	"Pa":  {"Pa", 1, stress},
	"kPa": {"kPa", 1e3, stress},
	"MPa": {"MPa", 1e6, stress},
	"GPa": {"GPa", 1e9, stress},
	"psi": {"psi", psiPa, stress},
	"ksi": {"ksi", 1e3 * psiPa, stress},
	"psf": {"psf", psfPa, stress},

	"s":      {"s", 1, duration},
	"minute": {"min", 60, duration},
	"hr":     {"hr", 3600, duration},

	"rad": {"rad", 1, Dim{}},
	"deg": {"deg", degToRad, Dim{}},
}

// Lookup returns the quantity of magnitude one in the named unit.
func Lookup(name string) (Quantity, error) {
	d, ok := registry[name]
	if !ok {
		return Quantity{}, ErrUnknownUnit.Wrap(errorString(name))
	}

	return d.quantity(), nil
}

// MustLookup is like [Lookup] but panics on unknown names.
func MustLookup(name string) Quantity {
	q, err := Lookup(name)
	if err != nil {
		panic(err)
	}

	return q
}

// Names returns the registered unit identifiers in sorted order.
func Names() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(registry)))
}

// bySymbol finds a unit by its display symbol or identifier.
func bySymbol(s string) (def, bool) {
	if d, ok := registry[s]; ok {
		return d, true
	}

	for _, d := range registry {
		if d.symbol == s {
			return d, true
		}
	}

	return def{}, false
}

func (d def) quantity() Quantity {
	return Quantity{
		si:   d.scale,
		dim:  d.dim,
		disp: display{{symbol: d.symbol, scale: d.scale, dim: d.dim, pow: 1}},
	}
}

type errorString string

func (e errorString) Error() string { return string(e) }
