package unit

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b)) }

func TestLookup(t *testing.T) {
	q, err := Lookup("inch")
	if err != nil {
		t.Fatalf("Lookup(inch): %v", err)
	}

	if q.StrUnit() != "in" {
		t.Errorf("StrUnit() = %q, want in", q.StrUnit())
	}

	if !near(q.Value(), 0.0254) {
		t.Errorf("Value() = %v, want 0.0254", q.Value())
	}

	if _, err := Lookup("furlong"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("Lookup(furlong) error = %v, want ErrUnknownUnit", err)
	}

	if !slices.Contains(slices.Collect(Names()), "kip") {
		t.Error("Names() does not contain kip")
	}
}

func TestProductKeepsDisplayUnits(t *testing.T) {
	m := MustLookup("kip").Scale(3).Mul(MustLookup("ft").Scale(4))

	if got := m.StrUnit(); got != "kip*ft" {
		t.Errorf("StrUnit() = %q, want kip*ft", got)
	}

	if !near(m.AsNumber(), 12) {
		t.Errorf("AsNumber() = %v, want 12", m.AsNumber())
	}

	stress := MustLookup("kip").Scale(10).Div(MustLookup("inch").Mul(MustLookup("inch")))
	if got := stress.StrUnit(); got != "kip/in^2" {
		t.Errorf("StrUnit() = %q, want kip/in^2", got)
	}

	ksi, err := stress.AsUnit(MustLookup("ksi"))
	if err != nil {
		t.Fatalf("AsUnit(ksi): %v", err)
	}

	if !near(ksi.AsNumber(), 10) {
		t.Errorf("AsNumber() = %v, want 10", ksi.AsNumber())
	}
}

func TestCancellingDimensionsAreUnitless(t *testing.T) {
	r := MustLookup("mm").Scale(500).Div(MustLookup("m"))

	if !r.Unitless() || r.StrUnit() != "" {
		t.Errorf("ratio has unit %q", r.StrUnit())
	}

	if !near(r.AsNumber(), 0.5) {
		t.Errorf("AsNumber() = %v, want 0.5", r.AsNumber())
	}

	a := MustLookup("deg").Scale(30)
	if a.StrUnit() != "deg" {
		t.Errorf("angle StrUnit() = %q, want deg", a.StrUnit())
	}

	if !near(a.Value(), math.Pi/6) {
		t.Errorf("angle Value() = %v, want pi/6", a.Value())
	}
}

func TestAddSub(t *testing.T) {
	a := MustLookup("ft").Scale(1)
	b := MustLookup("inch").Scale(6)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if sum.StrUnit() != "ft" || !near(sum.AsNumber(), 1.5) {
		t.Errorf("Add = %v", sum)
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}

	if !near(diff.AsNumber(), 0.5) {
		t.Errorf("Sub = %v", diff)
	}

	if _, err := a.Add(MustLookup("kip")); !errors.Is(err, ErrDimension) {
		t.Errorf("Add(kip) error = %v, want ErrDimension", err)
	}
}

func TestPow(t *testing.T) {
	area := MustLookup("inch").Scale(4).Mul(MustLookup("inch").Scale(4))

	side, err := area.Pow(0.5)
	if err != nil {
		t.Fatalf("Pow(0.5): %v", err)
	}

	if side.StrUnit() != "in" || !near(side.AsNumber(), 4) {
		t.Errorf("Pow(0.5) = %v", side)
	}

	if _, err := MustLookup("m").Pow(0.5); !errors.Is(err, ErrExponent) {
		t.Errorf("sqrt(m) error = %v, want ErrExponent", err)
	}

	cube, err := MustLookup("ft").Scale(2).Pow(3)
	if err != nil {
		t.Fatalf("Pow(3): %v", err)
	}

	if cube.StrUnit() != "ft^3" || !near(cube.AsNumber(), 8) {
		t.Errorf("Pow(3) = %v", cube)
	}
}

func TestCompare(t *testing.T) {
	c, err := MustLookup("ft").Scale(1).Compare(MustLookup("inch").Scale(12))
	if err != nil || c != 0 {
		t.Errorf("1 ft vs 12 in = %d, %v", c, err)
	}

	c, err = MustLookup("inch").Scale(12).Compare(MustLookup("ft"))
	if err != nil || c != 0 {
		t.Errorf("12 in vs 1 ft = %d, %v", c, err)
	}

	c, err = MustLookup("m").Scale(1).Compare(MustLookup("m").Scale(1 + 1e-6))
	if err != nil || c != -1 {
		t.Errorf("1 m vs 1.000001 m = %d, %v", c, err)
	}

	c, err = Scalar(0).Compare(Scalar(0))
	if err != nil || c != 0 {
		t.Errorf("0 vs 0 = %d, %v", c, err)
	}

	c, err = MustLookup("kN").Compare(MustLookup("kip"))
	if err != nil || c != -1 {
		t.Errorf("1 kN vs 1 kip = %d, %v", c, err)
	}

	if _, err := MustLookup("kN").Compare(MustLookup("m")); !errors.Is(err, ErrDimension) {
		t.Errorf("kN vs m error = %v", err)
	}
}

func TestStringPrecision(t *testing.T) {
	defer ResetPrecision()

	q := MustLookup("m").Scale(12.3456)
	if got := q.String(); got != "12.346 m" {
		t.Errorf("String() = %q", got)
	}

	SetPrecision(1)

	if got := q.String(); got != "12.3 m" {
		t.Errorf("String() at 1 = %q", got)
	}

	if Precision() != 1 {
		t.Errorf("Precision() = %d", Precision())
	}

	ResetPrecision()

	if Precision() != DefaultPrecision {
		t.Errorf("Precision() after reset = %d", Precision())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in, unit string
		scale    float64
	}{
		{"kip*ft", "kip*ft", 4448.2216152605 * 0.3048},
		{"kip/in^2", "kip/in^2", 4448.2216152605 / (0.0254 * 0.0254)},
		{"N/(m*s)", "N/(m*s)", 1},
		{"inch", "in", 0.0254},
		{"", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			if q.StrUnit() != tt.unit {
				t.Errorf("StrUnit() = %q, want %q", q.StrUnit(), tt.unit)
			}

			if !near(q.Value(), tt.scale) {
				t.Errorf("Value() = %v, want %v", q.Value(), tt.scale)
			}
		})
	}

	if _, err := Parse("kip*parsec"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("Parse(parsec) error = %v", err)
	}
}
