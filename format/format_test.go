package format

import (
	"errors"
	"testing"

	"golang.org/x/text/language"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/unit"
)

func TestParseDecimals(t *testing.T) {
	tests := []struct {
		in   string
		want Decimals
		err  bool
	}{
		{"", DefaultDecimals, false},
		{"2,4", Decimals{2, 4}, false},
		{" 1 , 0 ", Decimals{1, 0}, false},
		{"2", Decimals{2, 2}, false},
		{"x,3", DefaultDecimals, true},
		{"2,", DefaultDecimals, true},
		{"-1,2", DefaultDecimals, true},
	}

	for _, tt := range tests {
		got, err := ParseDecimals(tt.in)
		if got != tt.want || (err != nil) != tt.err {
			t.Errorf("ParseDecimals(%q) = %v, %v", tt.in, got, err)
		}

		if tt.err && !errors.Is(err, ErrDecimals) {
			t.Errorf("ParseDecimals(%q) error = %v, want ErrDecimals", tt.in, err)
		}
	}
}

func TestParseDecimalsResetsPrecision(t *testing.T) {
	unit.SetPrecision(7)
	defer unit.ResetPrecision()

	if _, err := ParseDecimals("bad"); err == nil {
		t.Fatal("expected error")
	}

	if unit.Precision() != unit.DefaultPrecision {
		t.Errorf("Precision() = %d, want %d", unit.Precision(), unit.DefaultPrecision)
	}
}

func TestNumber(t *testing.T) {
	f := New()

	if got := f.Number(12345.678, 2); got != "12,345.68" {
		t.Errorf("Number = %q", got)
	}

	if got := f.Number(0.5, 0); got != "0" && got != "1" {
		t.Errorf("Number(0.5, 0) = %q", got)
	}

	if got := f.Int(1234567); got != "1,234,567" {
		t.Errorf("Int = %q", got)
	}

	if f.Locale() != language.AmericanEnglish {
		t.Errorf("Locale() = %v", f.Locale())
	}
}

func TestQuantity(t *testing.T) {
	f := New()
	q := unit.MustLookup("m").Scale(12.3456)

	got, err := f.Quantity(q, 1, "")
	if err != nil || got != "12.3 m" {
		t.Errorf("Quantity = %q, %v", got, err)
	}

	got, err = f.Quantity(q, 0, "mm")
	if err != nil || got != "12,346 mm" {
		t.Errorf("Quantity(mm) = %q, %v", got, err)
	}

	if _, err := f.Quantity(q, 1, "kip"); !errors.Is(err, unit.ErrDimension) {
		t.Errorf("Quantity(kip) error = %v", err)
	}
}

func TestValue(t *testing.T) {
	f := New()

	tests := []struct {
		name string
		v    any
		want string
	}{
		{"float", 1234.5, "1,234.500"},
		{"int", 12000, "12,000"},
		{"quantity", unit.MustLookup("kip").Scale(2), "2.000 kip"},
		{"vector", calc.Vector(1, 2), ". [1.000 2.000]"},
		{"list", []any{[]any{1, 2}, []any{3, 4}}, ". [[1, 2],\n.  [3, 4]]"},
		{"flag", true, "flag = True"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Value(tt.name, tt.v, 3); got != tt.want {
				t.Errorf("Value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueIsIdempotent(t *testing.T) {
	f := New()
	q := unit.MustLookup("kN").Scale(3.14159)

	if a, b := f.Value("q", q, 2), f.Value("q", q, 2); a != b {
		t.Errorf("repeated Value differs: %q, %q", a, b)
	}
}

func TestMark(t *testing.T) {
	m, _ := calc.Matrix([]float64{1, 2}, []float64{3, 4})

	if got := Mark(m.Format(0), false); got != ". [[1 2]\n.  [3 4]]" {
		t.Errorf("Mark(2-D) = %q", got)
	}
}

func TestRepr(t *testing.T) {
	tests := map[string]any{
		"None":        nil,
		"2.0":         2.0,
		"0.25":        0.25,
		"[1, 2.5, x]": []any{1, 2.5, "x"},
		"False":       false,
	}

	for want, v := range tests {
		if got := Repr(v); got != want {
			t.Errorf("Repr(%v) = %q, want %q", v, got, want)
		}
	}
}
