package latex

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestSymbol(t *testing.T) {
	tests := map[string]string{
		"x":         "x",
		"alpha":     `\alpha`,
		"f_c":       "f_{c}",
		"sigma_max": `\sigma_{max}`,
		"E__s":      "E^{s}",
		"a_b_c":     "a_{b c}",
		"x1":        "x_{1}",
		"Omega":     `\Omega`,
	}

	for in, want := range tests {
		if got := Symbol(in); got != want {
			t.Errorf("Symbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRewrite(t *testing.T) {
	tests := map[string]string{
		"f_c":   "f_{c}",
		"E__s":  "E__{s}",
		"plain": "plain",
		"a_b_c": "a_b_c",
	}

	for in, want := range tests {
		if got := Rewrite(in); got != want {
			t.Errorf("Rewrite(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLaTeX(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"a + b*c", `a + b \cdot c`},
		{"(a + b)*c", `\left(a + b\right) \cdot c`},
		{"M/S", `\frac{M}{S}`},
		{"w*L**2/8", `\frac{w \cdot L^{2}}{8}`},
		{"(a + b)**2", `\left(a + b\right)^{2}`},
		{"sqrt(f_c)", `\sqrt{f_{c}}`},
		{"a - (b - c)", `a - \left(b - c\right)`},
		{"-x", "- x"},
		{"sin(theta)", `\sin{\left(\theta\right)}`},
		{"0.85*f_c", `0.85 \cdot f_{c}`},
	}

	for _, tt := range tests {
		e, err := Parse(tt.src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.src, err)
		}

		if got := e.LaTeX(); got != tt.want {
			t.Errorf("LaTeX(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}

	e := MustParse("a*b")
	if got := e.LaTeX(WithMulSymbol(`\times`)); got != `a \times b` {
		t.Errorf("WithMulSymbol = %q", got)
	}
}

func TestRelation(t *testing.T) {
	e, err := Relation("M_u", "<=", "phi*M_n")
	if err != nil {
		t.Fatal(err)
	}

	if got := e.LaTeX(); got != `M_{u} \leq \phi \cdot M_{n}` {
		t.Errorf("LaTeX() = %q", got)
	}

	eq, err := Relation("a", "=", "b")
	if err != nil {
		t.Fatal(err)
	}

	if got := eq.LaTeX(); got != "a = b" {
		t.Errorf("equality = %q", got)
	}
}

func TestFreeSymbols(t *testing.T) {
	e := MustParse("b*h**2/6 + sqrt(b) + b")

	if got := e.FreeSymbols(); !slices.Equal(got, []string{"b", "h"}) {
		t.Errorf("FreeSymbols() = %v", got)
	}
}

func TestSubstitute(t *testing.T) {
	e := MustParse("P*L__eff/4")

	values := map[string]string{"P": "12.000", "L__eff": "20.000"}
	s := Substitute(e, func(name string) (string, bool) {
		v, ok := values[name]

		return v, ok
	})

	if s.Symbolic != `\frac{P \cdot L^{eff}}{4}` {
		t.Errorf("Symbolic = %q", s.Symbolic)
	}

	if s.Substituted != `\frac{{12.000} \cdot {20.000}}{4}` {
		t.Errorf("Substituted = %q", s.Substituted)
	}

	if strings.Contains(s.Substituted, "_{") {
		t.Errorf("residual subscript in %q", s.Substituted)
	}

	want := []Pair{
		{Name: "P", Rewritten: "P", Value: "12.000", Resolved: true},
		{Name: "L__eff", Rewritten: "L__{eff}", Value: "20.000", Resolved: true},
	}
	if !slices.Equal(s.Map, want) {
		t.Errorf("Map = %v", s.Map)
	}

	partial := Substitute(MustParse("f_c + x"), func(name string) (string, bool) {
		return "2.0", name == "x"
	})

	if partial.Substituted != "f_{c} + {2.0}" {
		t.Errorf("partial Substituted = %q", partial.Substituted)
	}

	if !slices.Equal(partial.Unresolved, []string{"f_c"}) {
		t.Errorf("Unresolved = %v", partial.Unresolved)
	}

	upright := func(name string) string {
		if name == "kN" {
			return `\mathrm{kN}`
		}

		return Symbol(name)
	}

	kept := Substitute(MustParse("3*kN*d"), func(name string) (string, bool) {
		return "2", name == "d"
	}, WithSymbols(upright))

	if kept.Symbolic != `3 \cdot \mathrm{kN} \cdot d` {
		t.Errorf("Symbolic with symbols option = %q", kept.Symbolic)
	}

	if kept.Substituted != `3 \cdot \mathrm{kN} \cdot {2}` {
		t.Errorf("Substituted with symbols option = %q", kept.Substituted)
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse("a + * b"); !errors.Is(err, ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
}
