package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/calcrst/calc"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"", 0, "", 0, 0},
		{"alpha", 5, "alpha", 0, 5},
		{"alpha", 2, "alpha", 0, 5},
		{"a + bet", 7, "bet", 4, 7},
		{"a+bet", 5, "bet", 2, 5},
		{"x = sq", 6, "sq", 4, 6},
		{"sqrt(ar", 7, "ar", 5, 7},
		{"f(a, b)", 6, "b", 5, 6},
		{"a^b", 3, "b", 2, 3},
		{"a-b", 1, "a", 0, 1},
		{":li", 3, "li", 1, 3},
		{"a + ", 4, "", 4, 4},
		{"abc", 99, "abc", 0, 3},
	}

	for _, tt := range tests {
		word, start, end := wordBounds(tt.input, tt.cursor)
		if word != tt.word || start != tt.start || end != tt.end {
			t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
				tt.input, tt.cursor, word, start, end, tt.word, tt.start, tt.end)
		}
	}
}

func TestCandidates(t *testing.T) {
	env := calc.New()
	env.Bind("span", 2.5)

	if got := candidates(env, ":he"); !slices.Equal(got, commands) {
		t.Errorf("candidates(:he) = %v, want %v", got, commands)
	}

	got := candidates(env, "sp")
	for _, want := range []string{"span", "sqrt", "pi"} {
		if !slices.Contains(got, want) {
			t.Errorf("candidates(sp) missing %q", want)
		}
	}
}

func TestComputeMatches(t *testing.T) {
	env := calc.New()
	env.Bind("span_length", 2.5)

	matches, start, end := computeMatches(env, "2 * span_l", 10)
	if start != 4 || end != 10 {
		t.Errorf("bounds = (%d, %d), want (4, 10)", start, end)
	}

	if len(matches) == 0 || matches[0].Str != "span_length" {
		t.Errorf("best match = %v, want span_length", matches)
	}

	if matches, _, _ := computeMatches(env, "2 * ", 4); matches != nil {
		t.Errorf("empty word matched %v", matches)
	}

	matches, _, _ = computeMatches(env, ":qu", 3)
	if len(matches) != 1 || matches[0].Str != "quit" {
		t.Errorf("command matches = %v, want [quit]", matches)
	}
}

func TestIsFunction(t *testing.T) {
	env := calc.New()
	env.Bind("x", 1.0)
	env.Define(&calc.Func{Name: "area", Params: []string{"b", "h"}, Body: "b * h"})

	for name, want := range map[string]bool{
		"area": true,
		"sqrt": true,
		"x":    false,
		"pi":   false,
	} {
		if got := isFunction(env, name); got != want {
			t.Errorf("isFunction(%q) = %v, want %v", name, got, want)
		}
	}
}
