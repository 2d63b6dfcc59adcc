package repl

import (
	"strings"
	"testing"

	"github.com/ardnew/calcrst/calc"
)

func TestEvaluate(t *testing.T) {
	env := calc.New()

	got, err := evaluate(env, "a = 2.5")
	if err != nil || got != "a = 2.5" {
		t.Fatalf("evaluate(a = 2.5) = (%q, %v)", got, err)
	}

	got, err = evaluate(env, "a * 2")
	if err != nil || got != "5.0" {
		t.Errorf("evaluate(a * 2) = (%q, %v), want 5.0", got, err)
	}

	got, err = evaluate(env, "a > 1")
	if err != nil || got != "True" {
		t.Errorf("evaluate(a > 1) = (%q, %v), want True", got, err)
	}

	if _, err := evaluate(env, "undefined_name + 1"); err == nil {
		t.Error("evaluate(undefined_name + 1) succeeded")
	}

	if _, ok := env.Lookup("a"); !ok {
		t.Error("a not bound after evaluate")
	}
}

func TestListing(t *testing.T) {
	env := calc.New()

	for _, stmt := range []string{"b = 3.0", "a = b * 2"} {
		if _, err := evaluate(env, stmt); err != nil {
			t.Fatal(err)
		}
	}

	lines := strings.Split(strings.TrimRight(listing(env), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("listing() has %d lines, want 2", len(lines))
	}

	if !strings.HasPrefix(lines[0], "  b = 3.0") || !strings.HasPrefix(lines[1], "  a = 6.0") {
		t.Errorf("listing() = %q", lines)
	}
}
