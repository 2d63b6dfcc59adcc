package profile

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/prof"), WithQuiet(true))

	if want := (Profiler{Mode: "cpu", Path: "/tmp/prof", Quiet: true}); p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestStartDisabled(t *testing.T) {
	for _, mode := range []string{"", "no-such-mode"} {
		p := New(WithMode(mode), WithPath(t.TempDir())).Start()
		if _, ok := p.(ignore); !ok {
			t.Errorf("Start() with mode %q = %T, want no-op", mode, p)
		}

		p.Stop()
	}
}

func TestModesSorted(t *testing.T) {
	if m := Modes(); !slices.IsSorted(m) {
		t.Errorf("Modes() = %v, not sorted", m)
	}
}
