package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	for _, entry := range []string{"a = 1", "b = a * 2", "  ", "a = 1", "a = 1"} {
		if err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q): %v", entry, err)
		}
	}

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	for i, want := range []string{"b = a * 2", "a = 1"} {
		if got, err := h.Line(i); err != nil || got != want {
			t.Errorf("Line(%d) = (%q, %v), want %q", i, got, err, want)
		}
	}

	if _, err := h.Line(2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Line(2) error = %v, want ErrOutOfBounds", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "b = a * 2\na = 1\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if reloaded.Len() != 2 {
		t.Errorf("reloaded Len() = %d, want 2", reloaded.Len())
	}
}
