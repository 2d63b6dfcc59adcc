package pkg

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "calcrst" {
		t.Errorf("Expected Name to be %q, got %q", "calcrst", Name)
	}

	if PathEnv() != "CALCRST_PATH" {
		t.Errorf("PathEnv() = %q, want %q", PathEnv(), "CALCRST_PATH")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version() != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version())
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Error("Expected Author to contain ardnew")
	}
}

func TestError(t *testing.T) {
	sentinel := NewError("render failed")
	cause := errors.New("disk full")

	derived := sentinel.Wrap(cause).With(slog.String("file", "out.rst"))

	if !errors.Is(derived, sentinel) {
		t.Error("derived error should match its sentinel")
	}

	if !errors.Is(derived, cause) {
		t.Error("derived error should match its cause")
	}

	if errors.Is(derived, NewError("render failed")) {
		t.Error("derived error matched an unrelated sentinel")
	}

	if got, want := derived.Error(), "render failed: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if n := len(sentinel.Attrs()); n != 0 {
		t.Errorf("With mutated the sentinel: %d attrs", n)
	}

	group := derived.LogValue().Group()
	if len(group) != 3 || group[2].Key != "file" {
		t.Errorf("LogValue() = %v", group)
	}

	if WrapError(derived) != derived {
		t.Error("WrapError should return an existing *Error unchanged")
	}

	if got := WrapError(cause).Error(); got != "disk full" {
		t.Errorf("WrapError(cause).Error() = %q", got)
	}
}

func TestSearchPathAndResolve(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "scripts")

	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(sub, "beam.calc"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(PathEnv(), sub)

	search := SearchPath(dir, filepath.Join(dir, "missing"))
	if !slices.Contains(search, dir) || !slices.Contains(search, sub) {
		t.Fatalf("SearchPath() = %v, want both %q and %q", search, dir, sub)
	}

	if slices.Contains(search, filepath.Join(dir, "missing")) {
		t.Errorf("SearchPath() kept a missing directory: %v", search)
	}

	got, ok := Resolve("beam.calc", search)
	if !ok || got != filepath.Join(sub, "beam.calc") {
		t.Errorf("Resolve() = %q, %v", got, ok)
	}

	if _, ok := Resolve("nope.calc", search); ok {
		t.Error("Resolve() found a file that does not exist")
	}
}
