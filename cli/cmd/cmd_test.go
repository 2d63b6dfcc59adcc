package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/render"
)

const goodModel = `
entries:
  - term: {statement: a = 2}
  - term: {statement: b = a * 3}
  - check: {lhs: b, op: ">", rhs: a, ok: ok}
`

const degradedModel = `
entries:
  - term: {statement: a = 2}
  - check: {lhs: undefined_name, op: "<", rhs: a, ok: ok}
  - frobnicate: {x: 1}
`

// testSettings returns the flag defaults of [Settings].
func testSettings() *Settings {
	return &Settings{Locale: "en-US", Width: 70, Decimals: "3,3"}
}

// testContext returns a context carrying a parser whose output is captured.
func testContext(t *testing.T, vars kong.Vars) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var (
		cli         struct{}
		out, errOut bytes.Buffer
	)

	parser, err := kong.New(&cli, kong.Writers(&out, &errOut), vars)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx), &out, &errOut
}

func writeModel(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "beam.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRenderOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		render Render
		want   string
	}{
		{"default", Render{Model: "calc/beam.yaml"}, "calc/beam.rst"},
		{"no extension", Render{Model: "beam"}, "beam.rst"},
		{"explicit", Render{Model: "beam.yaml", Output: "out.rst"}, "out.rst"},
		{"stdin", Render{Model: "-"}, "-"},
		{"stdout", Render{Model: "beam.yaml", Output: "-"}, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.render.output(); got != tt.want {
				t.Errorf("output() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderWritesDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeModel(t, dir, goodModel)
	ctx, _, errOut := testContext(t, nil)

	if err := (&Render{Model: path}).Run(ctx, testSettings()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "beam.rst"))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"a = 2", "b = 6", `\text{- ok}`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("document missing %q:\n%s", want, data)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 2 {
		t.Errorf("directory has %d files, want model and document only", len(entries))
	}

	if !strings.Contains(errOut.String(), "3 entries rendered to") {
		t.Errorf("summary = %q", errOut.String())
	}
}

func TestRenderStdout(t *testing.T) {
	t.Parallel()

	path := writeModel(t, t.TempDir(), goodModel)
	ctx, out, _ := testContext(t, nil)

	if err := (&Render{Model: path, Output: "-"}).Run(ctx, testSettings()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(out.String(), "b = 6") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestRenderMissingResource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx, _, _ := testContext(t, nil)

	err := (&Render{Model: filepath.Join(dir, "absent.yaml")}).Run(ctx, testSettings())
	if !errors.Is(err, ErrMissingResource) {
		t.Errorf("missing model error = %v, want ErrMissingResource", err)
	}

	path := writeModel(t, dir, goodModel)

	err = (&Render{Model: path, Output: filepath.Join(dir, "no", "such", "out.rst")}).
		Run(ctx, testSettings())
	if !errors.Is(err, ErrMissingResource) {
		t.Errorf("missing output directory error = %v, want ErrMissingResource", err)
	}
}

func TestRenderStrict(t *testing.T) {
	t.Parallel()

	path := writeModel(t, t.TempDir(), degradedModel)

	ctx, _, errOut := testContext(t, nil)
	if err := (&Render{Model: path}).Run(ctx, testSettings()); err != nil {
		t.Fatalf("lenient Run() error = %v", err)
	}

	summary := errOut.String()
	for _, want := range []string{"2 degraded", "1 unknown skipped", "entry 1 (check)"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	s := testSettings()
	s.Strict = true

	ctx, _, _ = testContext(t, nil)
	if err := (&Render{Model: path}).Run(ctx, s); !errors.Is(err, ErrDegraded) {
		t.Errorf("strict Run() error = %v, want ErrDegraded", err)
	}
}

func TestSettingsInvalid(t *testing.T) {
	t.Parallel()

	for name, s := range map[string]*Settings{
		"locale":   {Locale: "not a locale!", Decimals: "3,3"},
		"decimals": {Locale: "en-US", Decimals: "x,y"},
	} {
		if _, err := s.renderer(calc.New()); !errors.Is(err, ErrSettings) {
			t.Errorf("%s: renderer() error = %v, want ErrSettings", name, err)
		}
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	env := calc.New()

	tests := []struct {
		src     string
		want    string
		wantErr bool
	}{
		{"a = 2", "a = 2", false},
		{" a * 3 ", "6", false},
		{"a < 1", "False", false},
		{"nope + 1", "", true},
	}

	for _, tt := range tests {
		got, err := evaluate(env, tt.src)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("evaluate(%q) = (%q, %v), want %q", tt.src, got, err, tt.want)
		}
	}
}

func TestEval(t *testing.T) {
	t.Parallel()

	path := writeModel(t, t.TempDir(), goodModel)
	ctx, out, _ := testContext(t, nil)

	e := &Eval{Model: path, Exprs: []string{"b", "c = a + b"}}
	if err := e.Run(ctx, testSettings()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := out.String(), "6\nc = 8\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	e = &Eval{Model: path, Exprs: []string{"nope"}}
	if err := e.Run(ctx, testSettings()); !errors.Is(err, ErrEvaluate) {
		t.Errorf("Run() error = %v, want ErrEvaluate", err)
	}
}

func TestFmtYAML(t *testing.T) {
	t.Parallel()

	path := writeModel(t, t.TempDir(), goodModel)
	ctx, out, _ := testContext(t, nil)

	cmd := &YAML{Dump: Dump{Indent: 2, Model: path}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{"entries:", "statement: a = 2", "lhs: b"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		exists  bool
		force   bool
		wantErr error
	}{
		{"new file", false, false, nil},
		{"existing file", true, false, ErrFileExists},
		{"existing file with force", true, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("old: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var cli struct {
				Settings `embed:""`
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse([]string{"--width", "80"})
			if err != nil {
				t.Fatal(err)
			}

			err = (&Init{Force: tt.force}).Run(WithContext(context.Background(), ktx))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			want := []string{"width: 80", "locale: en-US"}
			if tt.wantErr != nil {
				want = []string{"old: true"}
			}

			for _, w := range want {
				if !strings.Contains(string(data), w) {
					t.Errorf("config missing %q:\n%s", w, data)
				}
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	summarize(&buf, "out.rst", &render.Report{Entries: 3})

	if got := buf.String(); !strings.Contains(got, "3 entries rendered to out.rst") ||
		strings.Contains(got, "degraded") {
		t.Errorf("summarize() = %q", got)
	}
}
