package cli

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolveFlatten(t *testing.T) {
	t.Parallel()

	r, err := resolve(strings.NewReader(`
log:
  level: debug
  pretty: false
locale: de-DE
width: 80
log_caller: true
path: [lib, data]
ratio: 1.5
`))
	if err != nil {
		t.Fatal(err)
	}

	cfg, ok := r.(config)
	if !ok {
		t.Fatalf("resolve() = %T, want config", r)
	}

	want := config{
		"log-level":  "debug",
		"log-pretty": false,
		"locale":     "de-DE",
		"width":      "80",
		"log-caller": true,
		"path":       "lib,data",
		"ratio":      "1.5",
	}

	for key, v := range want {
		if got, ok := cfg[key]; !ok || got != v {
			t.Errorf("config[%q] = %#v, want %#v", key, got, v)
		}
	}

	if len(cfg) != len(want) {
		t.Errorf("config has %d keys, want %d", len(cfg), len(want))
	}
}

func TestResolveEmpty(t *testing.T) {
	t.Parallel()

	r, err := resolve(strings.NewReader("  \n"))
	if err != nil {
		t.Fatal(err)
	}

	v, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "width"}})
	if v != nil || err != nil {
		t.Errorf("Resolve() = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestResolveInvalid(t *testing.T) {
	t.Parallel()

	_, err := resolve(strings.NewReader("width: [80\n"))
	if !errors.Is(err, ErrConfig) {
		t.Errorf("resolve() error = %v, want ErrConfig", err)
	}
}

func TestResolveConfiguration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	content := "width: 90\nlocale: fr-FR\npath: [a, b]\nstrict: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var cli struct {
		Width  int    `default:"70"`
		Locale string `default:"en-US"`
		Path   []string
		Strict bool
	}

	parser, err := kong.New(&cli, kong.Configuration(resolve, path))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--locale", "en-GB"}); err != nil {
		t.Fatal(err)
	}

	if cli.Width != 90 {
		t.Errorf("Width = %d, want 90", cli.Width)
	}

	if cli.Locale != "en-GB" {
		t.Errorf("Locale = %q, want command-line value en-GB", cli.Locale)
	}

	if !slices.Equal(cli.Path, []string{"a", "b"}) {
		t.Errorf("Path = %v, want [a b]", cli.Path)
	}

	if !cli.Strict {
		t.Error("Strict = false, want true")
	}
}
