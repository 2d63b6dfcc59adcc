package model

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleYAML = `
entries:
  - section: {left: "1.1", right: Loads}
  - term:
      statement: w = 2.5 * kip / ft
      ref: "[1] dead load"
  - equation:
      statement: M = w * L**2 / 8
      ref: midspan moment
      decimals: "2,2"
      print: 2
  - check: {lhs: M, op: "<", rhs: Mn, ok: ok}
  - text: see appendix
  - blank
  - file: {ref: "1"}
  - frobnicate: {x: 1}
files:
  "1": {option: r, path: data.csv, args: [d, ",", 1]}
license: public domain
`

const sampleHCL = `
license = "public domain"

entry "section" {
  left  = "1.1"
  right = "Loads"
}

entry "term" {
  statement = "w = 2.5 * kip / ft"
  ref       = "[1] dead load"
}

entry "equation" {
  statement = "M = w * L**2 / 8"
  ref       = "midspan moment"
  decimals  = "2,2"
  print     = 2
}

entry "check" {
  lhs = "M"
  op  = "<"
  rhs = "Mn"
  ok  = "ok"
}

entry "text" {
  content = "see appendix"
}

entry "blank" {}

entry "file" {
  ref = "1"
}

entry "frobnicate" {
  x = 1
}

file "1" {
  option = "read"
  path   = "data.csv"
  args   = ["d", ",", "1"]
}
`

func sampleEntries() []Entry {
	return []Entry{
		&Section{Left: "1.1", Right: "Loads"},
		&Term{Statement: "w = 2.5 * kip / ft", Expr: "2.5 * kip / ft", Ref: "[1] dead load"},
		&Equation{
			Statement: "M = w * L**2 / 8",
			Expr:      "w * L**2 / 8",
			Ref:       "midspan moment",
			Decimals:  "2,2",
			Print:     PrintSymbolic,
		},
		&Check{Lhs: "M", Op: "<", Rhs: "Mn", OK: "ok"},
		&Text{Content: "see appendix"},
		&Blank{},
		&File{Ref: "1"},
		&Unknown{Tag: "frobnicate", Fields: fields{"x": "1"}},
		&License{Content: "public domain"},
	}
}

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		format Format
		src    string
	}{
		{FormatYAML, sampleYAML},
		{FormatHCL, sampleHCL},
	} {
		t.Run(tc.format.String(), func(t *testing.T) {
			m, err := Decode(context.Background(), strings.NewReader(tc.src), tc.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}

			want := sampleEntries()
			if len(m.Entries) != len(want) {
				t.Fatalf("entries = %d, want %d", len(m.Entries), len(want))
			}

			for i := range want {
				if !reflect.DeepEqual(m.Entries[i], want[i]) {
					t.Errorf("entry %d = %#v, want %#v", i, m.Entries[i], want[i])
				}
			}

			op := m.Files["1"]
			if op.Option != OptionRead || op.Path != "data.csv" || op.Arg(1) != "," || op.Arg(2) != "1" {
				t.Errorf("file op = %+v", op)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	src, err := Decode(context.Background(), strings.NewReader(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []Format{FormatYAML, FormatJSON, FormatHCL} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := src.Encode(context.Background(), &buf, f, 2); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			got, err := Decode(context.Background(), &buf, f)
			if err != nil {
				t.Fatalf("Decode: %v\n%s", err, buf.String())
			}

			if !reflect.DeepEqual(got.Entries, src.Entries) {
				t.Errorf("entries differ after %s round trip:\n%s", f, buf.String())
			}

			if !reflect.DeepEqual(got.Files, src.Files) {
				t.Errorf("files = %v, want %v", got.Files, src.Files)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beam.yaml")

	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.Dir() != dir {
		t.Errorf("Dir = %q, want %q", m.Dir(), dir)
	}

	if _, err := Load(context.Background(), filepath.Join(dir, "beam.txt")); !errors.Is(err, ErrFormat) {
		t.Errorf("Load(.txt) err = %v, want ErrFormat", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	for name, src := range map[string]string{
		"two keys":  "entries:\n  - {text: a, blank: b}\n",
		"bad print": "entries:\n  - equation: {statement: x = 1, print: 7}\n",
		"no name":   "entries:\n  - equation: {statement: 1 + 2}\n",
		"bad check": "entries:\n  - check: {lhs: a}\n",
		"bad file":  "files:\n  a: {option: z, path: p}\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(context.Background(), strings.NewReader(src), FormatYAML)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("err = %v, want ErrDecode", err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"equation", KindEquation, true},
		{"[e]", KindEquation, true},
		{"[~]", KindBlank, true},
		{"license", KindLicense, true},
		{"unknown", KindUnknown, false},
		{"bogus", KindUnknown, false},
	} {
		got, ok := ParseKind(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseKind(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseOption(t *testing.T) {
	for in, want := range map[string]Option{
		"s": OptionScript, "script": OptionScript, "T": OptionText,
		"figure": OptionFigure, "r": OptionRead, "edit": OptionEdit,
	} {
		if got, err := ParseOption(in); err != nil || got != want {
			t.Errorf("ParseOption(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseOption("x"); !errors.Is(err, ErrOption) {
		t.Errorf("ParseOption(x) err = %v, want ErrOption", err)
	}
}

func TestPrintMode(t *testing.T) {
	if m, err := ParsePrintMode(""); err != nil || m != DefaultPrintMode {
		t.Errorf("ParsePrintMode(\"\") = %v, %v", m, err)
	}

	if m, err := ParsePrintMode(" 1 "); err != nil || m != PrintResult {
		t.Errorf("ParsePrintMode(1) = %v, %v", m, err)
	}
}
