package model

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
)

// Model is an ordered entry collection and its file-operation table.
type Model struct {
	Entries []Entry
	Files   map[string]FileOp
	// Path is the file the model was loaded from, if any.
	Path string
}

// Dir returns the directory containing the model file, or the empty string.
func (m *Model) Dir() string {
	if m.Path == "" {
		return ""
	}

	return filepath.Dir(m.Path)
}

// Format identifies a model encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
	FormatHCL
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatHCL:
		return "hcl"
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "hcl":
		return FormatHCL, nil
	}

	return 0, ErrFormat.With(slog.String("format", s))
}

// Load reads the model file at path, choosing the format by extension.
func Load(ctx context.Context, path string) (*Model, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	m, err := decode(ctx, ra, format, path)
	if err != nil {
		return nil, err
	}

	m.Path = path

	return m, nil
}

// Decode reads a model encoded in format from r.
func Decode(ctx context.Context, r io.Reader, format Format) (*Model, error) {
	return decode(ctx, r, format, "model."+format.String())
}

func decode(ctx context.Context, r io.Reader, format Format, name string) (*Model, error) {
	switch format {
	case FormatYAML, FormatJSON:
		return decodeYAML(ctx, r)
	case FormatHCL:
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		return decodeHCL(src, name)
	}

	return nil, ErrFormat.With(slog.String("format", format.String()))
}

type yamlDocument struct {
	Entries []any               `yaml:"entries"`
	Files   map[string]yamlFile `yaml:"files"`
	License string              `yaml:"license"`
}

type yamlFile struct {
	Option string `yaml:"option"`
	Path   string `yaml:"path"`
	Args   []any  `yaml:"args"`
}

// decodeYAML also reads JSON, which is a subset of YAML.
func decodeYAML(ctx context.Context, r io.Reader) (*Model, error) {
	var doc yamlDocument

	if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil && err != io.EOF {
		return nil, ErrDecode.Wrap(err)
	}

	m := &Model{Files: make(map[string]FileOp, len(doc.Files))}

	for i, v := range doc.Entries {
		e, err := yamlEntry(v)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.Int("entry", i))
		}

		m.Entries = append(m.Entries, e)
	}

	for ref, f := range doc.Files {
		op, err := ParseOption(f.Option)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("file", ref))
		}

		args := make([]string, len(f.Args))
		for i, a := range f.Args {
			args[i] = scalar(a)
		}

		m.Files[ref] = FileOp{Option: op, Path: f.Path, Args: args}
	}

	if doc.License != "" {
		m.Entries = append(m.Entries, &License{Content: doc.License})
	}

	return m, nil
}

// yamlEntry converts a bare kind name or a single-key map.
func yamlEntry(v any) (Entry, error) {
	switch v := v.(type) {
	case string:
		return newEntry(v, fields{})

	case map[string]any:
		if len(v) != 1 {
			return nil, ErrEntry.With(slog.Int("keys", len(v)))
		}

		for tag, val := range v {
			f := fields{}

			switch val := val.(type) {
			case nil:

			case map[string]any:
				for k, x := range val {
					f[k] = scalar(x)
				}

			case []any:
				return nil, ErrEntry.With(slog.String("kind", tag))

			default:
				kind, _ := ParseKind(tag)
				if key, ok := primary[kind]; ok {
					f[key] = scalar(val)
				} else {
					f["value"] = scalar(val)
				}
			}

			return newEntry(tag, f)
		}
	}

	return nil, ErrEntry.With(slog.String("value", fmt.Sprint(v)))
}

func scalar(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	}

	return fmt.Sprint(v)
}

// document is the encoded form of a model.
type document struct {
	Entries []map[string]any  `json:"entries"         yaml:"entries"`
	Files   map[string]FileOp `json:"files,omitempty" yaml:"files,omitempty"`
}

func (m *Model) document() document {
	doc := document{Entries: make([]map[string]any, 0, len(m.Entries))}

	for _, e := range m.Entries {
		if u, ok := e.(*Unknown); ok {
			doc.Entries = append(doc.Entries, map[string]any{u.Tag: u.Fields})

			continue
		}

		doc.Entries = append(doc.Entries, map[string]any{e.Kind().String(): e})
	}

	if len(m.Files) > 0 {
		doc.Files = m.Files
	}

	return doc
}

// Encode writes m to w in format. A positive indent pretty-prints YAML and
// JSON; HCL is always indented.
func (m *Model) Encode(ctx context.Context, w io.Writer, format Format, indent int) error {
	switch format {
	case FormatYAML:
		var opts []yaml.EncodeOption
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		data, err := yaml.MarshalContext(ctx, m.document(), opts...)
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err

	case FormatJSON:
		var (
			data []byte
			err  error
		)

		if indent > 0 {
			data, err = json.MarshalIndent(m.document(), "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(m.document())
		}

		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, string(data))

		return err

	case FormatHCL:
		return m.encodeHCL(ctx, w)
	}

	return ErrFormat.With(slog.String("format", format.String()))
}
