package model

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

type hclDocument struct {
	Entries []*hclEntry `hcl:"entry,block"`
	Files   []*hclFile  `hcl:"file,block"`
	License string      `hcl:"license,optional"`
}

type hclEntry struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

type hclFile struct {
	Ref    string   `hcl:"ref,label"`
	Option string   `hcl:"option"`
	Path   string   `hcl:"path"`
	Args   []string `hcl:"args,optional"`
}

func decodeHCL(src []byte, name string) (*Model, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, ErrDecode.Wrap(diags)
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, ErrDecode.Wrap(diags)
	}

	m := &Model{Files: make(map[string]FileOp, len(doc.Files))}

	for i, b := range doc.Entries {
		attrs, diags := b.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, ErrDecode.Wrap(diags).With(slog.Int("entry", i))
		}

		f := make(fields, len(attrs))

		for k, attr := range attrs {
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, ErrDecode.Wrap(diags).With(slog.Int("entry", i), slog.String("attr", k))
			}

			s, err := ctyString(v)
			if err != nil {
				return nil, ErrDecode.Wrap(err).With(slog.Int("entry", i), slog.String("attr", k))
			}

			f[k] = s
		}

		e, err := newEntry(b.Kind, f)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.Int("entry", i))
		}

		m.Entries = append(m.Entries, e)
	}

	for _, b := range doc.Files {
		op, err := ParseOption(b.Option)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("file", b.Ref))
		}

		m.Files[b.Ref] = FileOp{Option: op, Path: b.Path, Args: b.Args}
	}

	if doc.License != "" {
		m.Entries = append(m.Entries, &License{Content: doc.License})
	}

	return m, nil
}

// ctyString converts a primitive attribute value.
func ctyString(v cty.Value) (string, error) {
	if !v.IsKnown() || v.IsNull() {
		return "", nil
	}

	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case cty.Bool:
		return strconv.FormatBool(v.True()), nil
	}

	return "", ErrEntry.With(slog.String("type", v.Type().FriendlyName()))
}

func (m *Model) encodeHCL(ctx context.Context, w io.Writer) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, e := range m.Entries {
		if i > 0 {
			body.AppendNewline()
		}

		if u, ok := e.(*Unknown); ok {
			block := body.AppendNewBlock("entry", []string{u.Tag}).Body()
			for _, k := range slices.Sorted(maps.Keys(u.Fields)) {
				block.SetAttributeValue(k, cty.StringVal(u.Fields[k]))
			}

			continue
		}

		attrs, err := ordered(ctx, e)
		if err != nil {
			return err
		}

		block := body.AppendNewBlock("entry", []string{e.Kind().String()}).Body()
		for _, item := range attrs {
			block.SetAttributeValue(fmt.Sprint(item.Key), ctyValue(item.Value))
		}
	}

	for _, ref := range slices.Sorted(maps.Keys(m.Files)) {
		op := m.Files[ref]

		body.AppendNewline()

		block := body.AppendNewBlock("file", []string{ref}).Body()
		block.SetAttributeValue("option", cty.StringVal(string(op.Option)))
		block.SetAttributeValue("path", cty.StringVal(op.Path))

		if len(op.Args) > 0 {
			args := make([]cty.Value, len(op.Args))
			for i, a := range op.Args {
				args[i] = cty.StringVal(a)
			}

			block.SetAttributeValue("args", cty.ListVal(args))
		}
	}

	_, err := w.Write(f.Bytes())

	return err
}

// ordered returns the encoded fields of e in declaration order.
func ordered(ctx context.Context, e Entry) (yaml.MapSlice, error) {
	data, err := yaml.MarshalContext(ctx, e)
	if err != nil {
		return nil, err
	}

	var ms yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &ms, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}

	return ms, nil
}

func ctyValue(v any) cty.Value {
	switch v := v.(type) {
	case string:
		return cty.StringVal(v)
	case bool:
		return cty.BoolVal(v)
	case int:
		return cty.NumberIntVal(int64(v))
	case int64:
		return cty.NumberIntVal(v)
	case uint64:
		return cty.NumberUIntVal(v)
	case float64:
		return cty.NumberFloatVal(v)
	}

	return cty.StringVal(fmt.Sprint(v))
}
