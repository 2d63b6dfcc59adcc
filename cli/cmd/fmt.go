package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/calcrst/model"
)

// Fmt decodes a model and writes it back in the chosen format.
type Fmt struct {
	YAML YAML `cmd:"" default:"withargs" help:"Format as YAML (default)."`
	JSON JSON `cmd:""                    help:"Format as JSON."`
	HCL  HCL  `cmd:""                    help:"Format as HCL."`
}

// Dump holds the arguments shared by the fmt subcommands.
type Dump struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Model string `arg:"" default:"-" help:"Calculation model, or '-' for a YAML model on stdin." name:"model"`
}

func (d *Dump) run(ctx context.Context, f model.Format) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := load(ctx, d.Model)
	if err != nil {
		return err
	}

	if err := m.Encode(ctx, stdout(ctx), f, d.Indent); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", f.String()))
	}

	return nil
}

// YAML writes a model as YAML.
type YAML struct {
	Dump `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error { return y.run(ctx, model.FormatYAML) }

// JSON writes a model as JSON.
type JSON struct {
	Dump `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error { return j.run(ctx, model.FormatJSON) }

// HCL writes a model as HCL.
type HCL struct {
	Dump `embed:""`
}

// Run executes the hcl command.
func (h *HCL) Run(ctx context.Context) error { return h.run(ctx, model.FormatHCL) }
