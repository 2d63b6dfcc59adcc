package cmd

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ardnew/calcrst/log"
	"github.com/ardnew/calcrst/render"
)

// Render renders a calculation model to a reStructuredText document.
type Render struct {
	Model  string `arg:"" help:"Calculation model (YAML, JSON or HCL), or '-' for a YAML model on stdin." name:"model"`
	Output string `      help:"Output document, or '-' for stdout (default: model path with .rst)."        short:"o" placeholder:"OUT"`
}

// output returns the path of the output document.
func (r *Render) output() string {
	switch {
	case r.Output != "":
		return r.Output
	case r.Model == stdinSource:
		return stdinSource
	}

	return strings.TrimSuffix(r.Model, filepath.Ext(r.Model)) + ".rst"
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context, s *Settings) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out := r.output()

	var report *render.Report

	write := func(w io.Writer) error {
		var err error

		_, report, err = s.render(ctx, r.Model, w)

		return err
	}

	if out == stdinSource {
		err = write(stdout(ctx))
	} else {
		err = writeAtomic(out, write)
	}

	if err != nil {
		return err
	}

	log.InfoContext(ctx, "rendered",
		slog.String("model", r.Model),
		slog.String("output", out),
		slog.Int("diagnostics", len(report.Diagnostics)),
	)

	summarize(stderr(ctx), out, report)

	if s.Strict && !report.OK() {
		return ErrDegraded.With(slog.Int("diagnostics", len(report.Diagnostics)))
	}

	return nil
}
