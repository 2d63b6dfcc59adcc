package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/format"
	"github.com/ardnew/calcrst/log"
	"github.com/ardnew/calcrst/model"
	"github.com/ardnew/calcrst/pkg"
	"github.com/ardnew/calcrst/render"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the standard output of the parser in ctx.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the standard error of the parser in ctx.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// variable returns the kong variable name, or def when unset.
func variable(ctx context.Context, name, def string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if v, ok := ktx.Model.Vars()[name]; ok && v != "" {
			return v
		}
	}

	return def
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Settings are the render flags shared by every command that renders a
// model.
type Settings struct {
	Locale   string   `default:"en-US" help:"Locale of digit grouping (BCP 47)."`
	Width    int      `default:"70"    help:"Width of section rules."`
	Decimals string   `default:"3,3"   help:"Decimal spec of entries that give none."`
	Path     []string `                help:"Extra directories searched by file operations." type:"path"`
	Strict   bool     `                help:"Fail when any entry rendered with diagnostics."`
}

// renderer returns a renderer over env configured by s.
func (s *Settings) renderer(env *calc.Env) (*render.Renderer, error) {
	tag, err := format.ParseLocale(s.Locale)
	if err != nil {
		return nil, ErrSettings.Wrap(err).With(slog.String("locale", s.Locale))
	}

	d, err := format.ParseDecimals(s.Decimals)
	if err != nil {
		return nil, ErrSettings.Wrap(err).With(slog.String("decimals", s.Decimals))
	}

	logger := log.Default()

	return render.New(env,
		render.WithLogger(logger),
		render.WithFormatter(format.New(format.WithLocale(tag), format.WithLogger(logger))),
		render.WithSearchPath(s.Path...),
		render.WithWidth(s.Width),
		render.WithDecimals(d),
	), nil
}

// render loads the model at path and renders it to w in a new environment.
func (s *Settings) render(ctx context.Context, path string, w io.Writer) (*calc.Env, *render.Report, error) {
	m, err := load(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	r, err := s.renderer(calc.New(calc.WithLogger(log.Default())))
	if err != nil {
		return nil, nil, err
	}

	report, err := r.Render(ctx, m, w)
	if err != nil {
		return nil, report, ErrWriteOutput.Wrap(err)
	}

	return r.Env(), report, nil
}

// load reads the model at path, or a YAML model from stdin.
func load(ctx context.Context, path string) (*model.Model, error) {
	if path == stdinSource {
		return model.Decode(ctx, os.Stdin, model.FormatYAML)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, ErrMissingResource.Wrap(err).With(slog.String("model", path))
	}

	return model.Load(ctx, path)
}

// writeAtomic writes the output of fn to path through a temporary file in
// the same directory, so the document appears complete or not at all.
func writeAtomic(path string, fn func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ErrMissingResource.With(slog.String("dir", dir))
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = fn(f); err != nil {
		_ = f.Close()

		return err
	}

	if err = f.Chmod(0o644); err != nil {
		_ = f.Close()

		return ErrWriteOutput.Wrap(err)
	}

	if err = f.Close(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if err = os.Rename(f.Name(), path); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// cacheDir returns the runtime cache directory.
func cacheDir(ctx context.Context) string {
	return variable(ctx, CacheIdentifier, pkg.CacheDir())
}
