package render

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/format"
	"github.com/ardnew/calcrst/log"
	"github.com/ardnew/calcrst/model"
	"github.com/ardnew/calcrst/pkg"
	"github.com/ardnew/calcrst/unit"
)

// DefaultWidth is the width of section rules.
const DefaultWidth = 70

// endMarker closes every document.
const endMarker = "**[end of calc]**"

// pageBreak is a text entry requesting a new page.
const pageBreak = "#page"

// Renderer renders models against one evaluation environment.
type Renderer struct {
	env      *calc.Env
	numbers  *format.Formatter
	logger   log.Logger
	search   []string
	width    int
	decimals format.Decimals
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithFormatter sets the number formatter.
func WithFormatter(f *format.Formatter) Option {
	return func(r *Renderer) { r.numbers = f }
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithSearchPath adds directories searched for the files of file operations,
// after the directory of the model itself.
func WithSearchPath(dirs ...string) Option {
	return func(r *Renderer) { r.search = append(r.search, dirs...) }
}

// WithWidth sets the width of section rules.
func WithWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.width = n
		}
	}
}

// WithDecimals sets the decimal spec of entries that do not give one.
func WithDecimals(d format.Decimals) Option {
	return func(r *Renderer) { r.decimals = d }
}

// New returns a renderer evaluating in env. A nil env is replaced by a new
// empty environment.
func New(env *calc.Env, opts ...Option) *Renderer {
	r := &Renderer{
		env:      env,
		width:    DefaultWidth,
		decimals: format.DefaultDecimals,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.env == nil {
		r.env = calc.New(calc.WithLogger(r.logger))
	}

	if r.numbers == nil {
		r.numbers = format.New(format.WithLogger(r.logger))
	}

	return r
}

// Env returns the evaluation environment.
func (r *Renderer) Env() *calc.Env { return r.env }

// session is the state of one render.
type session struct {
	*Renderer

	ctx    context.Context
	model  *model.Model
	out    *sink
	layout layout
	report *Report
	search []string

	index int
	kind  model.Kind
}

// Render writes the document for m to w. Entries are rendered in order; the
// license entries follow, then the end marker. The returned error is non-nil
// only when writing to w failed. The ambient quantity precision is restored
// before returning.
func (r *Renderer) Render(ctx context.Context, m *model.Model, w io.Writer) (*Report, error) {
	defer unit.SetPrecision(unit.Precision())

	s := &session{
		Renderer: r,
		ctx:      ctx,
		model:    m,
		out:      newSink(w),
		report:   &Report{},
		search:   pkg.SearchPath(append([]string{m.Dir()}, r.search...)...),
	}

	r.logger.DebugContext(ctx, "render",
		slog.String("model", m.Path),
		slog.Int("entries", len(m.Entries)),
		slog.Any("search", s.search),
	)

	var license []*model.License

	for i, e := range m.Entries {
		s.index, s.kind = i, e.Kind()

		switch e := e.(type) {
		case *model.Unknown:
			s.report.Skipped++
			r.logger.DebugContext(ctx, "skip entry",
				slog.Int("entry", i),
				slog.String("tag", e.Tag),
			)

			continue

		case *model.License:
			license = append(license, e)

			continue
		}

		s.report.Entries++
		s.entry(e)
	}

	s.index, s.kind = -1, model.KindLicense

	for _, e := range license {
		s.text(e.Content)
	}

	s.blank()
	s.text(endMarker)

	if err := s.out.close(); err != nil {
		return s.report, err
	}

	r.logger.DebugContext(ctx, "rendered",
		slog.Int("entries", s.report.Entries),
		slog.Int("skipped", s.report.Skipped),
		slog.Int("diagnostics", len(s.report.Diagnostics)),
	)

	return s.report, nil
}

// entry renders one entry of known kind.
func (s *session) entry(e model.Entry) {
	closed, opens := s.layout.enter(e.Kind())
	if closed {
		s.out.line("")
	}

	if t, ok := e.(*model.Text); ok && strings.TrimSpace(t.Content) == pageBreak {
		s.raw(`\newpage`)
	}

	s.logger.TraceContext(s.ctx, "render entry",
		slog.Int("entry", s.index),
		slog.String("kind", e.Kind().String()),
	)

	switch e := e.(type) {
	case *model.Section:
		s.section(e)
	case *model.Symbolic:
		s.symbolic(e)
	case *model.Term:
		s.term(e, opens)
	case *model.Check:
		s.check(e)
	case *model.Array:
		s.array(e)
	case *model.Function:
		s.function(e)
	case *model.Equation:
		s.equation(e)
	case *model.Text:
		s.text(e.Content)
	case *model.Blank:
		if s.layout.blank() {
			s.blank()
		}
	case *model.File:
		s.file(e)
	}

	s.layout.leave(e.Kind())
}

// diag records a recovered failure of the current entry.
func (s *session) diag(class Class, err error) {
	d := Diagnostic{Index: s.index, Kind: s.kind, Class: class, Err: err}
	s.report.Diagnostics = append(s.report.Diagnostics, d)
	s.logger.WarnContext(s.ctx, "entry degraded", slog.Any("diagnostic", d))
}

// decimals parses spec, falling back to the renderer default when empty,
// and sets the ambient quantity precision to the equation precision.
func (s *session) decimals(spec string) format.Decimals {
	d := s.Renderer.decimals

	if strings.TrimSpace(spec) != "" {
		var err error
		if d, err = format.ParseDecimals(spec); err != nil {
			s.diag(ClassDecimals, err)
		}
	}

	unit.SetPrecision(d.Eq)

	return d
}
