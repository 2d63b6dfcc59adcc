package calc

import (
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/expr-lang/expr/vm"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/calcrst/log"
	"github.com/ardnew/calcrst/unit"
)

// Internal is the prefix of reserved names. They are bound like any other
// name but never listed by [Env.Symbols].
const Internal = "_"

// Env is the evaluation environment: an ordered mapping from names to their
// current values, plus the statements that defined them and the callables
// expressions may invoke.
//
// An Env is not safe for concurrent use.
type Env struct {
	logger log.Logger

	values map[string]any
	order  []string
	stmts  map[string]string
	funcs  map[string]*Func

	gen   uint64
	cache map[cacheKey]*vm.Program
}

// Option configures an [Env].
type Option func(*Env)

// WithLogger sets the logger used to trace compilation and evaluation.
func WithLogger(logger log.Logger) Option {
	return func(e *Env) { e.logger = logger }
}

// WithFuncs defines documented callables in the new environment.
func WithFuncs(fns ...*Func) Option {
	return func(e *Env) {
		for _, fn := range fns {
			e.funcs[fn.Name] = fn
		}
	}
}

// New returns an environment holding only the constants: pi and every unit
// name.
func New(opts ...Option) *Env {
	e := &Env{
		values: constants(),
		stmts:  make(map[string]string),
		funcs:  make(map[string]*Func),
		cache:  make(map[cacheKey]*vm.Program),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Bind sets name to v. A new name, or a value of a different type than the
// current one, invalidates compiled programs.
func (e *Env) Bind(name string, v any) {
	old, exists := e.values[name]

	switch {
	case !exists:
		e.gen++
	case reflect.TypeOf(old) != reflect.TypeOf(v):
		e.gen++
	}

	if !e.Defined(name) {
		e.order = append(e.order, name)
	}

	e.values[name] = v

	e.logger.Trace("bind",
		slog.String("name", name),
		slog.String("type", typeName(v)),
		slog.Uint64("generation", e.gen),
	)
}

// Defined reports whether name was bound in e, as opposed to a constant.
func (e *Env) Defined(name string) bool { return slices.Contains(e.order, name) }

// Lookup returns the current value of name.
func (e *Env) Lookup(name string) (any, bool) {
	v, ok := e.values[name]

	return v, ok
}

// Statement returns the statement that last defined name.
func (e *Env) Statement(name string) (string, bool) {
	s, ok := e.stmts[name]

	return s, ok
}

// Symbols returns the user-bound names in the order they were first bound,
// skipping reserved names.
func (e *Env) Symbols() []string {
	out := make([]string, 0, len(e.order))

	for _, name := range e.order {
		if !strings.HasPrefix(name, Internal) {
			out = append(out, name)
		}
	}

	return out
}

// Names returns every name an expression may reference: bound values,
// constants, units, callables and built-in functions, sorted.
func (e *Env) Names() []string {
	names := slices.Collect(maps.Keys(e.values))
	names = slices.AppendSeq(names, maps.Keys(e.funcs))
	names = append(names, Builtins()...)

	slices.Sort(names)

	return slices.Compact(names)
}

// Suggest returns up to three defined names that fuzzily match name, best
// match first.
func (e *Env) Suggest(name string) []string {
	matches := fuzzy.Find(name, e.Names())

	out := make([]string, 0, 3)
	for _, m := range matches {
		if len(out) == cap(out) {
			break
		}

		out = append(out, m.Str)
	}

	return out
}

// Clone returns an independent copy of e sharing its callables.
func (e *Env) Clone() *Env {
	c := &Env{
		logger: e.logger,
		values: maps.Clone(e.values),
		order:  slices.Clone(e.order),
		stmts:  maps.Clone(e.stmts),
		funcs:  maps.Clone(e.funcs),
		gen:    e.gen,
		cache:  make(map[cacheKey]*vm.Program),
	}

	return c
}

// NumericView returns a scratch copy of e in which every bound quantity is
// replaced by its magnitude in its display unit. e itself is not modified.
func (e *Env) NumericView() *Env {
	v := e.Clone()

	for _, name := range v.order {
		if q, ok := v.values[name].(unit.Quantity); ok {
			v.values[name] = q.AsNumber()
			v.gen++
		}
	}

	return v
}

// Define adds or replaces a documented callable.
func (e *Env) Define(fn *Func) {
	e.funcs[fn.Name] = fn
	e.gen++

	e.logger.Trace("define",
		slog.String("func", fn.Name),
		slog.Any("params", fn.Params),
	)
}

// Func returns the callable named name.
func (e *Env) Func(name string) (*Func, bool) {
	fn, ok := e.funcs[name]

	return fn, ok
}
