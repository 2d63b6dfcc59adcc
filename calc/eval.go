package calc

import (
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"
)

// cacheKey identifies a compiled program: the source text, the environment
// generation it was type-checked against, and the names and types of any
// temporary bindings.
type cacheKey struct {
	source, gen, extra uint64
}

// SplitStatement splits "name = expr" at the first "=" that is not part of
// "==", "!=", "<=" or ">=". ok is false when stmt has no assignment.
func SplitStatement(stmt string) (name, expr string, ok bool) {
	for i := 0; i < len(stmt); i++ {
		if stmt[i] != '=' {
			continue
		}

		if i+1 < len(stmt) && stmt[i+1] == '=' {
			i++

			continue
		}

		if i > 0 && strings.IndexByte("=!<>", stmt[i-1]) >= 0 {
			continue
		}

		return strings.TrimSpace(stmt[:i]), strings.TrimSpace(stmt[i+1:]), true
	}

	return "", strings.TrimSpace(stmt), false
}

// IsName reports whether s is a valid identifier.
func IsName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

// Exec executes stmt. An assignment "name = expr" binds the result and
// records stmt as the defining statement of name; any other statement is
// evaluated and name is empty.
func (e *Env) Exec(stmt string) (name string, v any, err error) {
	name, src, ok := SplitStatement(stmt)
	if !ok {
		v, err = e.Eval(src)

		return "", v, err
	}

	if !IsName(name) {
		return "", nil, ErrStatement.With(
			slog.String("statement", stmt),
			slog.String("name", name),
		)
	}

	v, err = e.Eval(src)
	if err != nil {
		return name, nil, err
	}

	e.Bind(name, v)
	e.stmts[name] = strings.TrimSpace(stmt)

	return name, v, nil
}

// Eval evaluates src against the current bindings.
func (e *Env) Eval(src string) (any, error) {
	return e.run(src, e.values, 0)
}

// EvalWith evaluates src against the current bindings overlaid with
// bindings. The environment is not modified.
func (e *Env) EvalWith(src string, bindings map[string]any) (any, error) {
	if len(bindings) == 0 {
		return e.Eval(src)
	}

	values := maps.Clone(e.values)
	maps.Copy(values, bindings)

	return e.run(src, values, signature(bindings))
}

func (e *Env) run(src string, values map[string]any, extra uint64) (any, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrStatement.With(slog.String("statement", src))
	}

	program, err := e.compile(src, values, extra)
	if err != nil {
		return nil, err
	}

	out, err := vm.Run(program, values)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).With(slog.String("source", src))
	}

	return out, nil
}

func (e *Env) compile(src string, values map[string]any, extra uint64) (*vm.Program, error) {
	key := cacheKey{source: xxh3.HashString(src), gen: e.gen, extra: extra}

	if p, ok := e.cache[key]; ok {
		e.logger.Trace("compile cache hit", slog.String("source", src))

		return p, nil
	}

	program, err := expr.Compile(src, e.options(values)...)
	if err != nil {
		if name, ok := e.undefined(src, values); ok {
			return nil, ErrUndefined.Wrap(err).With(
				slog.String("name", name),
				slog.Any("suggest", e.Suggest(name)),
			)
		}

		return nil, ErrCompile.Wrap(err).With(slog.String("source", src))
	}

	e.cache[key] = program

	e.logger.Trace("compile",
		slog.String("source", src),
		slog.Uint64("generation", e.gen),
	)

	return program, nil
}

func (e *Env) options(values map[string]any) []expr.Option {
	opts := []expr.Option{
		expr.Env(values),
		expr.Patch(operatorPatcher{logger: e.logger}),
		expr.Function(fnBinary, func(args ...any) (any, error) {
			op, _ := args[0].(string)

			return binary(op, args[1], args[2])
		}),
		expr.Function(fnNegate, func(args ...any) (any, error) {
			return negate(args[0])
		}),
		expr.Function(fnIndex, func(args ...any) (any, error) {
			return index(args[0], args[1])
		}),
	}

	for name, fn := range builtins {
		opts = append(opts, expr.Function(name, fn))
	}

	for name, fn := range e.funcs {
		opts = append(opts, expr.Function(name, e.caller(fn)))
	}

	return opts
}

// undefined finds the first identifier in src that names nothing.
func (e *Env) undefined(src string, values map[string]any) (string, bool) {
	tree, err := parser.Parse(src)
	if err != nil {
		return "", false
	}

	c := &identifiers{}
	ast.Walk(&tree.Node, c)

	for _, name := range c.names {
		if _, ok := values[name]; ok {
			continue
		}

		if _, ok := e.funcs[name]; ok {
			continue
		}

		if _, ok := builtins[name]; ok || slices.Contains(c.declared, name) {
			continue
		}

		return name, true
	}

	return "", false
}

// identifiers collects referenced and let-declared names.
type identifiers struct {
	names, declared []string
}

func (c *identifiers) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if !slices.Contains(c.names, n.Value) {
			c.names = append(c.names, n.Value)
		}
	case *ast.VariableDeclaratorNode:
		c.declared = append(c.declared, n.Name)
	}
}

func signature(bindings map[string]any) uint64 {
	var b strings.Builder

	for _, name := range slices.Sorted(maps.Keys(bindings)) {
		b.WriteString(name)
		b.WriteByte(':')

		if t := reflect.TypeOf(bindings[name]); t != nil {
			b.WriteString(t.String())
		}

		b.WriteByte(';')
	}

	return xxh3.HashString(b.String())
}
