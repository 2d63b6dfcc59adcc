package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/format"
)

// Eval renders a model without output, then evaluates expressions in the
// resulting environment.
type Eval struct {
	Model string   `arg:"" help:"Calculation model, or '-' for a YAML model on stdin." name:"model"`
	Exprs []string `arg:"" help:"Expressions or 'name = expr' statements to evaluate."  name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, s *Settings) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, _, err := s.render(ctx, e.Model, io.Discard)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	for _, src := range e.Exprs {
		line, err := evaluate(env, src)
		if err != nil {
			return ErrEvaluate.Wrap(err).With(slog.String("expr", src))
		}

		fmt.Fprintln(w, line)
	}

	return nil
}

// evaluate runs src in env and returns its printed result. Statements print
// as "name = value".
func evaluate(env *calc.Env, src string) (string, error) {
	src = strings.TrimSpace(src)

	if name, _, ok := calc.SplitStatement(src); ok && calc.IsName(strings.TrimSpace(name)) {
		name, v, err := env.Exec(src)
		if err != nil {
			return "", err
		}

		return name + " = " + format.Repr(v), nil
	}

	v, err := env.Eval(src)
	if err != nil {
		return "", err
	}

	return format.Repr(v), nil
}
