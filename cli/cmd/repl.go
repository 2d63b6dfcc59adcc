package cmd

import (
	"context"
	"io"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/cli/cmd/repl"
	"github.com/ardnew/calcrst/log"
)

// Repl renders a model without output and starts an interactive evaluator
// over the resulting environment.
type Repl struct {
	Model string `arg:"" help:"Calculation model file." name:"model" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, s *Settings) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	reload := func(ctx context.Context) (*calc.Env, error) {
		env, _, err := s.render(ctx, r.Model, io.Discard)

		return env, err
	}

	env, err := reload(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, repl.Session{
		Env:      env,
		Path:     r.Model,
		Reload:   reload,
		CacheDir: cacheDir(ctx),
		Logger:   log.Default(),
	})
}
