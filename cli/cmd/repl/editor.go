package repl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It opens the model file in the
// user's editor and renders the edited model into a new environment.
type editCommand struct {
	path    string
	reload  func(context.Context) (*calc.Env, error)
	ctxFunc func() context.Context
	logger  log.Logger
	env     *calc.Env
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run edits the model and reloads it. The environment is replaced only when
// the edited model renders.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	if c.path == "" || c.reload == nil {
		return ErrNoModel
	}

	if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, c.path); err != nil {
		return err
	}

	env, err := c.reload(ctx)

	c.logger.TraceContext(ctx, "editor reload",
		slog.String("path", c.path),
		slog.Bool("success", err == nil),
	)

	if err != nil {
		return err
	}

	c.env = env

	return nil
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
