package render

import (
	"bufio"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/readahead"
	"github.com/mattn/go-runewidth"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/model"
	"github.com/ardnew/calcrst/pkg"
)

// preview is the number of leading and trailing rows shown of read data.
const preview = 4

func (s *session) file(e *model.File) {
	op, ok := s.model.Files[strings.TrimSpace(e.Ref)]
	if !ok {
		s.diag(ClassFile, ErrFileRef.With(slog.String("ref", e.Ref)))

		return
	}

	path, found := pkg.Resolve(strings.TrimSpace(op.Path), s.search)

	s.logger.DebugContext(s.ctx, "file operation",
		slog.String("option", string(op.Option)),
		slog.String("path", path),
		slog.Bool("found", found),
	)

	switch op.Option {
	case model.OptionScript:
		s.script(path)
	case model.OptionText:
		s.insert(path, op.Arg(0))
	case model.OptionFigure:
		if !found {
			s.diag(ClassFile, ErrFileOp.With(slog.String("path", path)))
		}

		s.figure(path, op.Arg(0), op.Arg(1))
	case model.OptionRead:
		s.read(path, op)
	case model.OptionEdit:
		s.edit(op)
	}
}

// script executes the statements of a script file in the environment.
func (s *session) script(path string) {
	f, err := os.Open(path)
	if err != nil {
		s.diag(ClassFile, ErrFileOp.Wrap(err))

		return
	}
	defer f.Close()

	if err := s.env.ExecScript(f); err != nil {
		s.diag(ClassEvaluate, err)

		return
	}

	s.logger.InfoContext(s.ctx, "script executed", slog.String("path", path))
}

// lines reads every line of the file at path.
func lines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	var out []string

	scanner := bufio.NewScanner(ra)
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}

	return out, scanner.Err()
}

// insert writes lines of a text file, optionally sliced, as a literal block.
func (s *session) insert(path, span string) {
	text, err := lines(path)
	if err != nil {
		s.diag(ClassFile, ErrFileOp.Wrap(err))

		return
	}

	if span != "" {
		if text, err = slice(text, span); err != nil {
			s.diag(ClassFile, err)

			return
		}
	}

	for i, l := range text {
		text[i] = "  " + l
	}

	s.literal(text...)
}

// slice selects lines with a "start:stop:step" expression as used for
// sequence indexing: omitted bounds default to the ends, negative bounds
// count from the end, and a single index selects one line.
func slice(lines []string, span string) ([]string, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(span), "[]"), ":")
	if len(parts) > 3 {
		return nil, ErrSlice.With(slog.String("range", span))
	}

	n := len(lines)

	num := func(s string, def int) (int, error) {
		if s = strings.TrimSpace(s); s == "" {
			return def, nil
		}

		return strconv.Atoi(s)
	}

	if len(parts) == 1 {
		i, err := num(parts[0], 0)
		if err != nil {
			return nil, ErrSlice.Wrap(err).With(slog.String("range", span))
		}

		if i < 0 {
			i += n
		}

		if i < 0 || i >= n {
			return nil, ErrSlice.With(slog.String("range", span), slog.Int("lines", n))
		}

		return lines[i : i+1], nil
	}

	step := 1
	if len(parts) == 3 {
		var err error
		if step, err = num(parts[2], 1); err != nil || step == 0 {
			return nil, ErrSlice.With(slog.String("range", span))
		}
	}

	lo, hi := 0, n
	if step < 0 {
		lo, hi = n-1, -n-1
	}

	start, err := num(parts[0], lo)
	if err != nil {
		return nil, ErrSlice.Wrap(err).With(slog.String("range", span))
	}

	stop, err := num(parts[1], hi)
	if err != nil {
		return nil, ErrSlice.Wrap(err).With(slog.String("range", span))
	}

	bound := func(i int) int {
		if i < 0 {
			i += n
		}

		if step > 0 {
			return min(max(i, 0), n)
		}

		return min(max(i, -1), n-1)
	}

	start, stop = bound(start), bound(stop)

	var out []string

	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		out = append(out, lines[i])
	}

	return out, nil
}

// figure writes a centered figure directive.
func (s *session) figure(path, caption, width string) {
	s.out.line("", ".. figure:: "+path)

	if width != "" {
		s.out.line("   :width: " + width + " %")
	}

	s.out.line("   :align: center", "")

	if caption != "" {
		s.out.line("   "+caption, "")
	}
}

// read binds delimited numeric data to a name and previews it.
func (s *session) read(path string, op model.FileOp) {
	name := op.Arg(0)

	s.heading(name + " | read data")
	s.out.line("")

	if !calc.IsName(name) {
		s.diag(ClassFile, ErrFileOp.With(slog.String("name", name)))

		return
	}

	skip := 0

	if arg := op.Arg(2); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			s.diag(ClassFile, ErrFileOp.With(slog.String("skip", arg)))
		} else {
			skip = n
		}
	}

	f, err := os.Open(path)
	if err != nil {
		s.diag(ClassFile, ErrFileOp.Wrap(err))

		return
	}
	defer f.Close()

	data, err := calc.ReadData(f, op.Arg(1), skip)
	if err != nil {
		s.diag(ClassFile, err)

		return
	}

	s.env.Bind(name, data)

	s.out.line("", "file: "+strings.TrimSpace(op.Path), "")
	s.out.line(data.Slice(0, preview).String() + " ... " + data.Slice(-preview, data.Len()).String())
	s.out.line("")
	s.raw(`\hrulefill`)
	s.raw(`\vspace{2mm}`)
}

// edit lists line replacements given as "line|text" arguments.
func (s *session) edit(op model.FileOp) {
	path := strings.TrimSpace(op.Path)

	s.heading(path + " | edit file")
	s.out.line("")
	s.raw(`\hrulefill`)
	s.raw(`\vspace{2mm}`)

	out := []string{
		"  file: " + path,
		"  [line #]" + strings.Repeat(" ", 7) + "[replacement line]",
	}

	for _, item := range op.Args {
		line, text, ok := strings.Cut(item, "|")
		if !ok {
			s.diag(ClassFile, ErrEdit.With(slog.String("edit", item)))

			continue
		}

		out = append(out, runewidth.FillRight("     "+strings.TrimSpace(line), 10)+strings.TrimSpace(text))
	}

	s.literal(out...)
}
