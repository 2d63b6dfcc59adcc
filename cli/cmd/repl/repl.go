// Package repl is an interactive evaluator over the environment of a
// rendered calculation model.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/format"
	"github.com/ardnew/calcrst/log"
)

// editDoneMsg is sent when the model was edited and rendered again.
type editDoneMsg struct{ env *calc.Env }

// editErrorMsg is sent when editing or rendering the edited model failed.
type editErrorMsg struct{ err error }

const prompt = "➜ "

func helpMessage() string {
	return `
Commands:

  :help     Print this help
  :list     List bound names and their values
  :edit     Edit the model in $EDITOR and render it again
  :clear    Clear screen
  :quit     Exit REPL

Usage:
  Type an expression to evaluate it, or "name = expr" to bind a name
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to abandon the current candidate
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// Session is the state a REPL starts from.
type Session struct {
	// Env is the environment expressions evaluate in.
	Env *calc.Env
	// Path is the model file opened by the edit command.
	Path string
	// Reload renders the model again into a new environment.
	Reload func(context.Context) (*calc.Env, error)
	// CacheDir holds the history file.
	CacheDir string
	Logger   log.Logger
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	session      Session
	input        textinput.Model
	env          *calc.Env
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts the REPL over s.Env and blocks until the user quits.
func Run(ctx context.Context, s Session) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s.Logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", s.CacheDir),
		slog.String("model", s.Path),
	)

	history := NewHistory(filepath.Join(s.CacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load history: %v\n", err)
	}

	s.Logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, s, history), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, s Session, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		session:    s,
		input:      ti,
		env:        s.Env,
		logger:     s.Logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil

	case editDoneMsg:
		m.env = msg.env

		return m, tea.Println(resultStyle.Render("✔ model rendered again"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("🗴 error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()
	call := detectFunctionCall(input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render("Type an expression, or :help for commands"))

	case call.inCall:
		if params, ok := signature(m.env, call.name); ok {
			b.WriteString(renderSignatureHint(call.name, params, call.argIndex))
		} else {
			b.WriteString(renderCandidateBar(m.env, m.matches, m.suggIdx, m.tabActive, m.width))
		}

	default:
		b.WriteString(renderCandidateBar(m.env, m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		m.tabActive = false
		m.refreshMatches()

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()
		}

		return m, nil
	}

	var cmd tea.Cmd

	if msg.Type != tea.KeyRunes || msg.String() == " " {
		m.tabActive = false
	}

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the selected candidate by step, starting tab-cycling on the
// first move. A single candidate is completed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord replaces the current word in the input and moves the cursor
// after it.
func (m *model) replaceWord(replacement string) {
	input := m.input.Value()
	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])

	m.wordEnd = m.wordStart + len(replacement)
	m.input.SetCursor(m.wordEnd)
}

// refreshMatches recomputes fuzzy matches for the current input. The matches
// are kept while tab-cycling so the selection stays stable.
func (m *model) refreshMatches() {
	if m.tabActive {
		return
	}

	m.matches, m.wordStart, m.wordEnd = computeMatches(m.env, m.input.Value(), m.input.Position())
	m.suggIdx = -1
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Write(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "repl history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatCommand(input))

	if cmd, ok := strings.CutPrefix(input, commandPrefix); ok {
		return m.executeCommand(echo, strings.TrimSpace(cmd))
	}

	out, err := evaluate(m.env, input)

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// evaluate runs input in env. A statement binds its name and prints as
// "name = value".
func evaluate(env *calc.Env, input string) (string, error) {
	if name, _, ok := calc.SplitStatement(input); ok && calc.IsName(name) {
		name, v, err := env.Exec(input)
		if err != nil {
			return "", err
		}

		return name + " = " + format.Repr(v), nil
	}

	v, err := env.Eval(input)
	if err != nil {
		return "", err
	}

	return format.Repr(v), nil
}

func (m model) executeCommand(echo tea.Cmd, input string) (model, tea.Cmd) {
	name, _, _ := strings.Cut(input, " ")

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(listing(m.env)))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		cmd := &editCommand{
			path:    m.session.Path,
			reload:  m.session.Reload,
			ctxFunc: m.ctxFunc,
			logger:  m.logger,
		}

		return m, tea.Sequence(echo, tea.Exec(cmd, func(err error) tea.Msg {
			if err != nil {
				return editErrorMsg{err: err}
			}

			return editDoneMsg{env: cmd.env}
		}))
	}

	return m, tea.Sequence(echo, tea.Println(
		errorStyle.Render("Unknown command: "+name+" (try :help)"),
	))
}

// listing returns one line per bound name with its value and, when known,
// the statement that defined it.
func listing(env *calc.Env) string {
	var b strings.Builder

	for _, name := range env.Symbols() {
		v, _ := env.Lookup(name)

		fmt.Fprintf(&b, "  %s = %s", name, format.Repr(v))

		if stmt, ok := env.Statement(name); ok {
			b.WriteString(" " + hintStyle.Render("("+stmt+")"))
		}

		b.WriteString("\n")
	}

	return b.String()
}

// historyMove steps through the history by step. Moving past the newest
// entry clears the input.
func (m model) historyMove(step int) model {
	i := m.historyIdx + step
	if i < 0 {
		return m
	}

	m.tabActive = false

	if i >= m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches()

		return m
	}

	line, err := m.history.Line(i)
	if err != nil {
		return m
	}

	m.historyIdx = i
	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.refreshMatches()

	return m
}
