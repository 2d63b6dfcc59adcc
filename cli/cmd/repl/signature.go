package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/calcrst/calc"
)

// builtinSignatures lists the parameters of the built-in functions.
var builtinSignatures = map[string][]string{
	"sqrt":     {"x"},
	"sin":      {"x"},
	"cos":      {"x"},
	"tan":      {"x"},
	"asin":     {"x"},
	"acos":     {"x"},
	"atan":     {"x"},
	"exp":      {"x"},
	"ln":       {"x"},
	"log10":    {"x"},
	"atan2":    {"y", "x"},
	"array":    {"values"},
	"arange":   {"start", "stop", "step"},
	"linspace": {"start", "stop", "n"},
	"zeros":    {"n"},
}

// signatureHintStyle styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string
	argIndex int  // current argument index (0-based)
	inCall   bool // true if cursor is inside parameter list
}

// detectFunctionCall analyzes the input to determine if the cursor is inside
// a function call's parameter list.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	depth := 0
	open := -1

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	arg := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

// signature returns the parameters of the callable name in env, preferring
// documented callables over built-in functions.
func signature(env *calc.Env, name string) (params []string, ok bool) {
	if fn, found := env.Func(name); found {
		return fn.Params, true
	}

	params, ok = builtinSignatures[name]

	return params, ok
}

// renderSignatureHint renders "name(a, b)" with the parameter at index arg
// highlighted.
func renderSignatureHint(name string, params []string, arg int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, p := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == arg {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
