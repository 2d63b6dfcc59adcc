package model

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/calcrst/calc"
)

// Entry is one unit of a model.
type Entry interface {
	Kind() Kind
}

// Section starts a new document section.
type Section struct {
	Left  string `json:"left,omitempty"  yaml:"left,omitempty"`
	Right string `json:"right,omitempty" yaml:"right,omitempty"`
}

// Symbolic displays an expression or relation without evaluating it.
type Symbolic struct {
	Expr string `json:"expr" yaml:"expr"`
}

// Term defines a value and lists it with its reference.
type Term struct {
	Statement string `json:"statement"     yaml:"statement"`
	Expr      string `json:"expr,omitempty" yaml:"expr,omitempty"`
	Ref       string `json:"ref,omitempty"  yaml:"ref,omitempty"`
}

// Check compares two expressions and labels the outcome.
type Check struct {
	Lhs      string `json:"lhs"                yaml:"lhs"`
	Op       string `json:"op"                 yaml:"op"`
	Rhs      string `json:"rhs"                yaml:"rhs"`
	Ref      string `json:"ref,omitempty"      yaml:"ref,omitempty"`
	Decimals string `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	OK       string `json:"ok,omitempty"       yaml:"ok,omitempty"`
}

// Array builds a table from a statement over one or two ranges.
type Array struct {
	State    string `json:"state"              yaml:"state"`
	Display  string `json:"expr,omitempty"     yaml:"expr,omitempty"`
	Range1   string `json:"range1"             yaml:"range1"`
	Range2   string `json:"range2,omitempty"   yaml:"range2,omitempty"`
	Ref      string `json:"ref,omitempty"      yaml:"ref,omitempty"`
	Decimals string `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	Unit1    string `json:"unit1,omitempty"    yaml:"unit1,omitempty"`
	Unit2    string `json:"unit2,omitempty"    yaml:"unit2,omitempty"`
}

// Function calls a documented function and binds its result.
type Function struct {
	Call     string `json:"call"            yaml:"call"`
	Return   string `json:"return,omitempty" yaml:"return,omitempty"`
	Ref      string `json:"ref,omitempty"    yaml:"ref,omitempty"`
	EqNumber string `json:"eqnum,omitempty"  yaml:"eqnum,omitempty"`
}

// PrintMode selects how much of an equation is shown.
type PrintMode int

const (
	PrintNone        PrintMode = iota // evaluate only
	PrintResult                       // result
	PrintSymbolic                     // symbolic form and result
	PrintSubstituted                  // symbolic, substituted and result
)

// DefaultPrintMode applies when an equation does not name one.
const DefaultPrintMode = PrintSubstituted

// ParsePrintMode parses "0" through "3". An empty string is
// [DefaultPrintMode].
func ParsePrintMode(s string) (PrintMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPrintMode, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < int(PrintNone) || n > int(PrintSubstituted) {
		return DefaultPrintMode, ErrEntry.With(slog.String("print", s))
	}

	return PrintMode(n), nil
}

// Equation defines a value and typesets its derivation.
type Equation struct {
	Statement string    `json:"statement"          yaml:"statement"`
	Expr      string    `json:"expr,omitempty"     yaml:"expr,omitempty"`
	Ref       string    `json:"ref,omitempty"      yaml:"ref,omitempty"`
	Decimals  string    `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	Unit      string    `json:"unit,omitempty"     yaml:"unit,omitempty"`
	Print     PrintMode `json:"print"              yaml:"print"`
}

// Name returns the variable the equation defines.
func (e *Equation) Name() string {
	name, _, _ := calc.SplitStatement(e.Statement)

	return name
}

// Text is passed through to the document.
type Text struct {
	Content string `json:"content" yaml:"content"`
}

// Blank requests vertical space.
type Blank struct{}

// File performs the file operation registered under Ref.
type File struct {
	Ref  string `json:"ref"            yaml:"ref"`
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// License is closing text rendered after every other entry.
type License struct {
	Content string `json:"content" yaml:"content"`
}

// Unknown holds an entry of an unrecognized kind.
type Unknown struct {
	Tag    string
	Fields map[string]string
}

func (*Section) Kind() Kind  { return KindSection }
func (*Symbolic) Kind() Kind { return KindSymbolic }
func (*Term) Kind() Kind     { return KindTerm }
func (*Check) Kind() Kind    { return KindCheck }
func (*Array) Kind() Kind    { return KindArray }
func (*Function) Kind() Kind { return KindFunction }
func (*Equation) Kind() Kind { return KindEquation }
func (*Text) Kind() Kind     { return KindText }
func (*Blank) Kind() Kind    { return KindBlank }
func (*File) Kind() Kind     { return KindFile }
func (*License) Kind() Kind  { return KindLicense }
func (*Unknown) Kind() Kind  { return KindUnknown }

// fields are the attributes of an entry as written in the source.
type fields map[string]string

// get returns the first non-empty field among keys.
func (f fields) get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(f[k]); v != "" {
			return v
		}
	}

	return ""
}

// primary names the field a scalar entry value is assigned to.
var primary = map[Kind]string{
	KindSection:  "left",
	KindSymbolic: "expr",
	KindTerm:     "statement",
	KindEquation: "statement",
	KindText:     "content",
	KindFile:     "ref",
	KindLicense:  "content",
	KindFunction: "call",
}

// rhs returns the right-hand side of an assignment statement.
func rhs(stmt string) string {
	_, expr, _ := calc.SplitStatement(stmt)

	return strings.TrimSpace(expr)
}

// newEntry builds the entry tagged tag from its fields.
func newEntry(tag string, f fields) (Entry, error) {
	kind, ok := ParseKind(tag)
	if !ok {
		return &Unknown{Tag: tag, Fields: f}, nil
	}

	switch kind {
	case KindSection:
		return &Section{Left: f.get("left", "title"), Right: f.get("right", "note")}, nil

	case KindSymbolic:
		return &Symbolic{Expr: f.get("expr")}, nil

	case KindTerm:
		t := &Term{Statement: f.get("statement"), Expr: f.get("expr"), Ref: f.get("ref")}
		if t.Expr == "" {
			t.Expr = rhs(t.Statement)
		}

		return t, nil

	case KindCheck:
		c := &Check{
			Lhs:      f.get("lhs"),
			Op:       f.get("op"),
			Rhs:      f.get("rhs", "limit"),
			Ref:      f.get("ref"),
			Decimals: f.get("decimals"),
			OK:       f.get("ok"),
		}
		if c.Lhs == "" || c.Op == "" || c.Rhs == "" {
			return nil, ErrEntry.With(slog.String("kind", tag))
		}

		return c, nil

	case KindArray:
		a := &Array{
			State:    f.get("state", "statement"),
			Display:  f.get("expr"),
			Range1:   f.get("range1"),
			Range2:   f.get("range2"),
			Ref:      f.get("ref"),
			Decimals: f.get("decimals"),
			Unit1:    f.get("unit1"),
			Unit2:    f.get("unit2"),
		}
		if a.State == "" || a.Range1 == "" {
			return nil, ErrEntry.With(slog.String("kind", tag))
		}

		return a, nil

	case KindFunction:
		return &Function{
			Call:     f.get("call"),
			Return:   f.get("return", "var"),
			Ref:      f.get("ref"),
			EqNumber: f.get("eqnum"),
		}, nil

	case KindEquation:
		mode, err := ParsePrintMode(f["print"])
		if err != nil {
			return nil, err
		}

		e := &Equation{
			Statement: f.get("statement"),
			Expr:      f.get("expr"),
			Ref:       f.get("ref"),
			Decimals:  f.get("decimals"),
			Unit:      f.get("unit"),
			Print:     mode,
		}
		if e.Name() == "" {
			return nil, ErrEntry.With(
				slog.String("kind", tag),
				slog.String("statement", e.Statement),
			)
		}

		if e.Expr == "" {
			e.Expr = rhs(e.Statement)
		}

		return e, nil

	case KindText:
		return &Text{Content: f["content"]}, nil

	case KindBlank:
		return &Blank{}, nil

	case KindFile:
		return &File{Ref: f.get("ref"), Note: f.get("note")}, nil

	case KindLicense:
		return &License{Content: f["content"]}, nil
	}

	return &Unknown{Tag: tag, Fields: f}, nil
}
