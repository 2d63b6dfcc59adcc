package render

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ardnew/calcrst/calc"
	"github.com/ardnew/calcrst/format"
	"github.com/ardnew/calcrst/latex"
	"github.com/ardnew/calcrst/model"
	"github.com/ardnew/calcrst/table"
	"github.com/ardnew/calcrst/unit"
)

// defaultOK labels a passing check that names no label.
const defaultOK = "ok"

func (s *session) section(e *model.Section) {
	s.out.line("", e.Left+"aa-bb "+e.Right, strings.Repeat("-", s.width), "")
	s.raw(`\vspace{1mm}`)
}

// parse typesets src, which is an expression or a single "lhs = rhs"
// relation. Lines are joined first.
func parse(src string) (*latex.Expr, error) {
	src = strings.Join(strings.Fields(src), " ")

	if lhs, rhs, ok := calc.SplitStatement(src); ok {
		return latex.Relation(lhs, "=", rhs)
	}

	return latex.Parse(src)
}

func (s *session) symbolic(e *model.Symbolic) {
	x, err := parse(e.Expr)
	if err != nil {
		s.diag(ClassSyntax, err)
		s.literal("  " + strings.TrimSpace(e.Expr))

		return
	}

	s.math(x.LaTeX(s.symbols()))
	s.out.line("|", "")
}

func (s *session) term(e *model.Term, opens bool) {
	name, v, err := s.env.Exec(e.Statement)
	if err != nil {
		s.diag(ClassEvaluate, err)

		return
	}

	ref := runewidth.FillRight(strings.TrimSpace(e.Ref), s.width/2)

	switch v := v.(type) {
	case calc.Array:
		s.literal(". "+ref+" | "+name+" = ", "", format.Mark(v.String(), false))
		s.raw(`\vspace{1mm}`)

		return

	case []any:
		s.literal(". "+ref+" | "+name+" = ", "", rows(format.Repr(v)))
		s.raw(`\vspace{1mm}`)

		return
	}

	if opens {
		s.out.line("", "::", "")
	}

	s.out.line("    " + ref + " | " + name + " = " + format.Repr(v))
}

// rows breaks a printed list after each row.
func rows(s string) string {
	if strings.Contains(s, "]]") {
		return strings.ReplaceAll(s, "]]", "]]\n")
	}

	return strings.ReplaceAll(s, "]", "]\n")
}

// magnitude returns the number a value compares and prints as.
func magnitude(v any) (float64, bool) {
	if q, ok := v.(unit.Quantity); ok {
		return q.AsNumber(), true
	}

	return calc.Number(v)
}

func (s *session) check(e *model.Check) {
	d := s.decimals(e.Decimals)

	op := strings.TrimSpace(e.Op)
	if op == "=" {
		op = "=="
	}

	label := strings.TrimSpace(e.OK)
	if label == "" {
		label = defaultOK
	}

	s.rule(strings.TrimSpace(e.Ref))

	x, err := latex.Relation(e.Lhs, op, e.Rhs)
	if err != nil {
		s.diag(ClassSyntax, err)
		s.literal("  " + e.Lhs + " " + op + " " + e.Rhs)
	} else {
		s.math(x.LaTeX(s.symbols()))
		s.out.line("|", "")

		s.math(s.substitute(x, d.Eq))
		s.out.line("|", "")
	}

	lhs, rhs, pass := s.compare(e.Lhs, op, e.Rhs, d.Eq)

	result := lhs + " " + relation(op) + " " + rhs + ` \quad \text{- ` + label + `}`
	if !pass {
		result = lhs + " " + relation(op) + " " + rhs + ` \quad \text{*** not ` + label + ` ***}`
	}

	s.out.line("", ".. math::", "", `  \boldsymbol{`+result+"}", "")
}

// compare evaluates both sides of a check and formats their magnitudes at
// prec decimals. The right side is converted to the unit of the left side
// when both are quantities of one dimension. A side that cannot be evaluated
// prints as "?" and fails the check.
func (s *session) compare(lhs, op, rhs string, prec int) (string, string, bool) {
	a, errA := s.env.Eval(lhs)
	b, errB := s.env.Eval(rhs)

	for _, err := range []error{errA, errB} {
		if err != nil {
			s.diag(ClassEvaluate, err)
		}
	}

	if qa, ok := a.(unit.Quantity); ok {
		if qb, ok := b.(unit.Quantity); ok && qa.Dim() == qb.Dim() {
			b, _ = qb.AsUnit(qa)
		}
	}

	x, okA := magnitude(a)
	y, okB := magnitude(b)

	text := func(v float64, ok bool) string {
		if !ok {
			return "?"
		}

		return strconv.FormatFloat(v, 'f', prec, 64)
	}

	if !okA || !okB {
		if errA == nil && errB == nil {
			s.diag(ClassEvaluate, ErrCheck.With(
				slog.String("lhs", lhs),
				slog.String("rhs", rhs),
			))
		}

		return text(x, okA), text(y, okB), false
	}

	pass, err := calc.Ordered(op, x, y)
	if err != nil {
		s.diag(ClassEvaluate, err)
	}

	return text(x, true), text(y, true), pass
}

// relation typesets a comparison operator.
func relation(op string) string {
	switch op {
	case "<=":
		return `\leq`
	case ">=":
		return `\geq`
	case "==":
		return "="
	case "!=":
		return `\neq`
	}

	return op
}

// symbols typesets unit names upright. Names bound by the model shadow units.
func (s *session) symbols() latex.Option {
	return latex.WithSymbols(func(name string) string {
		if !s.env.Defined(name) {
			if q, err := unit.Lookup(name); err == nil {
				return texUnit(q.StrUnit())
			}
		}

		return latex.Symbol(name)
	})
}

// substitute typesets x with every model-bound symbol replaced by its current
// value. Units and constants stay symbolic. Bound symbols without a printable
// value stay symbolic and are recorded.
func (s *session) substitute(x *latex.Expr, prec int) string {
	sub := latex.Substitute(x, func(name string) (string, bool) {
		if !s.env.Defined(name) {
			return "", false
		}

		v, _ := s.env.Lookup(name)

		return texValue(v, prec)
	}, s.symbols())

	for _, name := range sub.Unresolved {
		if _, constant := s.env.Lookup(name); constant && !s.env.Defined(name) {
			continue
		}

		s.diag(ClassSubstitution, ErrSymbol.With(slog.String("symbol", name)))
	}

	return sub.Substituted
}

// texValue typesets a bound value for substitution into an expression.
func texValue(v any, prec int) (string, bool) {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', prec, 64), true

	case int:
		return strconv.Itoa(v), true

	case unit.Quantity:
		n := strconv.FormatFloat(v.AsNumber(), 'f', prec, 64)
		if u := v.StrUnit(); u != "" {
			n += ` \ ` + texUnit(u)
		}

		return n, true

	case calc.Array:
		return strings.ReplaceAll(v.Format(prec), "\n", " "), true

	case nil:
		return "", false
	}

	return format.Repr(v), true
}

// texUnit typesets a unit string upright.
func texUnit(u string) string {
	return `\mathrm{` + strings.ReplaceAll(u, "*", `\cdot `) + `}`
}

func (s *session) array(e *model.Array) {
	d := s.decimals(e.Decimals)

	s.heading(strings.Join(strings.Fields(e.Ref), " "))

	name, rhs, _ := calc.SplitStatement(e.State)
	display := strings.TrimSpace(e.Display)

	if display == "" {
		display = strings.TrimSpace(rhs)
	}

	lhs := latex.Symbol(strings.TrimSpace(name))

	if x, err := latex.Parse(display); err == nil {
		s.math(lhs + " = " + x.LaTeX(s.symbols()))
	} else {
		s.math(lhs + " = " + display)
	}

	s.out.line("|", "")

	view := s.env.NumericView()

	t, err := table.Build(view, table.Spec{
		Statement: e.State,
		Range1:    e.Range1,
		Range2:    e.Range2,
		Label1:    strings.TrimSpace(e.Unit1),
		Label2:    strings.TrimSpace(e.Unit2),
		Precision: d.Eq,
	})
	if err != nil {
		s.diag(ClassTable, err)

		return
	}

	for _, stmt := range []string{e.Range1, e.Range2, e.State} {
		if n, _, ok := calc.SplitStatement(stmt); ok {
			if v, ok := view.Lookup(strings.TrimSpace(n)); ok {
				s.env.Bind(strings.TrimSpace(n), v)
			}
		}
	}

	s.out.line(strings.TrimSuffix(t.String(), "\n"), "")
}

func (s *session) function(e *model.Function) {
	title := e.Ref
	if _, after, ok := strings.Cut(title, "]"); ok {
		title = after
	}

	s.rule(strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(e.EqNumber)))

	call := strings.TrimSpace(e.Call)
	ret := strings.TrimSpace(e.Return)

	s.out.line("", "return variable: "+ret, "", "function call: "+call)

	name, _, _ := strings.Cut(call, "(")

	doc := ""
	if fn, ok := s.env.Func(strings.TrimSpace(name)); ok {
		doc = fn.Doc
	}

	s.out.line("", "**function doc string:**")
	s.literal(indent(doc, "  "))

	v, err := s.env.Eval(call)
	if err != nil {
		s.diag(ClassEvaluate, err)

		return
	}

	if calc.IsName(ret) {
		s.env.Bind(ret, v)
	}

	if v == nil {
		s.out.line("function evaluates to None", "")

		return
	}

	out := format.Repr(v)
	if strings.Contains(out, "[") {
		out = format.Mark(out, false)
	} else if !strings.HasPrefix(out, "  ") {
		out = "  " + out
	}

	s.out.line("**function returned:** ")
	s.literal(out)
	s.raw(`\vspace{2mm}`)
}

func (s *session) equation(e *model.Equation) {
	d := s.decimals(e.Decimals)
	name := e.Name()

	v, err := s.exec(e.Statement)
	if err != nil {
		s.diag(ClassEvaluate, err)
	}

	if e.Print == model.PrintNone {
		s.out.line("")

		return
	}

	heading := name
	if ref := strings.TrimSpace(e.Ref); ref != "" {
		heading += " | " + ref
	}

	s.out.line("")
	s.rule(heading)

	if e.Print >= model.PrintSymbolic {
		s.derivation(e, d)
	}

	if err == nil {
		s.result(name, v, e.Unit, d)
	}

	s.raw(`\vspace{-8mm}`)
}

// exec executes stmt in the environment. A statement whose operands do not
// combine, such as an array scaled by a quantity, is executed again in the
// numeric view and its result bound in the environment.
func (s *session) exec(stmt string) (any, error) {
	_, v, err := s.env.Exec(stmt)
	if err == nil || !errors.Is(err, calc.ErrOperand) {
		return v, err
	}

	name, nv, verr := s.env.NumericView().Exec(stmt)
	if verr != nil {
		return nil, err
	}

	s.logger.DebugContext(s.ctx, "numeric view",
		slog.String("statement", stmt),
		slog.String("name", name),
	)

	if name != "" {
		s.env.Bind(name, nv)
	}

	return nv, nil
}

// derivation writes the symbolic form of an equation and, at
// [model.PrintSubstituted], its form with values substituted.
func (s *session) derivation(e *model.Equation, d format.Decimals) {
	x, err := latex.Parse(strings.Join(strings.Fields(e.Expr), " "))
	if err != nil {
		s.diag(ClassSyntax, err)
		s.literal("  " + strings.TrimSpace(e.Expr))

		return
	}

	s.raw(`\vspace{1mm}`)
	s.math(x.LaTeX(s.symbols()))
	s.raw(`\vspace{1mm}`)

	if e.Print == model.PrintSubstituted {
		s.math(s.substitute(x, d.Eq))
		s.raw(`\vspace{1mm}`)
		s.out.line("")
	}
}

// result writes the value of an equation at the result precision, converted
// to target when one is given.
func (s *session) result(name string, v any, target string, d format.Decimals) {
	var tex string

	switch x := v.(type) {
	case calc.Array, []any:
		s.literal(". "+name+" = ", s.numbers.Value(name, v, d.Eq))
		s.raw(`\vspace{4mm}`)

		return

	case unit.Quantity:
		str, err := s.numbers.Quantity(x, d.Result, target)
		if err != nil {
			s.diag(ClassEvaluate, err)
			str, _ = s.numbers.Quantity(x, d.Result, "")
		}

		tex = str
		if i := strings.LastIndex(str, " "); i >= 0 {
			tex = str[:i] + ` \ ` + texUnit(str[i+1:])
		}

	case float64:
		tex = s.numbers.Number(x, d.Result)

	case int:
		tex = s.numbers.Int(x)

	default:
		tex = latex.Symbol(name) + " = " + format.Repr(v)
	}

	s.out.line("", ".. math::", "", "  {"+tex+"}", "")
}
