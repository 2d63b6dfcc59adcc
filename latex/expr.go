package latex

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Expr is a parsed expression.
type Expr struct {
	src  string
	node ast.Node
}

// Parse parses src.
func Parse(src string) (*Expr, error) {
	src = strings.TrimSpace(src)

	tree, err := parser.Parse(src)
	if err != nil {
		return nil, ErrParse.Wrap(err).With(slog.String("source", src))
	}

	return &Expr{src: src, node: tree.Node}, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}

	return e
}

// Relation parses "lhs op rhs". The operators "=" and "==" both denote
// equality.
func Relation(lhs, op, rhs string) (*Expr, error) {
	if op = strings.TrimSpace(op); op == "=" {
		op = "=="
	}

	return Parse("(" + lhs + ") " + op + " (" + rhs + ")")
}

// Source returns the source text.
func (e *Expr) Source() string { return e.src }

// FreeSymbols returns the identifiers referenced by e in order of first
// appearance. Names only used as the target of a call are excluded.
func (e *Expr) FreeSymbols() []string {
	callees := &calleeVisitor{}
	ast.Walk(&e.node, callees)

	ids := &identVisitor{skip: callees.nodes}
	ast.Walk(&e.node, ids)

	return ids.names
}

type calleeVisitor struct {
	nodes map[ast.Node]bool
}

func (v *calleeVisitor) Visit(node *ast.Node) {
	if call, ok := (*node).(*ast.CallNode); ok {
		if v.nodes == nil {
			v.nodes = make(map[ast.Node]bool)
		}

		v.nodes[call.Callee] = true
	}
}

type identVisitor struct {
	skip  map[ast.Node]bool
	seen  map[string]bool
	names []string
}

func (v *identVisitor) Visit(node *ast.Node) {
	id, ok := (*node).(*ast.IdentifierNode)
	if !ok || v.skip[*node] {
		return
	}

	if v.seen == nil {
		v.seen = make(map[string]bool)
	}

	if !v.seen[id.Value] {
		v.seen[id.Value] = true
		v.names = append(v.names, id.Value)
	}
}

// Option configures typesetting.
type Option func(*typesetter)

// WithMulSymbol sets the multiplication glyph. The default is "\cdot".
func WithMulSymbol(s string) Option {
	return func(t *typesetter) { t.mul = s }
}

// WithSymbols sets the function that typesets identifiers. The default is
// [Symbol].
func WithSymbols(fn func(name string) string) Option {
	return func(t *typesetter) { t.symbol = fn }
}

// LaTeX typesets e.
func (e *Expr) LaTeX(opts ...Option) string {
	t := &typesetter{mul: `\cdot`, symbol: Symbol}

	return t.apply(opts).node(e.node)
}

func (t *typesetter) apply(opts []Option) *typesetter {
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// String returns the LaTeX form with default options.
func (e *Expr) String() string { return e.LaTeX() }

// Binding strength of operators, loosest first.
const (
	precOr = iota + 1
	precAnd
	precCompare
	precAdd
	precMul
	precUnary
	precPow
	precAtom
)

var binaryPrec = map[string]int{
	"or": precOr, "||": precOr,
	"and": precAnd, "&&": precAnd,
	"==": precCompare, "!=": precCompare,
	"<": precCompare, "<=": precCompare,
	">": precCompare, ">=": precCompare,
	"+": precAdd, "-": precAdd,
	"*": precMul, "/": precMul, "%": precMul,
	"**": precPow, "^": precPow,
}

var relations = map[string]string{
	"==": "=", "!=": `\neq`,
	"<": "<", "<=": `\leq`,
	">": ">", ">=": `\geq`,
	"or": `\vee`, "||": `\vee`,
	"and": `\wedge`, "&&": `\wedge`,
}

// functions maps callees with a dedicated LaTeX operator.
var functions = map[string]string{
	"sin": `\sin`, "cos": `\cos`, "tan": `\tan`,
	"asin": `\operatorname{asin}`, "acos": `\operatorname{acos}`,
	"atan": `\operatorname{atan}`, "ln": `\log`, "log10": `\log_{10}`,
}

type typesetter struct {
	mul    string
	symbol func(string) string
}

func precedence(n ast.Node) int {
	switch n := n.(type) {
	case *ast.BinaryNode:
		if p, ok := binaryPrec[n.Operator]; ok {
			return p
		}

		return precCompare
	case *ast.UnaryNode:
		return precUnary
	case *ast.ConditionalNode:
		return precOr
	}

	return precAtom
}

func paren(s string) string { return `\left(` + s + `\right)` }

// operand typesets n, parenthesized when it binds looser than floor.
func (t *typesetter) operand(n ast.Node, floor int) string {
	s := t.node(n)
	if precedence(n) < floor {
		return paren(s)
	}

	return s
}

func (t *typesetter) node(n ast.Node) string {
	switch n := n.(type) {
	case *ast.IdentifierNode:
		return t.symbol(n.Value)

	case *ast.IntegerNode:
		return strconv.Itoa(n.Value)

	case *ast.FloatNode:
		return number(n.Value)

	case *ast.BoolNode:
		return `\text{` + strconv.FormatBool(n.Value) + `}`

	case *ast.StringNode:
		return `\text{` + escape(n.Value) + `}`

	case *ast.NilNode:
		return `\text{nil}`

	case *ast.UnaryNode:
		return t.unary(n)

	case *ast.BinaryNode:
		return t.binary(n)

	case *ast.CallNode:
		name := ""
		if id, ok := n.Callee.(*ast.IdentifierNode); ok {
			name = id.Value
		}

		return t.call(name, n.Arguments)

	case *ast.BuiltinNode:
		return t.call(n.Name, n.Arguments)

	case *ast.ArrayNode:
		return `\left[ ` + t.list(n.Nodes) + `\right]`

	case *ast.MemberNode:
		return t.operand(n.Node, precAtom) + "_{" + t.node(n.Property) + "}"

	case *ast.ConditionalNode:
		return t.node(n.Exp1) + ` \text{ if } ` + t.node(n.Cond) +
			` \text{ else } ` + t.node(n.Exp2)

	case *ast.ChainNode:
		return t.node(n.Node)
	}

	return `\text{?}`
}

func (t *typesetter) unary(n *ast.UnaryNode) string {
	switch n.Operator {
	case "-":
		return "- " + t.operand(n.Node, precUnary+1)
	case "+":
		return t.node(n.Node)
	case "not", "!":
		return `\neg ` + t.operand(n.Node, precUnary)
	}

	return n.Operator + " " + t.operand(n.Node, precUnary)
}

func (t *typesetter) binary(n *ast.BinaryNode) string {
	p := precedence(n)

	switch n.Operator {
	case "/":
		return `\frac{` + t.node(n.Left) + "}{" + t.node(n.Right) + "}"

	case "**", "^":
		return t.operand(n.Left, precPow+1) + "^{" + t.node(n.Right) + "}"

	case "*":
		return t.operand(n.Left, p) + " " + t.mul + " " + t.operand(n.Right, p)

	case "%":
		return t.operand(n.Left, p) + ` \bmod ` + t.operand(n.Right, p+1)

	case "+":
		return t.operand(n.Left, p) + " + " + t.operand(n.Right, p)

	case "-":
		return t.operand(n.Left, p) + " - " + t.operand(n.Right, p+1)
	}

	if rel, ok := relations[n.Operator]; ok {
		return t.operand(n.Left, p+1) + " " + rel + " " + t.operand(n.Right, p+1)
	}

	return t.operand(n.Left, p+1) + ` \operatorname{` + n.Operator + `} ` +
		t.operand(n.Right, p+1)
}

func (t *typesetter) call(name string, args []ast.Node) string {
	switch {
	case name == "sqrt" && len(args) == 1:
		return `\sqrt{` + t.node(args[0]) + "}"

	case name == "exp" && len(args) == 1:
		return "e^{" + t.node(args[0]) + "}"

	case name == "abs" && len(args) == 1:
		return `\left|` + t.node(args[0]) + `\right|`
	}

	op, ok := functions[name]
	if !ok {
		op = `\operatorname{` + escape(name) + `}`
	}

	return op + "{" + paren(t.list(args)) + "}"
}

func (t *typesetter) list(nodes []ast.Node) string {
	parts := make([]string, len(nodes))
	for i, a := range nodes {
		parts[i] = t.node(a)
	}

	return strings.Join(parts, `, \  `)
}

// number typesets a float literal, writing exponents as powers of ten.
func number(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)

	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		if !strings.ContainsAny(s, ".") {
			s += ".0"
		}

		return s
	}

	e, _ := strconv.Atoi(exp)

	return mant + ` \cdot 10^{` + strconv.Itoa(e) + "}"
}

var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"_", `\_`, "{", `\{`, "}", `\}`, "%", `\%`,
	"$", `\$`, "#", `\#`, "&", `\&`,
)

func escape(s string) string { return escaper.Replace(s) }
