package calc

import (
	"log/slog"

	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/calcrst/log"
)

// Reserved function names the operator patcher rewrites into. They cannot be
// written in source because identifiers may not begin with "$".
const (
	fnBinary = "$op"
	fnNegate = "$neg"
	fnIndex  = "$index"
)

// operatorPatcher rewrites arithmetic and comparison operators, unary minus
// and computed member access into calls of the reserved functions, so that
// quantities, arrays and plain numbers share one runtime dispatch.
type operatorPatcher struct {
	logger log.Logger
}

// Visit implements [ast.Visitor].
func (p operatorPatcher) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.BinaryNode:
		if !patchable(n.Operator) {
			return
		}

		ast.Patch(node, &ast.CallNode{
			Callee: &ast.IdentifierNode{Value: fnBinary},
			Arguments: []ast.Node{
				&ast.StringNode{Value: n.Operator},
				n.Left,
				n.Right,
			},
		})
		p.logger.Trace("patch operator", slog.String("op", n.Operator))

	case *ast.UnaryNode:
		switch n.Operator {
		case "-":
			ast.Patch(node, &ast.CallNode{
				Callee:    &ast.IdentifierNode{Value: fnNegate},
				Arguments: []ast.Node{n.Node},
			})
		case "+":
			ast.Patch(node, n.Node)
		}

	case *ast.MemberNode:
		if _, named := n.Property.(*ast.StringNode); named {
			return
		}

		ast.Patch(node, &ast.CallNode{
			Callee:    &ast.IdentifierNode{Value: fnIndex},
			Arguments: []ast.Node{n.Node, n.Property},
		})
	}
}

func patchable(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%", "**", "^", "<", "<=", ">", ">=", "==", "!=":
		return true
	}

	return false
}
