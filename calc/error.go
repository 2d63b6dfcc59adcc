package calc

import "github.com/ardnew/calcrst/pkg"

// Predefined errors (sentinel values).
var (
	// ErrStatement is returned for an empty statement or an assignment to a name
	// that is not an identifier.
	ErrStatement = pkg.NewError("invalid statement")
	// ErrCompile is returned when an expression does not compile.
	ErrCompile = pkg.NewError("expression compilation failed")
	// ErrEvaluate wraps a failure raised while running a compiled expression.
	ErrEvaluate = pkg.NewError("expression evaluation failed")
	// ErrUndefined is returned for a name with no binding.
	ErrUndefined = pkg.NewError("undefined name")
	// ErrOperand is returned when an operator does not accept its operand types.
	ErrOperand = pkg.NewError("unsupported operand")
	// ErrShape is returned when array operands differ in shape.
	ErrShape = pkg.NewError("array shape mismatch")
	// ErrArgument is returned when a builtin or an index receives an invalid
	// argument.
	ErrArgument = pkg.NewError("invalid argument")
	// ErrData is returned when data read from a file does not parse.
	ErrData = pkg.NewError("invalid data")
	// ErrScript is returned when a script statement fails.
	ErrScript = pkg.NewError("script failed")
)
