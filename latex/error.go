package latex

import "github.com/ardnew/calcrst/pkg"

// ErrParse is returned when an expression is not valid syntax.
var ErrParse = pkg.NewError("cannot parse expression")
