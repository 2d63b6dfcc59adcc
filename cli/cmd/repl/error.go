package repl

import "github.com/ardnew/calcrst/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds = pkg.NewError("index out of range")
	ErrNoModel     = pkg.NewError("no model to edit")
)
