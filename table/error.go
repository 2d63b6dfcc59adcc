package table

import "github.com/ardnew/calcrst/pkg"

// Predefined errors (sentinel values).
var (
	// ErrRange is returned when a range statement is not "name = values" or
	// its values do not evaluate to a sequence.
	ErrRange = pkg.NewError("invalid range")
	// ErrRangeOverlap is returned when the two ranges of a table bind the
	// same variable name.
	ErrRangeOverlap = pkg.NewError("range variable names overlap")
	// ErrStatement is returned when the table statement is not an
	// assignment or fails to evaluate for a row.
	ErrStatement = pkg.NewError("invalid table statement")
)
