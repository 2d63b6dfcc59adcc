package unit

import "github.com/ardnew/calcrst/pkg"

// Predefined errors (sentinel values).
var (
	// ErrDimension is returned when combining quantities of different dimensions.
	ErrDimension = pkg.NewError("incompatible dimensions")
	// ErrUnknownUnit is returned for a name not in the unit registry.
	ErrUnknownUnit = pkg.NewError("unknown unit")
	// ErrExponent is returned when raising a dimensioned quantity to a power
	// would leave a fractional dimension exponent.
	ErrExponent = pkg.NewError("invalid exponent")
)
