package format

import "github.com/ardnew/calcrst/pkg"

// ErrDecimals is returned when a decimal spec does not parse or names a
// precision outside the supported range. [ParseDecimals] still returns
// [DefaultDecimals] alongside it.
var ErrDecimals = pkg.NewError("invalid decimal spec")
