package model

import "github.com/ardnew/calcrst/pkg"

// Predefined errors (sentinel values).
var (
	// ErrFormat is returned for a model format that is not supported.
	ErrFormat = pkg.NewError("unsupported model format")
	// ErrDecode wraps a failure decoding a model document.
	ErrDecode = pkg.NewError("malformed model")
	// ErrEntry is returned for an entry that does not decode to a known kind.
	ErrEntry = pkg.NewError("malformed entry")
	// ErrOption is returned for a file operation with an unknown option.
	ErrOption = pkg.NewError("invalid file operation")
)
