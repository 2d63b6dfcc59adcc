package render

import "github.com/ardnew/calcrst/pkg"

// Predefined errors (sentinel values).
var (
	// ErrSinkClosed is returned when writing after the document was closed.
	ErrSinkClosed = pkg.NewError("write to closed document")
	// ErrFileRef is returned when an entry names a file operation the model does
	// not define.
	ErrFileRef = pkg.NewError("undefined file operation")
	// ErrFileOp wraps a failed file operation.
	ErrFileOp = pkg.NewError("file operation failed")
	// ErrSlice is returned for a line range that does not parse or exceeds the
	// file.
	ErrSlice = pkg.NewError("invalid line range")
	// ErrEdit is returned for a malformed edit instruction.
	ErrEdit = pkg.NewError("invalid edit")
	// ErrCheck is returned when either side of a check does not evaluate.
	ErrCheck = pkg.NewError("check not evaluated")
	// ErrSymbol is returned when a name in an equation is neither bound nor a
	// constant.
	ErrSymbol = pkg.NewError("symbol not substituted")
)
