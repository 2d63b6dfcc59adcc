package cli

import (
	"github.com/ardnew/calcrst/cli/cmd"
	"github.com/ardnew/calcrst/pkg"
)

// ErrMissingResource is returned when a model, output directory or other
// required file does not exist.
var ErrMissingResource = cmd.ErrMissingResource

// ErrConfig is returned when the YAML configuration file cannot be read.
var ErrConfig = pkg.NewError("invalid configuration file")
