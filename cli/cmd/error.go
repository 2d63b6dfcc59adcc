package cmd

import "github.com/ardnew/calcrst/pkg"

var (
	ErrMissingResource = pkg.NewError("folders and files not found - program stopped")
	ErrSettings        = pkg.NewError("invalid render settings")
	ErrDegraded        = pkg.NewError("entries were rendered with diagnostics")
	ErrEvaluate        = pkg.NewError("evaluate expression")
	ErrWriteOutput     = pkg.NewError("write output document")
	ErrYAMLMarshal     = pkg.NewError("marshal YAML")
	ErrWriteConfig     = pkg.NewError("write configuration file")
	ErrFileExists      = pkg.NewError("file exists (use --force to overwrite)")
)
