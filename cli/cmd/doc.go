// Package cmd implements the calcrst subcommands: render, eval, fmt, init and
// repl.
//
// Commands that render share the global [Settings]. A model path of "-"
// reads a YAML model from standard input.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
