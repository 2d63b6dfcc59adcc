//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the calcrst module embedded at build
// time.
//
//go:embed VERSION
var version string

// Version returns the embedded semantic version without surrounding space.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used in help text,
	// default config paths, and the search path environment variable.
	Name = "calcrst"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Calculation model to reStructuredText renderer"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}

// PathEnv returns the name of the environment variable holding extra
// directories searched by file operations.
func PathEnv() string { return strings.ToUpper(Name) + "_PATH" }
