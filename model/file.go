package model

import (
	"log/slog"
	"strings"
)

// Option selects a file operation.
type Option string

const (
	OptionScript Option = "script"
	OptionText   Option = "text"
	OptionFigure Option = "figure"
	OptionRead   Option = "read"
	OptionEdit   Option = "edit"
)

// ParseOption accepts an option name or its first letter.
func ParseOption(s string) (Option, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for _, o := range []Option{OptionScript, OptionText, OptionFigure, OptionRead, OptionEdit} {
		if s == string(o) || s == string(o)[:1] {
			return o, nil
		}
	}

	return "", ErrOption.With(slog.String("option", s))
}

// FileOp is an entry in a model's file-operation table.
//
// The meaning of Args depends on Option:
//
//	script  (none)
//	text    [slice]           lines to insert, e.g. "2:10" or "-5:"
//	figure  [caption, width]  width in percent
//	read    [name, sep, skip] sep "*" splits on whitespace
//	edit    [line|text ...]   replacement lines
type FileOp struct {
	Option Option   `json:"option"         yaml:"option"`
	Path   string   `json:"path"           yaml:"path"`
	Args   []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// Arg returns argument i, or the empty string.
func (f FileOp) Arg(i int) string {
	if i < 0 || i >= len(f.Args) {
		return ""
	}

	return strings.TrimSpace(f.Args[i])
}
