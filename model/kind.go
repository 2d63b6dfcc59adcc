package model

import "iter"

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

// Kind discriminates entries.
type Kind int

const (
	KindUnknown  Kind = iota // unknown
	KindSection              // section
	KindSymbolic             // symbolic
	KindTerm                 // term
	KindCheck                // check
	KindArray                // array
	KindFunction             // function
	KindEquation             // equation
	KindText                 // text
	KindBlank                // blank
	KindFile                 // file
	KindLicense              // license
)

// tags maps the bracketed single-letter tags of the calc language to kinds.
var tags = map[string]Kind{
	"[s]":  KindSection,
	"[y]":  KindSymbolic,
	"[t]":  KindTerm,
	"[c]":  KindCheck,
	"[a]":  KindArray,
	"[f]":  KindFunction,
	"[e]":  KindEquation,
	"[x]":  KindText,
	"[~]":  KindBlank,
	"[i]":  KindFile,
	"[pd]": KindLicense,
}

// Kinds returns every known kind in declaration order, excluding
// [KindUnknown].
func Kinds() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for k := KindSection; k <= KindLicense; k++ {
			if !yield(k) {
				return
			}
		}
	}
}

// ParseKind returns the kind named by s, which is either a kind name or a
// bracketed tag such as "[e]".
func ParseKind(s string) (Kind, bool) {
	if k, ok := tags[s]; ok {
		return k, true
	}

	for k := range Kinds() {
		if k.String() == s {
			return k, true
		}
	}

	return KindUnknown, false
}
