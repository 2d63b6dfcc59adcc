package latex

import "strings"

// Pair is an entry of the substitution map: a symbol, its braced-subscript
// form, and its typeset value when it resolved.
type Pair struct {
	Name, Rewritten string
	Value           string
	Resolved        bool
}

// Substitution is the result of [Substitute].
type Substitution struct {
	// Symbolic is the expression with symbols as written.
	Symbolic string
	// Substituted has every resolved symbol replaced by its braced value.
	Substituted string
	// Map lists every free symbol with its rewritten name and value. The
	// substituted form is typeset from it by rewritten name.
	Map []Pair
	// Unresolved lists the symbols left in Substituted as written.
	Unresolved []string
}

// Resolver returns the typeset value of a symbol, or false when the symbol
// has no usable value.
type Resolver func(name string) (string, bool)

// Substitute typesets e twice: once as written and once with every free
// symbol replaced by "{value}" as reported by resolve. Symbols resolve cannot
// handle stay symbolic and are listed in Unresolved.
func Substitute(e *Expr, resolve Resolver, opts ...Option) Substitution {
	var s Substitution

	base := (&typesetter{symbol: Symbol}).apply(opts).symbol

	s.Symbolic = e.LaTeX(opts...)

	for _, name := range e.FreeSymbols() {
		p := Pair{Name: name, Rewritten: Rewrite(name)}
		p.Value, p.Resolved = resolve(name)

		if !p.Resolved {
			s.Unresolved = append(s.Unresolved, name)
		}

		s.Map = append(s.Map, p)
	}

	values := make(map[string]string, len(s.Map))

	for _, p := range s.Map {
		if p.Resolved {
			values[p.Rewritten] = "{" + p.Value + "}"
		}
	}

	symbols := func(name string) string {
		if v, ok := values[Rewrite(name)]; ok {
			return v
		}

		return base(name)
	}

	sub := e.LaTeX(append(opts, WithSymbols(symbols))...)
	s.Substituted = strings.ReplaceAll(sub, `\{`, "{")

	return s
}
