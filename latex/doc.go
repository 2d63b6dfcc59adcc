// Package latex typesets expressions as LaTeX and substitutes current values
// for their symbols.
//
// Expressions are parsed with the expr-lang parser, so any source accepted by
// package calc can be typeset. No algebraic simplification is performed: the
// output follows the structure of the source, with parentheses only where
// operator precedence requires them.
package latex
