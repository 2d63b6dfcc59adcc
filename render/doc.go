// Package render writes a calculation model as a reStructuredText document
// with embedded LaTeX.
//
// A [Renderer] walks the entries of a [model.Model] in order. Each entry is
// evaluated against a shared [calc.Env], so later entries see every binding
// made by earlier ones, and is then typeset: equations and checks as
// symbolic, substituted and numeric math blocks, terms as a literal listing,
// arrays as tables.
//
// Rendering degrades instead of failing. A bad decimal spec, an expression
// that does not evaluate, or a missing data file leaves a visible gap in the
// document and is recorded as a [Diagnostic] in the returned [Report]. Only a
// write to the output can fail a render.
package render
