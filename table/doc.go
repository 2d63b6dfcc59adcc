// Package table builds one- and two-dimensional tables from a statement
// evaluated over index ranges and writes them as reStructuredText simple
// tables.
package table
