// Package format renders calculation values for the report: grouped numbers
// at a requested precision, quantities with their unit, and arrays or lists
// with the bracket markers that keep nested rows readable in a literal block.
package format
