// Package unit implements unit-bearing quantities for engineering
// calculations.
//
// A [Quantity] stores its magnitude in SI base units together with a
// dimension vector and the display unit it was written in. Arithmetic keeps
// the display unit of the operands, so 3*kip*4*ft prints as "12.000 kip*ft"
// rather than in newton-metres, and [Quantity.AsUnit] converts to any other
// unit of the same dimension.
//
// Display precision is ambient: [SetPrecision] affects every later call to
// [Quantity.String].
package unit
