// Package calc implements the evaluation environment of a calculation model.
//
// Expressions use the expr-lang syntax. Before type checking, arithmetic and
// comparison operators are rewritten into calls of a single dispatch
// function, so plain numbers, [unit.Quantity] values and [Array] values mix
// freely:
//
//	env := calc.New()
//	env.Exec("P = 12*kip")
//	env.Exec("L = 20*ft")
//	env.Exec("M = P*L/4")      // 60.000 kip*ft
//	env.Exec("x = arange(0, 3)")
//
// Unit names are bound as constants; "inch" stands for inches because "in"
// is an operator. Compiled programs are cached by source hash and invalidated
// whenever a binding is added or changes type.
package calc
