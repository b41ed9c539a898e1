// Package expr defines the abstract syntax tree of seek's search expressions.
//
// A search expression is typed by a player into a search box and selects
// items or containers by textual criteria:
//
//	wood                  static term, matched against name and tags
//	[wood stone]          any of the children
//	(wood !stone)         all of the children
//	{quality}~gold        attribute comparison
//	{name}                bare attribute reference, used for sorting
//
// SEALED INTERFACE:
//
// Expression is a sealed interface using the marker method pattern. Only the
// node types declared in this package implement it, so the matcher and the
// comparator can switch exhaustively:
//
//	switch n := e.(type) {
//	case All:
//	case Any:
//	case Not:
//	case Comparable:
//	case DynamicTerm:
//	case StaticTerm:
//	}
//
// Nodes are plain values. A tree is never mutated after the parser returns
// it, so a single tree can be shared by every session that typed the same
// query.
package expr
