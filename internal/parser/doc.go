// Package parser turns search text into an expr.Expression.
//
// GRAMMAR:
//
//	expression  := any | all | not | comparable | dynamicTerm | staticTerm
//	all         := '(' WS expression* WS ')'
//	any         := '[' WS expression* WS ']'
//	not         := '!' WS expression
//	comparable  := dynamicTerm WS '~' WS staticTerm
//	dynamicTerm := '{' letters '}'
//	staticTerm  := 1*(any char except ( ) [ ] { } ! ~ and whitespace)
//
// The parser is hand-written recursive descent: parseExpression looks at the
// next character and dispatches, and the group and negation rules call back
// into parseExpression.
//
// PIPELINE:
//
//	raw text -> Repair -> "[" + text + "]" -> parseExpression -> tree
//
// Repair only appends missing ) and ]. Everything else that does not derive
// from the grammar fails the whole parse with a *ParseError; there is no
// best-effort tree.
package parser
