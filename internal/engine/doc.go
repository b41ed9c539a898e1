// Package engine is the entry point callers use to run searches.
//
// ARCHITECTURE:
//
//	text -> Engine.TryParse -> cache.Cache -> parser.Repair -> parser.Parse
//	                                |
//	                                v
//	                    expr.Expression (shared, read-only)
//	                                |
//	        Session.Matches / Session.Compare -> match package
//
// Sessions:
// Every search box (a player's inventory menu, a chest finder, a
// categorization filter) opens its own Session. A session keeps the text
// last typed and the tree it parsed to, so independent players never see
// each other's queries.
//
// Missing expressions:
// A query that does not parse leaves the session without a tree. What that
// session matches is decided by the engine's MissingPolicy: everything
// (the default, like an empty search box) or nothing.
//
// Nothing in this package blocks or performs I/O; parse and match cost is
// bounded by the length of typed text.
package engine
