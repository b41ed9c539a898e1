// Package match evaluates parsed search expressions against items and
// containers.
//
// Matches and MatchesContainer answer "is this a hit?"; Compare is a
// three-way comparator used to sort hits so the most relevant surface first.
// All three are pure functions of the tree and the items, so one tree can be
// evaluated from many sessions at once.
package match
