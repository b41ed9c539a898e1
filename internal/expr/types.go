package expr

import (
	"strings"
)

// Reserved characters have structural meaning and never appear inside a
// static term.
const Reserved = "()[]{}!~"

// Expression is a node of a parsed search expression.
//
// This is a sealed interface - only types in this package implement it.
type Expression interface {
	expressionNode() // Marker method - seals interface to this package

	// String renders the node in the literal search syntax.
	String() string
}

// All matches when every child matches. Literal syntax: ( ... ).
//
// An empty All matches everything (vacuous truth).
type All struct {
	Children []Expression
}

func (All) expressionNode() {}

func (a All) String() string {
	return "(" + joinChildren(a.Children) + ")"
}

// Any matches when at least one child matches. Literal syntax: [ ... ].
//
// An empty Any matches nothing.
type Any struct {
	Children []Expression
}

func (Any) expressionNode() {}

func (a Any) String() string {
	return "[" + joinChildren(a.Children) + "]"
}

// Not inverts its inner expression. Literal syntax: !expr.
type Not struct {
	Inner Expression
}

func (Not) expressionNode() {}

func (n Not) String() string {
	if n.Inner == nil {
		return "!"
	}
	return "!" + n.Inner.String()
}

// DynamicTerm references an item attribute. Literal syntax: {attr}.
//
// On its own a DynamicTerm matches everything; it gains matching power only
// as the left side of a Comparable. The comparator uses it to order items by
// the raw attribute value.
type DynamicTerm struct {
	Attribute Attribute
}

func (DynamicTerm) expressionNode() {}

func (d DynamicTerm) String() string {
	return "{" + d.Attribute.String() + "}"
}

// StaticTerm is a literal word matched against an item's name and tags, or a
// container's label.
//
// Exact selects folded equality; otherwise folded substring containment is
// used.
type StaticTerm struct {
	Text  string
	Exact bool

	folded string
}

// NewStaticTerm returns a term with its text folded up front, so matching
// folds only the candidate value.
func NewStaticTerm(text string, exact bool) StaticTerm {
	return StaticTerm{Text: text, Exact: exact, folded: Fold(text)}
}

func (StaticTerm) expressionNode() {}

func (s StaticTerm) String() string {
	return s.Text
}

// Folded returns the folded text. Terms built as plain literals fold on
// demand.
func (s StaticTerm) Folded() string {
	if s.folded == "" {
		return Fold(s.Text)
	}
	return s.folded
}

// WithExact returns a copy of s using the given match mode.
func (s StaticTerm) WithExact(exact bool) StaticTerm {
	s.Exact = exact
	return s
}

// Matches applies the term's string rule to a candidate value.
func (s StaticTerm) Matches(value string) bool {
	return s.MatchesFolded(Fold(value))
}

// MatchesFolded is Matches for a value that is already folded.
func (s StaticTerm) MatchesFolded(folded string) bool {
	if s.Exact {
		return folded == s.Folded()
	}
	return strings.Contains(folded, s.Folded())
}

// Comparable tests an attribute against a literal. Literal syntax:
// {attr}~value.
//
// The field types guarantee the left side is an attribute reference and the
// right side a literal.
type Comparable struct {
	Left  DynamicTerm
	Right StaticTerm
	Exact bool
}

func (Comparable) expressionNode() {}

func (c Comparable) String() string {
	return c.Left.String() + "~" + c.Right.String()
}

func joinChildren(children []Expression) string {
	parts := make([]string, 0, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		parts = append(parts, child.String())
	}
	return strings.Join(parts, " ")
}
