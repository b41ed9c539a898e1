package match

import (
	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/item"
)

// Matches reports whether an item satisfies e.
//
// A nil expression matches nothing; callers decide separately what a missing
// query means for them.
func Matches(e expr.Expression, it item.Item) bool {
	switch n := e.(type) {
	case expr.All:
		for _, child := range n.Children {
			if !Matches(child, it) {
				return false
			}
		}
		return true
	case expr.Any:
		for _, child := range n.Children {
			if Matches(child, it) {
				return true
			}
		}
		return false
	case expr.Not:
		return !Matches(n.Inner, it)
	case expr.DynamicTerm:
		return true
	case expr.Comparable:
		v, ok := resolve(it, n.Left.Attribute)
		return ok && hit(n, v)
	case expr.StaticTerm:
		return staticMatches(n, it)
	default:
		return false
	}
}

// MatchesContainer reports whether a container satisfies e. Leaves match a
// container when any contained item matches; a static term also matches the
// container's own label.
func MatchesContainer(e expr.Expression, c item.Container) bool {
	switch n := e.(type) {
	case expr.All:
		for _, child := range n.Children {
			if !MatchesContainer(child, c) {
				return false
			}
		}
		return true
	case expr.Any:
		for _, child := range n.Children {
			if MatchesContainer(child, c) {
				return true
			}
		}
		return false
	case expr.Not:
		return !MatchesContainer(n.Inner, c)
	case expr.DynamicTerm:
		return true
	case expr.Comparable:
		return anyItem(n, c)
	case expr.StaticTerm:
		if !isNilContainer(c) && c.Label() != "" && n.Matches(c.Label()) {
			return true
		}
		return anyItem(n, c)
	default:
		return false
	}
}

func staticMatches(s expr.StaticTerm, it item.Item) bool {
	if isNil(it) {
		return false
	}
	if name := it.Name(); name != "" && s.Matches(name) {
		return true
	}
	for _, tag := range it.Tags() {
		if s.Matches(tag) {
			return true
		}
	}
	return false
}

func anyItem(e expr.Expression, c item.Container) bool {
	if isNilContainer(c) {
		return false
	}
	for _, it := range c.Items() {
		if Matches(e, it) {
			return true
		}
	}
	return false
}

// Filter returns the items matching e, preserving order.
func Filter[T item.Item](e expr.Expression, items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(e, it) {
			out = append(out, it)
		}
	}
	return out
}

// FilterContainers returns the containers matching e, preserving order.
func FilterContainers[T item.Container](e expr.Expression, containers []T) []T {
	out := make([]T, 0, len(containers))
	for _, c := range containers {
		if MatchesContainer(e, c) {
			out = append(out, c)
		}
	}
	return out
}
