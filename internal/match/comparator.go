package match

import (
	"cmp"
	"slices"
	"strings"

	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/item"
)

// Compare orders two items by relevance to e. It returns -1 when x should
// sort before y, 1 when after, 0 when e does not discriminate.
//
// Groups use different strategies: All compares whole-group match results,
// while Any returns the first child that discriminates. Saved searches
// depend on this ordering, so the two are kept as they are.
func Compare(e expr.Expression, x, y item.Item) int {
	switch n := e.(type) {
	case expr.All:
		return compareMatch(Matches(n, x), Matches(n, y))
	case expr.Any:
		for _, child := range n.Children {
			if c := Compare(child, x, y); c != 0 {
				return c
			}
		}
		return 0
	case expr.Not:
		return -Compare(n.Inner, x, y)
	case expr.Comparable:
		return compareComparable(n, x, y)
	case expr.StaticTerm:
		return compareMatch(staticMatches(n, x), staticMatches(n, y))
	case expr.DynamicTerm:
		return compareRaw(n.Attribute, x, y)
	default:
		return 0
	}
}

// SortItems stably sorts items so the most relevant come first.
func SortItems[T item.Item](e expr.Expression, items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return Compare(e, a, b)
	})
}

// compareMatch puts matching items first.
func compareMatch(x, y bool) int {
	switch {
	case x == y:
		return 0
	case x:
		return -1
	default:
		return 1
	}
}

// compareResolved puts unresolvable operands last. done is false when both
// resolved and the caller must compare the values.
func compareResolved(okx, oky bool) (result int, done bool) {
	switch {
	case !okx && !oky:
		return 0, true
	case !okx:
		return 1, true
	case !oky:
		return -1, true
	default:
		return 0, false
	}
}

func compareComparable(c expr.Comparable, x, y item.Item) int {
	vx, okx := resolve(x, c.Left.Attribute)
	vy, oky := resolve(y, c.Left.Attribute)
	if r, done := compareResolved(okx, oky); done {
		return r
	}

	if vx.kind == expr.KindStrings {
		bx, okx := bestTag(c, vx.list)
		by, oky := bestTag(c, vy.list)
		if r, done := compareResolved(okx, oky); done {
			return r
		}
		return strings.Compare(bx, by)
	}
	return compareMatch(hit(c, vx), hit(c, vy))
}

// bestTag returns the ordinally smallest tag satisfying the comparable.
func bestTag(c expr.Comparable, tags []string) (string, bool) {
	rule := c.Right.WithExact(c.Exact)

	best, found := "", false
	for _, tag := range tags {
		if !rule.Matches(tag) {
			continue
		}
		if !found || tag < best {
			best, found = tag, true
		}
	}
	return best, found
}

func compareRaw(attr expr.Attribute, x, y item.Item) int {
	vx, okx := resolve(x, attr)
	vy, oky := resolve(y, attr)
	if r, done := compareResolved(okx, oky); done {
		return r
	}

	switch vx.kind {
	case expr.KindString:
		return strings.Compare(vx.str, vy.str)
	case expr.KindInt:
		return cmp.Compare(vx.num, vy.num)
	case expr.KindStrings:
		return slices.Compare(vx.list, vy.list)
	default:
		return 0
	}
}
