package match

import (
	"strconv"
	"strings"

	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/item"
)

// value is an attribute resolved on one item.
type value struct {
	kind expr.Kind
	str  string
	num  int
	list []string
}

// resolve reads attr from it. ok is false when the item cannot provide the
// attribute: a nil item, or an empty name or category.
func resolve(it item.Item, attr expr.Attribute) (v value, ok bool) {
	if isNil(it) {
		return value{}, false
	}

	switch attr {
	case expr.AttributeName:
		return stringValue(it.Name())
	case expr.AttributeCategory:
		return stringValue(it.Category())
	case expr.AttributeQuantity:
		return value{kind: expr.KindInt, num: it.Quantity()}, true
	case expr.AttributeQuality:
		return value{kind: expr.KindInt, num: int(it.Quality())}, true
	case expr.AttributeTags:
		return value{kind: expr.KindStrings, list: it.Tags()}, true
	default:
		return value{}, false
	}
}

func stringValue(s string) (value, bool) {
	if s == "" {
		return value{}, false
	}
	return value{kind: expr.KindString, str: s}, true
}

// target parses the right side of a comparable into the attribute's integer
// domain.
func target(attr expr.Attribute, text string) (int, bool) {
	switch attr {
	case expr.AttributeQuantity:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		return n, err == nil
	case expr.AttributeQuality:
		q, err := item.ParseQuality(text)
		return int(q), err == nil
	default:
		return 0, false
	}
}

// hit applies the comparable rule to a resolved value.
func hit(c expr.Comparable, v value) bool {
	rule := c.Right.WithExact(c.Exact)

	switch v.kind {
	case expr.KindString:
		return rule.Matches(v.str)
	case expr.KindInt:
		n, ok := target(c.Left.Attribute, c.Right.Text)
		return ok && v.num == n
	case expr.KindStrings:
		for _, s := range v.list {
			if rule.Matches(s) {
				return true
			}
		}
	}
	return false
}

// isNil catches both a nil interface and a typed nil pointer.
func isNil(it item.Item) bool {
	if it == nil {
		return true
	}
	if r, ok := it.(*item.Record); ok && r == nil {
		return true
	}
	return false
}

// isNilContainer is isNil for containers.
func isNilContainer(c item.Container) bool {
	if c == nil {
		return true
	}
	if ch, ok := c.(*item.Chest); ok && ch == nil {
		return true
	}
	return false
}
