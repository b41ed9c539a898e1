package expr

// Walk visits e and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}

	switch n := e.(type) {
	case All:
		for _, child := range n.Children {
			Walk(child, fn)
		}
	case Any:
		for _, child := range n.Children {
			Walk(child, fn)
		}
	case Not:
		Walk(n.Inner, fn)
	case Comparable:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	}
}

// LeafModes reports which string modes the leaves of e use. A tree produced
// by a single parse has exactly one of the two set, or neither when it has
// no string leaves at all.
func LeafModes(e Expression) (exact, partial bool) {
	Walk(e, func(node Expression) bool {
		switch n := node.(type) {
		case StaticTerm:
			if n.Exact {
				exact = true
			} else {
				partial = true
			}
		case Comparable:
			if n.Exact {
				exact = true
			} else {
				partial = true
			}
		}
		return true
	})
	return exact, partial
}

// Describe converts e to a JSON-friendly tree of maps. Used for
// machine-readable parse output.
func Describe(e Expression) map[string]any {
	switch n := e.(type) {
	case All:
		return map[string]any{"type": "all", "children": describeAll(n.Children)}
	case Any:
		return map[string]any{"type": "any", "children": describeAll(n.Children)}
	case Not:
		return map[string]any{"type": "not", "inner": Describe(n.Inner)}
	case Comparable:
		return map[string]any{
			"type":      "comparable",
			"attribute": n.Left.Attribute.String(),
			"value":     n.Right.Text,
			"exact":     n.Exact,
		}
	case DynamicTerm:
		return map[string]any{"type": "dynamic", "attribute": n.Attribute.String()}
	case StaticTerm:
		return map[string]any{"type": "static", "text": n.Text, "exact": n.Exact}
	default:
		return nil
	}
}

func describeAll(children []Expression) []any {
	out := make([]any, 0, len(children))
	for _, child := range children {
		out = append(out, Describe(child))
	}
	return out
}
