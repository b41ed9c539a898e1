package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError describes one failed query expectation.
type AssertionError struct {
	Index    int    // Query position in the scenario
	Query    string // Query text
	Field    string // "valid", "items" or "containers"
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "queries[%d] %q: %s mismatch\n", e.Index, e.Query, e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// CheckQuery compares a query result with its step's expectations and
// returns one message per failed expectation.
func CheckQuery(index int, step QueryStep, got QueryResult) []string {
	var errs []string
	fail := func(field, expected, actual string) {
		errs = append(errs, (&AssertionError{
			Index:    index,
			Query:    step.Query,
			Field:    field,
			Expected: expected,
			Actual:   actual,
		}).Error())
	}

	if step.Invalid && got.Valid {
		fail("valid", "query does not parse", "parsed as "+got.Tree)
		return errs
	}
	if !step.Invalid && !got.Valid {
		fail("valid", "query parses", "query does not parse")
		return errs
	}

	if step.Expect != nil && !slices.Equal(step.Expect, got.Items) {
		fail("items", formatList(step.Expect), formatList(got.Items))
	}
	if step.Containers != nil && !slices.Equal(step.Containers, got.Containers) {
		fail("containers", formatList(step.Containers), formatList(got.Containers))
	}

	return errs
}

func formatList(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return "[" + strings.Join(values, ", ") + "]"
}
