package harness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inlineScenario(t *testing.T, queries string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte(`
name: inline
description: inline test
data:
  items:
    - {name: Wood, tags: [wood]}
    - {name: Stone, quantity: 3}
  containers:
    - {id: box, label: Woodbox, items: [{name: Clay}]}
queries:
` + queries))
	require.NoError(t, err)
	return s
}

func TestRun_Pass(t *testing.T) {
	s := inlineScenario(t, `
  - query: wood
    expect: [Wood]
    containers: [Woodbox]
  - query: "{quantity}~3"
    expect: [Stone]
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Queries, 2)
	assert.Equal(t, "{quantity}~3", result.Queries[1].Tree)
}

func TestRun_ItemMismatch(t *testing.T) {
	s := inlineScenario(t, `
  - query: wood
    expect: [Stone]
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "queries[0] \"wood\": items mismatch\n  Expected: [Stone]\n  Actual: [Wood]", result.Errors[0])
}

func TestRun_ContainerMismatch(t *testing.T) {
	s := inlineScenario(t, `
  - query: clay
    containers: []
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "containers mismatch")
	assert.Contains(t, result.Errors[0], "Expected: (none)")
	assert.Contains(t, result.Errors[0], "Actual: [Woodbox]")
}

func TestRun_InvalidExpectations(t *testing.T) {
	s := inlineScenario(t, `
  - query: "{nope}"
    invalid: true
  - query: "{name}~"
  - query: wood
    invalid: true
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.True(t, strings.HasPrefix(result.Errors[0], `queries[1] "{name}~": valid mismatch`))
	assert.Contains(t, result.Errors[1], "parsed as wood")

	assert.False(t, result.Queries[0].Valid)
	assert.Empty(t, result.Queries[0].Items)
}

func TestRun_BlankQueryReturnsEverything(t *testing.T) {
	s := inlineScenario(t, `
  - query: "   "
    expect: [Wood, Stone, Clay]
    containers: [Woodbox]
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Queries[0].Tree)
}

func TestRun_BadInlineInventory(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: bad
description: bad inventory
data:
  items:
    - {name: Wood, weight: 3}
queries:
  - query: wood
`))
	require.NoError(t, err)

	_, err = Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load inventory")
}

func TestCheckQuery_NilExpectSkipsCheck(t *testing.T) {
	errs := CheckQuery(0, QueryStep{Query: "x"}, QueryResult{Query: "x", Valid: true, Items: []string{"A"}})
	assert.Empty(t, errs)
}
