package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/item"
	"github.com/roach88/seek/internal/match"
	"github.com/roach88/seek/internal/parser"
	"github.com/roach88/seek/internal/testutil"
)

func mustParse(t *testing.T, mode parser.Mode, text string) expr.Expression {
	t.Helper()
	e, err := parser.Parse(mode, text)
	require.NoError(t, err, "parse %q", text)
	return e
}

// SQL search must return exactly what the in-memory matcher and comparator
// return for the same data.
func TestSearchItems_AgreesWithMatcher(t *testing.T) {
	s := createSeededStore(t)
	ctx := context.Background()

	tests := []struct {
		mode  parser.Mode
		query string
	}{
		{parser.ModePartial, "wood"},
		{parser.ModePartial, "WOOD"},
		{parser.ModePartial, "[stone wood]"},
		{parser.ModePartial, "(wood !stone)"},
		{parser.ModePartial, "{tags}~fish"},
		{parser.ModePartial, "{tags}~o"},
		{parser.ModePartial, "{quality}~gold"},
		{parser.ModePartial, "{quality}~2"},
		{parser.ModePartial, "{quality}~3"},
		{parser.ModePartial, "{quantity}~1"},
		{parser.ModePartial, "{quantity}~lots"},
		{parser.ModePartial, "{category}~res"},
		{parser.ModePartial, "!{name}~o"},
		{parser.ModePartial, "{name}"},
		{parser.ModePartial, "()"},
		{parser.ModePartial, "[]"},
		{parser.ModePartial, "({category}~fish !{quality}~iridium)"},
		{parser.ModePartial, "100%"},
		{parser.ModeExact, "wood"},
		{parser.ModeExact, "{name}~stone"},
		{parser.ModeExact, "{tags}~fish"},
		{parser.ModeExact, "{category}~FISH"},
		{parser.ModeExact, "[{name}~sardine {name}~parsnip]"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.query, func(t *testing.T) {
			e := mustParse(t, tt.mode, tt.query)

			want := match.Filter(e, allRecords())
			match.SortItems(e, want)

			got, err := s.SearchItems(ctx, e)
			require.NoError(t, err)

			assert.Equal(t, testutil.Names(want), testutil.Names(got))
		})
	}
}

func TestSearchItems_Results(t *testing.T) {
	s := createSeededStore(t)

	got, err := s.SearchItems(context.Background(), mustParse(t, parser.ModePartial, "{tags}~fish"))
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "Sardine", got[0].Name())
	assert.Empty(t, got[0].ContainerID)
	assert.Equal(t, "Largemouth Bass", got[1].Name())
	assert.Equal(t, "Sardine", got[2].Name())
	assert.Equal(t, "fridge", got[2].ContainerID)
}

func TestSearchItems_UnicodeFolding(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Decomposed accent in the stored name, precomposed in the query.
	require.NoError(t, s.Import(ctx, []*item.Record{
		testutil.Rec("Cafe\u0301 Latte", "Cooking", 1, item.QualityNormal),
		testutil.Rec("Coffee", "Cooking", 1, item.QualityNormal),
	}, nil))

	got, err := s.SearchItems(ctx, mustParse(t, parser.ModePartial, "CAF\u00c9"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Cafe\u0301 Latte"}, testutil.Names(got))
}

func TestSearchItems_LikeWildcardsAreLiteral(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Import(ctx, []*item.Record{
		testutil.Rec("Sale_50%", "", 1, item.QualityNormal),
		testutil.Rec("Sales", "", 1, item.QualityNormal),
	}, nil))

	got, err := s.SearchItems(ctx, mustParse(t, parser.ModePartial, "e_5"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sale_50%"}, testutil.Names(got))

	got, err = s.SearchItems(ctx, mustParse(t, parser.ModePartial, "%"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sale_50%"}, testutil.Names(got))
}

func TestSearchItems_NilExpression(t *testing.T) {
	s := createTestStore(t)
	_, err := s.SearchItems(context.Background(), nil)
	assert.Error(t, err)
}

func TestSearchContainers(t *testing.T) {
	s := createSeededStore(t)
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"wood", []string{"Shed Chest", "Woodland Box"}},
		{"{tags}~fish", []string{"Fridge"}},
		{"{quality}~gold", []string{"Fridge"}},
		{"!wood", []string{"Fridge"}},
		{"fridge", []string{"Fridge"}},
		{"{name}", []string{"Shed Chest", "Fridge", "Woodland Box"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := s.SearchContainers(ctx, mustParse(t, parser.ModePartial, tt.query))
			require.NoError(t, err)

			labels := make([]string, len(got))
			for i, c := range got {
				labels[i] = c.Label()
			}
			assert.Equal(t, tt.want, labels)
		})
	}
}
