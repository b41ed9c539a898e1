package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seek/internal/expr"
)

func static(text string) expr.StaticTerm {
	return expr.NewStaticTerm(text, false)
}

func TestParse_Partial(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want expr.Expression
	}{
		{
			name: "single term is unwrapped",
			in:   "wood",
			want: static("wood"),
		},
		{
			name: "bare list is an implicit any",
			in:   "wood stone",
			want: expr.Any{Children: []expr.Expression{static("wood"), static("stone")}},
		},
		{
			name: "explicit any",
			in:   "[wood stone]",
			want: expr.Any{Children: []expr.Expression{static("wood"), static("stone")}},
		},
		{
			name: "all with negation",
			in:   "(wood !stone)",
			want: expr.All{Children: []expr.Expression{
				static("wood"),
				expr.Not{Inner: static("stone")},
			}},
		},
		{
			name: "comparable",
			in:   "{quality}~2",
			want: expr.Comparable{
				Left:  expr.DynamicTerm{Attribute: expr.AttributeQuality},
				Right: static("2"),
			},
		},
		{
			name: "comparable with spaces around tilde",
			in:   "{name} ~ wood",
			want: expr.Comparable{
				Left:  expr.DynamicTerm{Attribute: expr.AttributeName},
				Right: static("wood"),
			},
		},
		{
			name: "bare dynamic term",
			in:   "{Tags}",
			want: expr.DynamicTerm{Attribute: expr.AttributeTags},
		},
		{
			name: "dynamic term followed by static term",
			in:   "{name} wood",
			want: expr.Any{Children: []expr.Expression{
				expr.DynamicTerm{Attribute: expr.AttributeName},
				static("wood"),
			}},
		},
		{
			name: "self repaired",
			in:   "(wood",
			want: expr.All{Children: []expr.Expression{static("wood")}},
		},
		{
			name: "negation without separator",
			in:   "(a!b)",
			want: expr.All{Children: []expr.Expression{static("a"), expr.Not{Inner: static("b")}}},
		},
		{
			name: "negation with space",
			in:   "! stone",
			want: expr.Not{Inner: static("stone")},
		},
		{
			name: "double negation",
			in:   "!!wood",
			want: expr.Not{Inner: expr.Not{Inner: static("wood")}},
		},
		{
			name: "empty input",
			in:   "",
			want: expr.Any{},
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: expr.Any{},
		},
		{
			name: "empty all",
			in:   "()",
			want: expr.All{},
		},
		{
			name: "nested groups",
			in:   " [ (wood {quantity}~5) !{category}~fish ] ",
			want: expr.Any{Children: []expr.Expression{
				expr.All{Children: []expr.Expression{
					static("wood"),
					expr.Comparable{
						Left:  expr.DynamicTerm{Attribute: expr.AttributeQuantity},
						Right: static("5"),
					},
				}},
				expr.Not{Inner: expr.Comparable{
					Left:  expr.DynamicTerm{Attribute: expr.AttributeCategory},
					Right: static("fish"),
				}},
			}},
		},
		{
			name: "unicode term",
			in:   "Café",
			want: static("Café"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(ModePartial, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ExactModeMarksEveryLeaf(t *testing.T) {
	got, err := Parse(ModeExact, "(wood !stone {name}~oak)")
	require.NoError(t, err)

	want := expr.All{Children: []expr.Expression{
		expr.NewStaticTerm("wood", true),
		expr.Not{Inner: expr.NewStaticTerm("stone", true)},
		expr.Comparable{
			Left:  expr.DynamicTerm{Attribute: expr.AttributeName},
			Right: expr.NewStaticTerm("oak", true),
			Exact: true,
		},
	}}
	assert.Equal(t, want, got)

	exact, partial := expr.LeafModes(got)
	assert.True(t, exact)
	assert.False(t, partial)
}

func TestParse_PartialModeNeverExact(t *testing.T) {
	got, err := Parse(ModePartial, "[(a {tags}~b) !c]")
	require.NoError(t, err)

	exact, partial := expr.LeafModes(got)
	assert.False(t, exact)
	assert.True(t, partial)
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code ErrorCode
		pos  int
	}{
		{"comparable without attribute", "~foo", ErrorCodeUnexpectedToken, 0},
		{"tilde without value", "{quality}~", ErrorCodeMissingOperand, 10},
		{"tilde before group", "{name}~(a)", ErrorCodeMissingOperand, 7},
		{"unclosed brace", "{name", ErrorCodeMissingClosingBrace, 0},
		{"stray closing brace", "wood}", ErrorCodeUnexpectedToken, 4},
		{"empty attribute", "{}", ErrorCodeEmptyAttribute, 0},
		{"unknown attribute", "{colour}~red", ErrorCodeUnknownAttribute, 1},
		{"space in attribute", "{na me}", ErrorCodeUnexpectedToken, 3},
		{"dangling negation", "wood !", ErrorCodeMissingOperand, 6},
		{"negation before closer", "(!)", ErrorCodeMissingOperand, 2},
		{"extra closer", "wood]", ErrorCodeTrailingInput, 4},
		{"extra closer after one rune", "a]", ErrorCodeTrailingInput, 1},
		{"extra closer mid query", "a] b", ErrorCodeTrailingInput, 1},
		{"interior mismatch", ")(", ErrorCodeUnexpectedToken, 0},
		{"mismatched closer", "(a]", ErrorCodeUnexpectedToken, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(ModePartial, tt.in)
			require.Error(t, err)
			assert.Nil(t, got)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.code, perr.Code, "message: %s", perr.Message)
			assert.Equal(t, tt.pos, perr.Position, "message: %s", perr.Message)
		})
	}
}

func TestParse_StringRoundTrip(t *testing.T) {
	inputs := []string{
		"wood",
		"[wood stone]",
		"(wood !stone)",
		"{quality}~gold",
		"[(a {tags}~b) !{name} ()]",
		"!![x y]",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := Parse(ModePartial, in)
			require.NoError(t, err)

			second, err := Parse(ModePartial, first.String())
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Exact")
	require.NoError(t, err)
	assert.Equal(t, ModeExact, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModePartial, m)

	_, err = ParseMode("fuzzy")
	assert.Error(t, err)
}

func TestFormatDiagnostic(t *testing.T) {
	_, err := Parse(ModePartial, "{quality}~")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))

	want := "search parse error: missing operand\n" +
		"     {quality}~\n" +
		"               ^ expected value after '~'\n"
	assert.Equal(t, want, FormatDiagnostic(perr))
}

func TestFormatDiagnostic_StrayCloser(t *testing.T) {
	_, err := Parse(ModePartial, "a]")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))

	want := "search parse error: trailing input\n" +
		"     a]\n" +
		"      ^ unexpected ']' without matching opener\n"
	assert.Equal(t, want, FormatDiagnostic(perr))
}
