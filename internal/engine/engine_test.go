package engine

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/item"
	"github.com/roach88/seek/internal/parser"
	"github.com/roach88/seek/internal/testutil"
)

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithIDGenerator(testutil.NewSequenceIDGenerator(""))}, opts...)
	return New(opts...)
}

func backpack() []item.Item {
	return item.Items(testutil.Backpack())
}

func TestEngine_TryParse(t *testing.T) {
	e := newTestEngine()

	got, ok := e.TryParse("(wood")
	require.True(t, ok)
	assert.Equal(t, expr.All{Children: []expr.Expression{expr.NewStaticTerm("wood", false)}}, got)

	got, ok = e.TryParse("~foo")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestEngine_TryParseExact(t *testing.T) {
	e := newTestEngine()

	got, ok := e.TryParseExact("wood")
	require.True(t, ok)
	assert.Equal(t, expr.NewStaticTerm("wood", true), got)

	// Modes are cached separately.
	partial, ok := e.TryParse("wood")
	require.True(t, ok)
	assert.Equal(t, expr.NewStaticTerm("wood", false), partial)
	assert.Equal(t, 1, e.Cache(parser.ModeExact).Len())
	assert.Equal(t, 1, e.Cache(parser.ModePartial).Len())
}

func TestEngine_TryParseMemoizes(t *testing.T) {
	e := newTestEngine()

	first, _ := e.TryParse("{quality}~gold")
	second, _ := e.TryParse("{quality}~gold")

	assert.Equal(t, first, second)
	stats := e.Cache(parser.ModePartial).Stats()
	assert.Equal(t, uint64(1), stats.Parses)
	assert.Equal(t, uint64(1), stats.Hits)
}

func TestEngine_ParseFailuresLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := newTestEngine(WithLogger(logger))

	_, ok := e.TryParse("{nope}")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "search text did not parse")
}

func TestEngine_SessionLifecycle(t *testing.T) {
	e := newTestEngine()

	a := e.OpenSession(parser.ModePartial)
	b := e.OpenSession(parser.ModeExact)
	assert.Equal(t, "session-1", a.ID())
	assert.Equal(t, "session-2", b.ID())
	assert.Equal(t, parser.ModeExact, b.Mode())

	got, ok := e.Session("session-1")
	require.True(t, ok)
	assert.Same(t, a, got)

	assert.Equal(t, []*Session{a, b}, e.Sessions())

	assert.True(t, e.CloseSession("session-1"))
	assert.False(t, e.CloseSession("session-1"))
	_, ok = e.Session("session-1")
	assert.False(t, ok)
	assert.Len(t, e.Sessions(), 1)
}

func TestSession_IndependentQueries(t *testing.T) {
	e := newTestEngine()
	p1 := e.OpenSession(parser.ModePartial)
	p2 := e.OpenSession(parser.ModePartial)

	require.True(t, p1.SetQuery("wood"))
	require.True(t, p2.SetQuery("{tags}~fish"))

	assert.Equal(t, "wood", p1.Text())
	assert.Equal(t, "{tags}~fish", p2.Text())

	assert.Equal(t, []string{"Wood", "Driftwood", "Hardwood", "Wood-Stone Hybrid"}, testutil.Names(p1.Filter(backpack())))
	assert.Equal(t, []string{"Sardine", "Largemouth Bass"}, testutil.Names(p2.Filter(backpack())))
}

func TestSession_FilterSortsByRelevance(t *testing.T) {
	e := newTestEngine()
	s := e.OpenSession(parser.ModePartial)
	require.True(t, s.SetQuery("[stone wood]"))

	assert.Equal(t, []string{
		"Wood-Stone Hybrid", "Stone", "Wood", "Driftwood", "Hardwood",
	}, testutil.Names(s.Filter(backpack())))
}

func TestSession_BlankQueryClearsFilter(t *testing.T) {
	e := newTestEngine(WithMissingPolicy(MissingMatchNone))
	s := e.OpenSession(parser.ModePartial)

	assert.True(t, s.SetQuery("   "))
	assert.True(t, s.Valid())
	_, ok := s.Expression()
	assert.False(t, ok)

	assert.Len(t, s.Filter(backpack()), len(testutil.Backpack()))
	assert.Equal(t, 0, s.Compare(backpack()[0], backpack()[1]))
}

func TestSession_MissingPolicy(t *testing.T) {
	tests := []struct {
		policy MissingPolicy
		want   bool
	}{
		{MissingMatchAll, true},
		{MissingMatchNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			e := newTestEngine(WithMissingPolicy(tt.policy))
			s := e.OpenSession(parser.ModePartial)

			assert.False(t, s.SetQuery("{quality}~"))
			assert.False(t, s.Valid())
			assert.Equal(t, "{quality}~", s.Text())

			it := backpack()[0]
			assert.Equal(t, tt.want, s.Matches(it))
			assert.Equal(t, tt.want, s.MatchesContainer(testutil.Chests()[0]))
			if tt.want {
				assert.Len(t, s.Filter(backpack()), len(testutil.Backpack()))
			} else {
				assert.Empty(t, s.Filter(backpack()))
			}
		})
	}
}

func TestSession_FilterContainers(t *testing.T) {
	e := newTestEngine()
	s := e.OpenSession(parser.ModePartial)
	require.True(t, s.SetQuery("{tags}~fish"))

	chests := testutil.Chests()
	containers := make([]item.Container, len(chests))
	for i, c := range chests {
		containers[i] = c
	}

	got := s.FilterContainers(containers)
	require.Len(t, got, 1)
	assert.Equal(t, "Fridge", got[0].Label())
}

func TestSession_ExactMode(t *testing.T) {
	e := newTestEngine()
	s := e.OpenSession(parser.ModeExact)
	require.True(t, s.SetQuery("{name}~wood"))

	assert.Equal(t, []string{"Wood"}, testutil.Names(s.Filter(backpack())))
}

func TestSession_ConcurrentSessions(t *testing.T) {
	e := newTestEngine()
	queries := []string{"wood", "{tags}~fish", "(wood !stone)", "{quality}~gold"}

	var wg sync.WaitGroup
	for _, q := range queries {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			s := e.OpenSession(parser.ModePartial)
			defer e.CloseSession(s.ID())
			for i := 0; i < 50; i++ {
				assert.True(t, s.SetQuery(q))
				assert.Equal(t, q, s.Text())
				s.Filter(backpack())
			}
		}(q)
	}
	wg.Wait()

	assert.Empty(t, e.Sessions())
	assert.Equal(t, uint64(len(queries)), e.Cache(parser.ModePartial).Stats().Parses)
}
