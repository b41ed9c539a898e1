package engine

import (
	"sync"

	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/item"
	"github.com/roach88/seek/internal/match"
	"github.com/roach88/seek/internal/parser"
)

type queryState int

const (
	stateCleared queryState = iota // blank query: no filter
	stateActive                    // parsed query
	stateMissing                   // query does not parse
)

// Session holds one search box's query: the text as typed and the tree it
// parsed to.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Session struct {
	id     string
	mode   parser.Mode
	engine *Engine

	mu    sync.RWMutex
	text  string
	expr  expr.Expression
	state queryState
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Mode returns the leaf mode used to parse this session's queries.
func (s *Session) Mode() parser.Mode {
	return s.mode
}

// SetQuery replaces the session's query text. It returns false when the
// text does not parse; the session then follows the engine's
// MissingPolicy until the next SetQuery. Blank text clears the filter.
func (s *Session) SetQuery(text string) bool {
	var (
		e     expr.Expression
		state = stateCleared
	)
	if !isBlank(text) {
		parsed, ok := s.engine.TryParseMode(s.mode, text)
		if ok {
			e, state = parsed, stateActive
		} else {
			state = stateMissing
		}
	}

	s.mu.Lock()
	s.text, s.expr, s.state = text, e, state
	s.mu.Unlock()

	s.engine.logger.Debug("session query set",
		"session", s.id,
		"text", text,
		"valid", state != stateMissing,
	)
	return state != stateMissing
}

// Text returns the query as typed.
func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Expression returns the parsed query. ok is false when the query is blank
// or does not parse.
func (s *Session) Expression() (e expr.Expression, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expr, s.state == stateActive
}

// Valid reports whether the current query is blank or parses.
func (s *Session) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state != stateMissing
}

func (s *Session) snapshot() (expr.Expression, queryState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expr, s.state
}

// fallback is the match result when there is no usable tree.
func (s *Session) fallback(state queryState) bool {
	if state == stateCleared {
		return true
	}
	return s.engine.missing == MissingMatchAll
}

// Matches reports whether an item passes the session's query.
func (s *Session) Matches(it item.Item) bool {
	e, state := s.snapshot()
	if state != stateActive {
		return s.fallback(state)
	}
	return match.Matches(e, it)
}

// MatchesContainer reports whether a container passes the session's query.
func (s *Session) MatchesContainer(c item.Container) bool {
	e, state := s.snapshot()
	if state != stateActive {
		return s.fallback(state)
	}
	return match.MatchesContainer(e, c)
}

// Compare orders two items by relevance to the session's query. Without a
// usable tree every pair compares equal.
func (s *Session) Compare(x, y item.Item) int {
	e, state := s.snapshot()
	if state != stateActive {
		return 0
	}
	return match.Compare(e, x, y)
}

// Filter returns the items passing the query, most relevant first.
func (s *Session) Filter(items []item.Item) []item.Item {
	e, state := s.snapshot()
	if state != stateActive {
		if !s.fallback(state) {
			return []item.Item{}
		}
		return append([]item.Item(nil), items...)
	}

	out := match.Filter(e, items)
	match.SortItems(e, out)
	return out
}

// FilterContainers returns the containers passing the query in their
// original order.
func (s *Session) FilterContainers(containers []item.Container) []item.Container {
	e, state := s.snapshot()
	if state != stateActive {
		if !s.fallback(state) {
			return []item.Container{}
		}
		return append([]item.Container(nil), containers...)
	}
	return match.FilterContainers(e, containers)
}
