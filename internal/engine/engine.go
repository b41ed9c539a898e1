package engine

import (
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/roach88/seek/internal/cache"
	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/parser"
)

// MissingPolicy decides what a session matches while its query does not
// parse.
type MissingPolicy int

const (
	// MissingMatchAll shows everything, as if no query was typed.
	MissingMatchAll MissingPolicy = iota
	// MissingMatchNone hides everything until the query is fixed.
	MissingMatchNone
)

func (p MissingPolicy) String() string {
	if p == MissingMatchNone {
		return "none"
	}
	return "all"
}

// Engine owns the shared expression caches and the per-session query state.
//
// Caches are shared by every session: the same text always yields the same
// tree, so sessions typing the same query reuse one parse. Query text and
// the parsed tree are kept per session, never globally, because two sessions
// (split-screen players, several open menus) evaluate different queries in
// the same tick.
//
// Thread-safety: all methods are safe for concurrent use.
type Engine struct {
	caches    [2]*cache.Cache // indexed by parser.Mode
	sessions  *xsync.MapOf[string, *Session]
	ids       IDGenerator
	missing   MissingPolicy
	logger    *slog.Logger
	cacheSize int
}

// Option configures an Engine.
type Option func(*Engine)

// WithCacheSize bounds each mode's cache. Default: cache.DefaultSize.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		e.cacheSize = n
	}
}

// WithMissingPolicy sets the policy for sessions whose query does not parse.
// Default: MissingMatchAll.
func WithMissingPolicy(p MissingPolicy) Option {
	return func(e *Engine) {
		e.missing = p
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithIDGenerator sets the session id generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		sessions: xsync.NewMapOf[string, *Session](),
		ids:      UUIDv7Generator{},
		missing:  MissingMatchAll,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	for _, mode := range []parser.Mode{parser.ModePartial, parser.ModeExact} {
		e.caches[mode] = cache.New(parser.New(mode).Parse, e.cacheSize, e.logger.With("mode", mode.String()))
	}

	return e
}

// TryParse returns the partial-mode expression for text, or false when text
// does not parse.
func (e *Engine) TryParse(text string) (expr.Expression, bool) {
	return e.TryParseMode(parser.ModePartial, text)
}

// TryParseExact is TryParse for exact-mode leaves.
func (e *Engine) TryParseExact(text string) (expr.Expression, bool) {
	return e.TryParseMode(parser.ModeExact, text)
}

// TryParseMode parses text in the given mode through the shared cache.
func (e *Engine) TryParseMode(mode parser.Mode, text string) (expr.Expression, bool) {
	return e.Cache(mode).Lookup(text)
}

// Cache returns the cache for a mode.
func (e *Engine) Cache(mode parser.Mode) *cache.Cache {
	if mode != parser.ModeExact {
		mode = parser.ModePartial
	}
	return e.caches[mode]
}

// MissingPolicy returns the engine's missing-expression policy.
func (e *Engine) MissingPolicy() MissingPolicy {
	return e.missing
}

// OpenSession registers a new session with an empty query.
func (e *Engine) OpenSession(mode parser.Mode) *Session {
	s := &Session{
		id:     e.ids.Generate(),
		mode:   mode,
		engine: e,
		state:  stateCleared,
	}
	e.sessions.Store(s.id, s)
	e.logger.Debug("session opened", "session", s.id, "mode", mode.String())
	return s
}

// Session returns an open session by id.
func (e *Engine) Session(id string) (*Session, bool) {
	return e.sessions.Load(id)
}

// CloseSession forgets a session. Returns false if it was not open.
func (e *Engine) CloseSession(id string) bool {
	_, ok := e.sessions.LoadAndDelete(id)
	if ok {
		e.logger.Debug("session closed", "session", id)
	}
	return ok
}

// Sessions returns the open sessions ordered by id.
func (e *Engine) Sessions() []*Session {
	out := make([]*Session, 0, e.sessions.Size())
	e.sessions.Range(func(_ string, s *Session) bool {
		out = append(out, s)
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].id < out[j].id
	})
	return out
}

// isBlank reports whether text clears the query.
func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
