// Package cache memoizes parsed search expressions by their raw text.
//
// Players retype or re-render the same query every frame, so each distinct
// text is parsed once and the tree (or the fact that it does not parse) is
// kept. Failed parses are cached too: an invalid query is not reparsed on
// every keystroke.
package cache

import (
	"io"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/roach88/seek/internal/expr"
)

// DefaultSize is the number of distinct query texts kept when no size is
// configured.
const DefaultSize = 1024

// ParseFunc parses raw search text. The parser package's (*Parser).Parse
// satisfies it.
type ParseFunc func(text string) (expr.Expression, error)

// Entry is a cached parse result. Err is set for text that does not parse;
// such an entry is the negative marker and is returned as-is on later
// lookups.
type Entry struct {
	Expr expr.Expression
	Err  error
}

// Valid reports whether the entry holds a usable expression.
func (e Entry) Valid() bool {
	return e.Err == nil && e.Expr != nil
}

// Stats counts cache activity since creation or the last Purge.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Parses  uint64 `json:"parses"`
	Invalid uint64 `json:"invalid"`
}

// Cache is a bounded LRU from raw text to Entry.
//
// Keys are the text exactly as typed, before repair. Concurrent misses on
// the same key share one parse.
//
// Thread-safety: all methods are safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, Entry]
	parse   ParseFunc
	group   singleflight.Group
	logger  *slog.Logger

	hits    atomic.Uint64
	misses  atomic.Uint64
	parses  atomic.Uint64
	invalid atomic.Uint64
}

// New creates a cache holding at most size entries. size <= 0 selects
// DefaultSize. A nil logger discards parse diagnostics.
func New(parse ParseFunc, size int, logger *slog.Logger) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// lru.New only fails for a non-positive size.
	entries, err := lru.New[string, Entry](size)
	if err != nil {
		panic(err)
	}

	return &Cache{
		entries: entries,
		parse:   parse,
		logger:  logger,
	}
}

// Entry returns the cached result for text, parsing and storing it on a
// miss.
func (c *Cache) Entry(text string) Entry {
	if e, ok := c.entries.Get(text); ok {
		c.hits.Add(1)
		return e
	}
	c.misses.Add(1)

	v, _, _ := c.group.Do(text, func() (any, error) {
		// Another caller may have stored it while we waited for the group.
		if e, ok := c.entries.Peek(text); ok {
			return e, nil
		}

		c.parses.Add(1)
		parsed, err := c.parse(text)
		e := Entry{Expr: parsed, Err: err}
		if err != nil {
			c.invalid.Add(1)
			c.logger.Debug("search text did not parse", "text", text, "error", err)
		}
		c.entries.Add(text, e)
		return e, nil
	})
	return v.(Entry)
}

// Lookup returns the expression for text, or false when text does not
// parse.
func (c *Cache) Lookup(text string) (expr.Expression, bool) {
	e := c.Entry(text)
	if !e.Valid() {
		return nil, false
	}
	return e.Expr, true
}

// Contains reports whether text has a cached entry, without touching
// recency.
func (c *Cache) Contains(text string) bool {
	return c.entries.Contains(text)
}

// Len returns the number of cached entries, valid and invalid.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry and resets the counters.
func (c *Cache) Purge() {
	c.entries.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
	c.parses.Store(0)
	c.invalid.Store(0)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Parses:  c.parses.Load(),
		Invalid: c.invalid.Load(),
	}
}
