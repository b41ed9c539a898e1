// Package store provides SQLite-backed storage for inventory snapshots.
//
// A snapshot holds containers (chests, fridges) and the items inside them,
// plus loose items that belong to no container (the player's backpack).
//
// # Search
//
// SearchItems compiles an expression with querysql and runs it in SQLite,
// then orders the hits with the same relevance comparator used in memory.
// SearchContainers loads containers and filters them in memory, since a
// container matches on its own label as well as its contents.
//
// # Folded Columns
//
// Names, categories, labels and tags are stored twice: as written and
// folded with expr.Fold. Generated SQL only compares folded text, so
// results are identical to the in-memory matcher.
//
// # Deterministic Ordering
//
//   - All ordering uses seq INTEGER (insertion order), never timestamps
//   - All queries MUST include: ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
