package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/seek/internal/item"
)

// tagBatchSize bounds the number of ? placeholders in one tag query.
const tagBatchSize = 500

// StoredItem is an item row together with the container holding it.
// ContainerID is empty for loose items.
type StoredItem struct {
	*item.Record
	ContainerID string `json:"container_id,omitempty"`
}

// ListItems returns every stored item, loose and contained.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListItems(ctx context.Context) ([]StoredItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, container_id, name, category, quantity, quality
		FROM items
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachTags(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListContainers returns every container with its contents.
// Containers and their items are ordered by seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if there are no containers.
func (s *Store) ListContainers(ctx context.Context) ([]*item.Chest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label
		FROM containers
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("query containers: %w", err)
	}
	defer rows.Close()

	chests := []*item.Chest{}
	byID := make(map[string]*item.Chest)
	for rows.Next() {
		c := &item.Chest{}
		if err := rows.Scan(&c.ID, &c.ChestName); err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		chests = append(chests, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate containers: %w", err)
	}
	rows.Close()

	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if c, ok := byID[it.ContainerID]; ok {
			c.Contents = append(c.Contents, it.Record)
		}
	}

	return chests, nil
}

// Counts returns the number of stored containers and items.
func (s *Store) Counts(ctx context.Context) (containers, items int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM containers), (SELECT COUNT(*) FROM items)
	`).Scan(&containers, &items)
	if err != nil {
		return 0, 0, fmt.Errorf("count rows: %w", err)
	}
	return containers, items, nil
}

// scanItems reads rows of (id, container_id, name, category, quantity,
// quality) and closes them.
func scanItems(rows *sql.Rows) ([]StoredItem, error) {
	defer rows.Close()

	items := []StoredItem{}
	for rows.Next() {
		var (
			r         item.Record
			container sql.NullString
			quality   int
		)
		if err := rows.Scan(&r.ID, &container, &r.ItemName, &r.ItemCategory, &r.ItemQuantity, &quality); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		r.ItemQuality = item.Quality(quality)
		items = append(items, StoredItem{Record: &r, ContainerID: container.String})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// attachTags loads tags for items in position order.
func (s *Store) attachTags(ctx context.Context, items []StoredItem) error {
	byID := make(map[string]*item.Record, len(items))
	ids := make([]any, 0, len(items))
	for _, it := range items {
		byID[it.ID] = it.Record
		ids = append(ids, it.ID)
	}

	for start := 0; start < len(ids); start += tagBatchSize {
		batch := ids[start:min(start+tagBatchSize, len(ids))]
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(batch)), ", ")

		rows, err := s.db.QueryContext(ctx, `
			SELECT item_id, tag
			FROM item_tags
			WHERE item_id IN (`+placeholders+`)
			ORDER BY item_id ASC COLLATE BINARY, position ASC
		`, batch...)
		if err != nil {
			return fmt.Errorf("query tags: %w", err)
		}

		for rows.Next() {
			var id, tag string
			if err := rows.Scan(&id, &tag); err != nil {
				rows.Close()
				return fmt.Errorf("scan tag: %w", err)
			}
			if r, ok := byID[id]; ok {
				r.ItemTags = append(r.ItemTags, tag)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("iterate tags: %w", err)
		}
		rows.Close()
	}
	return nil
}
