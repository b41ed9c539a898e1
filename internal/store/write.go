package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/item"
)

// Import replaces the stored snapshot with loose items and containers in a
// single transaction. Records and chests without an ID get a positional one
// ("loose/0", "<chest id>/0", "chest/0").
func (s *Store) Import(ctx context.Context, loose []*item.Record, containers []*item.Chest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// Cascades to items and item_tags.
	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("import: clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM containers`); err != nil {
		return fmt.Errorf("import: clear containers: %w", err)
	}

	w := &writer{tx: tx}
	if err := w.writeItems(ctx, sql.NullString{}, "loose", loose); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	for i, c := range containers {
		if err := w.writeContainer(ctx, c, i); err != nil {
			return fmt.Errorf("import: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import: commit: %w", err)
	}
	return nil
}

// WriteContainer inserts a container or replaces an existing one with the
// same ID, along with all of its items.
func (s *Store) WriteContainer(ctx context.Context, c *item.Chest) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("write container: id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write container: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM containers WHERE id = ?`, c.ID); err != nil {
		return fmt.Errorf("write container: %w", err)
	}

	w := &writer{tx: tx}
	if err := w.writeContainer(ctx, c, 0); err != nil {
		return fmt.Errorf("write container: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write container: commit: %w", err)
	}
	return nil
}

// writer assigns seq values and inserts rows within one transaction.
type writer struct {
	tx  *sql.Tx
	seq int64
}

func (w *writer) nextSeq(ctx context.Context) (int64, error) {
	if w.seq == 0 {
		// Continue after rows left by earlier writes.
		var maxSeq sql.NullInt64
		err := w.tx.QueryRowContext(ctx, `
			SELECT MAX(seq) FROM (SELECT seq FROM items UNION ALL SELECT seq FROM containers)
		`).Scan(&maxSeq)
		if err != nil {
			return 0, fmt.Errorf("read seq: %w", err)
		}
		w.seq = maxSeq.Int64
	}
	w.seq++
	return w.seq, nil
}

func (w *writer) writeContainer(ctx context.Context, c *item.Chest, index int) error {
	if c == nil {
		return nil
	}

	id := c.ID
	if id == "" {
		id = fmt.Sprintf("chest/%d", index)
	}

	seq, err := w.nextSeq(ctx)
	if err != nil {
		return err
	}

	_, err = w.tx.ExecContext(ctx, `
		INSERT INTO containers (id, label, label_fold, seq)
		VALUES (?, ?, ?, ?)
	`, id, c.ChestName, expr.Fold(c.ChestName), seq)
	if err != nil {
		return fmt.Errorf("insert container %q: %w", id, err)
	}

	return w.writeItems(ctx, sql.NullString{String: id, Valid: true}, id, c.Contents)
}

func (w *writer) writeItems(ctx context.Context, containerID sql.NullString, prefix string, records []*item.Record) error {
	for i, r := range records {
		if r == nil {
			continue
		}

		id := r.ID
		if id == "" {
			id = fmt.Sprintf("%s/%d", prefix, i)
		}

		seq, err := w.nextSeq(ctx)
		if err != nil {
			return err
		}

		_, err = w.tx.ExecContext(ctx, `
			INSERT INTO items
			(id, container_id, name, name_fold, category, category_fold, quantity, quality, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			id,
			containerID,
			r.ItemName,
			expr.Fold(r.ItemName),
			r.ItemCategory,
			expr.Fold(r.ItemCategory),
			r.ItemQuantity,
			int(r.ItemQuality),
			seq,
		)
		if err != nil {
			return fmt.Errorf("insert item %q: %w", id, err)
		}

		for pos, tag := range r.ItemTags {
			_, err := w.tx.ExecContext(ctx, `
				INSERT INTO item_tags (item_id, position, tag, tag_fold)
				VALUES (?, ?, ?, ?)
			`, id, pos, tag, expr.Fold(tag))
			if err != nil {
				return fmt.Errorf("insert tag %q for item %q: %w", tag, id, err)
			}
		}
	}
	return nil
}
