package store

import (
	"context"
	"fmt"

	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/item"
	"github.com/roach88/seek/internal/match"
	"github.com/roach88/seek/internal/querysql"
)

// SearchItems returns the stored items matching e, most relevant first.
// Items the expression does not discriminate keep insertion order.
func (s *Store) SearchItems(ctx context.Context, e expr.Expression) ([]StoredItem, error) {
	query, params, err := querysql.NewCompiler().Compile(e)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	if err := s.attachTags(ctx, items); err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	match.SortItems(e, items)
	return items, nil
}

// SearchContainers returns the containers matching e in insertion order.
func (s *Store) SearchContainers(ctx context.Context, e expr.Expression) ([]*item.Chest, error) {
	if e == nil {
		return nil, fmt.Errorf("search containers: nil expression")
	}

	chests, err := s.ListContainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("search containers: %w", err)
	}
	return match.FilterContainers(e, chests), nil
}
