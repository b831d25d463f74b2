package store

import (
	"context"
	"fmt"
)

// SelectionItem is one entry of the selection list.
type SelectionItem struct {
	ElementID   string `json:"element_id"`
	Label       string `json:"label,omitempty"`
	DataClassID string `json:"data_class_id,omitempty"`
	DataModelID string `json:"data_model_id,omitempty"`
}

// AddSelection appends an element to the selection list.
// Uses ON CONFLICT(element_id) DO NOTHING - adding a listed element keeps
// its original position and details. Returns whether a row was added.
func (s *Store) AddSelection(ctx context.Context, item SelectionItem) (bool, error) {
	if item.ElementID == "" {
		return false, fmt.Errorf("add selection: empty element id")
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO selection_items (element_id, label, data_class_id, data_model_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(element_id) DO NOTHING
	`, item.ElementID, item.Label, item.DataClassID, item.DataModelID)
	if err != nil {
		return false, fmt.Errorf("add selection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add selection: %w", err)
	}
	return n > 0, nil
}

// RemoveSelection removes an element from the selection list.
// Returns ErrNotFound if the element is not listed.
func (s *Store) RemoveSelection(ctx context.Context, elementID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM selection_items WHERE element_id = ?`, elementID)
	if err != nil {
		return fmt.Errorf("remove selection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove selection: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("remove selection %q: %w", elementID, ErrNotFound)
	}
	return nil
}

// ClearSelection empties the selection list and returns how many items
// were removed.
func (s *Store) ClearSelection(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM selection_items`)
	if err != nil {
		return 0, fmt.Errorf("clear selection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear selection: %w", err)
	}
	return int(n), nil
}

// ListSelection returns the selection list in insertion order.
func (s *Store) ListSelection(ctx context.Context) ([]SelectionItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT element_id, label, data_class_id, data_model_id
		FROM selection_items
		ORDER BY seq ASC, element_id ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("list selection: %w", err)
	}
	defer rows.Close()

	items := []SelectionItem{}
	for rows.Next() {
		var item SelectionItem
		if err := rows.Scan(&item.ElementID, &item.Label, &item.DataClassID, &item.DataModelID); err != nil {
			return nil, fmt.Errorf("list selection: scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list selection: %w", err)
	}
	return items, nil
}

// HasSelection reports whether an element is on the selection list.
func (s *Store) HasSelection(ctx context.Context, elementID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM selection_items WHERE element_id = ?)`,
		elementID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has selection: %w", err)
	}
	return exists, nil
}
