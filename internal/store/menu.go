// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"inkblog/internal/models"
)

// MenuStore manages navigation menu rows.
type MenuStore struct {
	db *sql.DB
}

// NewMenuStore returns a new MenuStore.
func NewMenuStore(db *sql.DB) *MenuStore {
	return &MenuStore{db: db}
}

const menuColumns = `id, name, url, is_external, parent_id, sort_order, is_active`

func scanMenu(scanner interface{ Scan(...any) error }) (*models.MenuItem, error) {
	var m models.MenuItem
	if err := scanner.Scan(&m.ID, &m.Name, &m.URL, &m.IsExternal, &m.ParentID, &m.Order, &m.IsActive); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MenuStore) list(ctx context.Context, query string) ([]models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// ListActive returns every active menu item, roots first, then by sort order.
func (s *MenuStore) ListActive(ctx context.Context) ([]models.MenuItem, error) {
	return s.list(ctx, `SELECT `+menuColumns+` FROM menus
		WHERE is_active
		ORDER BY parent_id NULLS FIRST, sort_order, id`)
}

// ListAll returns every menu item including inactive ones, for the admin API.
func (s *MenuStore) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	return s.list(ctx, `SELECT `+menuColumns+` FROM menus
		ORDER BY parent_id NULLS FIRST, sort_order, id`)
}

// FindByID retrieves a menu item by ID. Returns nil if not found.
func (s *MenuStore) FindByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = $1`, id)
	m, err := scanMenu(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find menu by id: %w", err)
	}
	return m, nil
}

// Create inserts a new menu item and returns it.
func (s *MenuStore) Create(ctx context.Context, m *models.MenuItem) (*models.MenuItem, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO menus (name, url, is_external, parent_id, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+menuColumns,
		m.Name, m.URL, m.IsExternal, m.ParentID, m.Order, m.IsActive,
	)
	result, err := scanMenu(row)
	if err != nil {
		return nil, fmt.Errorf("create menu: %w", err)
	}
	return result, nil
}

// Update modifies an existing menu item.
func (s *MenuStore) Update(ctx context.Context, m *models.MenuItem) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE menus SET
			name = $1, url = $2, is_external = $3, parent_id = $4,
			sort_order = $5, is_active = $6
		WHERE id = $7
	`, m.Name, m.URL, m.IsExternal, m.ParentID, m.Order, m.IsActive, m.ID)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	return nil
}

// Delete removes a menu item. Children become roots (ON DELETE SET NULL).
func (s *MenuStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM menus WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	return nil
}
