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

// SortOrderStep is the gap left between sibling categories so that new
// entries can be slotted in without renumbering.
const SortOrderStep = 10

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, parent_id, sort_order, created_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description,
		&c.ParentID, &c.Order, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every category ordered by sort_order. PostCount is left at zero.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// PublishedCounts returns category id → number of distinct published posts.
// Categories without published posts are absent from the map.
func (s *CategoryStore) PublishedCounts(ctx context.Context) (map[int64]int, error) {
	return countQuery(ctx, s.db, `
		SELECT pc.category_id, COUNT(DISTINCT p.id)
		FROM post_categories pc
		JOIN posts p ON p.id = pc.post_id
		WHERE p.status = 'published'
		GROUP BY pc.category_id
	`)
}

// countQuery scans (id, count) rows into a map.
func countQuery(ctx context.Context, db *sql.DB, query string) (map[int64]int, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count published posts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. The sort order is placed
// one step after the last sibling under the same parent.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	order, err := s.NextSortOrder(ctx, c.ParentID)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, parent_id, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.ParentID, order,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, description = $3, parent_id = $4, sort_order = $5
		WHERE id = $6
	`, c.Name, c.Slug, c.Description, c.ParentID, c.Order, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Children are re-parented (ON DELETE SET NULL).
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ReorderItem represents a single item in a reorder request.
type ReorderItem struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parentId"`
	Order    int    `json:"order"`
}

// Reorder updates sort_order and parent_id for multiple categories in a transaction.
func (s *CategoryStore) Reorder(ctx context.Context, items []ReorderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE categories SET parent_id = $1, sort_order = $2 WHERE id = $3`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item.ParentID, item.Order, item.ID); err != nil {
			return fmt.Errorf("reorder category %d: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// NextSortOrder returns the sort_order for a new category under parentID:
// the highest sibling order plus SortOrderStep, or SortOrderStep when the
// parent has no children yet.
func (s *CategoryStore) NextSortOrder(ctx context.Context, parentID *int64) (int, error) {
	var maxOrder sql.NullInt64
	var err error
	if parentID == nil {
		err = s.db.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories WHERE parent_id IS NULL`).Scan(&maxOrder)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM categories WHERE parent_id = $1`, *parentID).Scan(&maxOrder)
	}
	if err != nil {
		return 0, fmt.Errorf("next sort order: %w", err)
	}
	return nextOrder(maxOrder), nil
}

func nextOrder(max sql.NullInt64) int {
	if max.Valid {
		return int(max.Int64) + SortOrderStep
	}
	return SortOrderStep
}
