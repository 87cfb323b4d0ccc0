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

// TagStore manages tags in the database.
type TagStore struct {
	db *sql.DB
}

// NewTagStore returns a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `id, name, slug, description, created_at`

func scanTag(scanner interface{ Scan(...any) error }) (*models.Tag, error) {
	var t models.Tag
	if err := scanner.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns every tag ordered by name.
func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var items []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// PublishedCounts returns tag id → number of distinct published posts.
func (s *TagStore) PublishedCounts(ctx context.Context) (map[int64]int, error) {
	return countQuery(ctx, s.db, `
		SELECT pt.tag_id, COUNT(DISTINCT p.id)
		FROM post_tags pt
		JOIN posts p ON p.id = pt.post_id
		WHERE p.status = 'published'
		GROUP BY pt.tag_id
	`)
}

// FindByID retrieves a tag by ID. Returns nil if not found.
func (s *TagStore) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by id: %w", err)
	}
	return t, nil
}

// FindBySlug retrieves a tag by slug. Returns nil if not found.
func (s *TagStore) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by slug: %w", err)
	}
	return t, nil
}

// Create inserts a new tag and returns it.
func (s *TagStore) Create(ctx context.Context, t *models.Tag) (*models.Tag, error) {
	result, err := scanTag(s.db.QueryRowContext(ctx, `
		INSERT INTO tags (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING `+tagColumns,
		t.Name, t.Slug, t.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return result, nil
}

// Update modifies an existing tag.
func (s *TagStore) Update(ctx context.Context, t *models.Tag) error {
	_, err := s.db.ExecContext(ctx, `UPDATE tags SET name = $1, slug = $2, description = $3 WHERE id = $4`,
		t.Name, t.Slug, t.Description, t.ID)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

// Delete removes a tag. Post associations cascade.
func (s *TagStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
