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

// recentPostsLimit is the number of posts listed on the dashboard.
const recentPostsLimit = 5

// StatsStore computes dashboard counters.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore returns a new StatsStore.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// Stats returns totals across all posts (any status), categories and tags,
// the summed view count and the most recent published posts.
func (s *StatsStore) Stats(ctx context.Context) (*models.Stats, error) {
	st := &models.Stats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM tags),
			(SELECT COALESCE(SUM(views), 0) FROM posts)
	`).Scan(&st.Posts, &st.Categories, &st.Tags, &st.Views)
	if err != nil {
		return nil, fmt.Errorf("count stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, published_at, views
		FROM posts WHERE status = 'published'
		ORDER BY published_at DESC NULLS LAST, id DESC
		LIMIT $1`, recentPostsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	defer rows.Close()

	st.RecentPosts = []models.RecentPost{}
	for rows.Next() {
		var r models.RecentPost
		if err := rows.Scan(&r.ID, &r.Title, &r.PublishedAt, &r.Views); err != nil {
			return nil, fmt.Errorf("scan recent post: %w", err)
		}
		st.RecentPosts = append(st.RecentPosts, r)
	}
	return st, rows.Err()
}
