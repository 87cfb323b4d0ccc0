// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"inkblog/internal/models"
)

// Listing size limits.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PostStore handles all post-related database operations, including the
// post_categories and post_tags associations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `p.id, p.title, p.slug, p.content, p.excerpt, p.cover_image, p.status,
	p.views, p.published_at, p.created_at, p.updated_at`

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.CoverImage, &p.Status,
		&p.Views, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PostQuery selects a page of posts. Zero values mean "no filter".
type PostQuery struct {
	Text          string
	CategoryID    *int64
	TagID         *int64
	Page          int
	PageSize      int
	IncludeDrafts bool
}

// normalize clamps paging values into their valid ranges.
func (q PostQuery) normalize() PostQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Text = strings.TrimSpace(q.Text)
	return q
}

// escapeLike escapes LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(s)
}

// where builds the WHERE clause and its arguments for a query.
func (q PostQuery) where() (string, []any) {
	var conds []string
	var args []any
	if !q.IncludeDrafts {
		conds = append(conds, "p.status = 'published'")
	}
	if q.Text != "" {
		args = append(args, "%"+escapeLike(q.Text)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.excerpt ILIKE $%d OR p.content ILIKE $%d)", n, n, n))
	}
	if q.CategoryID != nil {
		args = append(args, *q.CategoryID)
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM post_categories pc WHERE pc.post_id = p.id AND pc.category_id = $%d)", len(args)))
	}
	if q.TagID != nil {
		args = append(args, *q.TagID)
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = p.id AND pt.tag_id = $%d)", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// Search returns one page of posts matching the query, newest first, with
// their categories and tags attached. A page past the end yields no posts
// but still reports the real totals.
func (s *PostStore) Search(ctx context.Context, q PostQuery) ([]models.Post, models.Pagination, error) {
	q = q.normalize()
	where, args := q.where()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p `+where, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count posts: %w", err)
	}
	page := models.NewPagination(q.Page, q.PageSize, total)

	args = append(args, page.PageSize, page.Offset())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM posts p %s
		ORDER BY p.published_at DESC NULLS LAST, p.id DESC
		LIMIT $%d OFFSET $%d`, postColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, page, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, page, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, page, err
	}

	if err := s.attachTerms(ctx, posts); err != nil {
		return nil, page, err
	}
	return posts, page, nil
}

// attachTerms batch-loads categories and tags for the given posts.
func (s *PostStore) attachTerms(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	index := make(map[int64]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		index[p.ID] = i
	}

	cats, err := termsFor(ctx, s.db, `
		SELECT pc.post_id, c.id, c.name, c.slug
		FROM post_categories pc JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = ANY($1)
		ORDER BY c.sort_order, c.id`, ids)
	if err != nil {
		return fmt.Errorf("load post categories: %w", err)
	}
	tags, err := termsFor(ctx, s.db, `
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name, t.id`, ids)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}

	for postID, refs := range cats {
		posts[index[postID]].Categories = refs
	}
	for postID, refs := range tags {
		posts[index[postID]].Tags = refs
	}
	return nil
}

func termsFor(ctx context.Context, db *sql.DB, query string, ids []int64) (map[int64][]models.TermRef, error) {
	rows, err := db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]models.TermRef)
	for rows.Next() {
		var postID int64
		var ref models.TermRef
		if err := rows.Scan(&postID, &ref.ID, &ref.Name, &ref.Slug); err != nil {
			return nil, err
		}
		out[postID] = append(out[postID], ref)
	}
	return out, rows.Err()
}

func (s *PostStore) findOne(ctx context.Context, where string, arg any) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts p WHERE `+where, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	posts := []models.Post{*p}
	if err := s.attachTerms(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// FindByID retrieves a post of any status. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	p, err := s.findOne(ctx, "p.id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published post by slug. Returns nil if not
// found or not published.
func (s *PostStore) FindPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	p, err := s.findOne(ctx, "p.slug = $1 AND p.status = 'published'", slug)
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a post together with its category and tag associations.
func (s *PostStore) Create(ctx context.Context, p *models.Post, categoryIDs, tagIDs []int64) (*models.Post, error) {
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, content, excerpt, cover_image, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImage, p.Status, p.PublishedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := replaceTerms(ctx, tx, id, categoryIDs, tagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit post: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update modifies a post and replaces its associations.
func (s *PostStore) Update(ctx context.Context, p *models.Post, categoryIDs, tagIDs []int64) error {
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4, cover_image = $5,
			status = $6, published_at = $7, updated_at = NOW()
		WHERE id = $8
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImage, p.Status, p.PublishedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	if err := replaceTerms(ctx, tx, p.ID, categoryIDs, tagIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceTerms(ctx context.Context, tx *sql.Tx, postID int64, categoryIDs, tagIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post categories: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, id := range categoryIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, postID, id); err != nil {
			return fmt.Errorf("link post category %d: %w", id, err)
		}
	}
	for _, id := range tagIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, postID, id); err != nil {
			return fmt.Errorf("link post tag %d: %w", id, err)
		}
	}
	return nil
}

// Delete removes a post by ID. Associations cascade.
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter of a post.
func (s *PostStore) IncrementViews(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}
