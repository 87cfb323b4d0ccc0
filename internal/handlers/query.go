// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"

	"inkblog/internal/markdown"
	"inkblog/internal/models"
	"inkblog/internal/searchclient"
	"inkblog/internal/store"
)

// listingSummaryLen is the excerpt length for posts without one.
const listingSummaryLen = 200

// termLookup resolves category and tag slugs of a search tuple.
type termLookup struct {
	categories *store.CategoryStore
	tags       *store.TagStore
}

// postQuery turns a search tuple into a store query. Unknown category or
// tag slugs are ignored rather than matching nothing.
func (l termLookup) postQuery(ctx context.Context, q searchclient.Query, pageSize int) (store.PostQuery, error) {
	pq := store.PostQuery{Text: q.Text, Page: q.Page, PageSize: pageSize}
	if q.Category != "" {
		c, err := l.categories.FindBySlug(ctx, q.Category)
		if err != nil {
			return pq, err
		}
		if c != nil {
			pq.CategoryID = &c.ID
		}
	}
	if q.Tag != "" {
		t, err := l.tags.FindBySlug(ctx, q.Tag)
		if err != nil {
			return pq, err
		}
		if t != nil {
			pq.TagID = &t.ID
		}
	}
	return pq, nil
}

// listed strips post bodies for listings, keeping a summary as excerpt.
// It never returns nil so JSON encodes an empty array.
func listed(posts []models.Post) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.Excerpt == nil || *p.Excerpt == "" {
			s := markdown.Summary(p.Content, listingSummaryLen)
			p.Excerpt = &s
		}
		p.Content = ""
		out = append(out, p)
	}
	return out
}
