// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy lists the categories and tags shown in the sidebar and
// search filters, each with the number of published posts it holds.
// Entities without published posts are left out.
package taxonomy

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"inkblog/internal/models"
)

// CategorySource reads categories and their published post counts.
type CategorySource interface {
	List(ctx context.Context) ([]models.Category, error)
	PublishedCounts(ctx context.Context) (map[int64]int, error)
}

// TagSource reads tags and their published post counts.
type TagSource interface {
	List(ctx context.Context) ([]models.Tag, error)
	PublishedCounts(ctx context.Context) (map[int64]int, error)
}

// Aggregator combines entity rows with their published post counts.
type Aggregator struct {
	categories CategorySource
	tags       TagSource
}

// NewAggregator returns an Aggregator reading from the given sources.
func NewAggregator(categories CategorySource, tags TagSource) *Aggregator {
	return &Aggregator{categories: categories, tags: tags}
}

// ListCategories returns categories that hold at least one published post,
// ordered by their sort order.
func (a *Aggregator) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := a.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	counts, err := a.categories.PublishedCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count category posts: %w", err)
	}
	return AttachCategoryCounts(rows, counts), nil
}

// ListTags returns tags that hold at least one published post, ordered by
// name.
func (a *Aggregator) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := a.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	counts, err := a.tags.PublishedCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tag posts: %w", err)
	}
	return AttachTagCounts(rows, counts), nil
}

// AttachCategoryCounts sets PostCount from counts, drops categories with no
// published posts and sorts the rest by Order. Counts are not summed up the
// category hierarchy.
func AttachCategoryCounts(rows []models.Category, counts map[int64]int) []models.Category {
	out := make([]models.Category, 0, len(rows))
	for _, c := range rows {
		c.PostCount = counts[c.ID]
		if c.PostCount > 0 {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Category) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

// AttachTagCounts sets PostCount from counts, drops tags with no published
// posts and sorts the rest by name, case-insensitively.
func AttachTagCounts(rows []models.Tag, counts map[int64]int) []models.Tag {
	out := make([]models.Tag, 0, len(rows))
	for _, t := range rows {
		t.PostCount = counts[t.ID]
		if t.PostCount > 0 {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Tag) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
