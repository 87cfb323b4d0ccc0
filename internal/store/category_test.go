// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"inkblog/internal/models"
)

func TestCategoryStore_CreateAssignsSortOrder(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanCategories(t, db, "test-cat-parent", "test-cat-a", "test-cat-b") })

	parent, err := s.Create(ctx, &models.Category{Name: "Test Parent", Slug: "test-cat-parent"})
	if err != nil {
		t.Fatalf("Create parent: %v", err)
	}

	a, err := s.Create(ctx, &models.Category{Name: "Test A", Slug: "test-cat-a", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if a.Order != SortOrderStep {
		t.Errorf("first child order = %d, want %d", a.Order, SortOrderStep)
	}

	b, err := s.Create(ctx, &models.Category{Name: "Test B", Slug: "test-cat-b", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}
	if b.Order != a.Order+SortOrderStep {
		t.Errorf("second child order = %d, want %d", b.Order, a.Order+SortOrderStep)
	}
}

func TestCategoryStore_FindBySlug(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanCategories(t, db, "test-cat-find") })

	created, err := s.Create(ctx, &models.Category{Name: "Find Me", Slug: "test-cat-find"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.FindBySlug(ctx, "test-cat-find")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("FindBySlug = %+v, want id %d", got, created.ID)
	}

	missing, err := s.FindBySlug(ctx, "test-cat-does-not-exist")
	if err != nil {
		t.Fatalf("FindBySlug missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing slug, got %+v", missing)
	}
}

func TestCategoryStore_Reorder(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanCategories(t, db, "test-cat-r1", "test-cat-r2") })

	r1, err := s.Create(ctx, &models.Category{Name: "R1", Slug: "test-cat-r1"})
	if err != nil {
		t.Fatalf("Create r1: %v", err)
	}
	r2, err := s.Create(ctx, &models.Category{Name: "R2", Slug: "test-cat-r2"})
	if err != nil {
		t.Fatalf("Create r2: %v", err)
	}

	err = s.Reorder(ctx, []ReorderItem{
		{ID: r2.ID, Order: 1},
		{ID: r1.ID, ParentID: &r2.ID, Order: 5},
	})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	got, err := s.FindByID(ctx, r1.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.ParentID == nil || *got.ParentID != r2.ID || got.Order != 5 {
		t.Errorf("after reorder: parent=%v order=%d", got.ParentID, got.Order)
	}
}

func TestCategoryStore_PublishedCountsIgnoreDrafts(t *testing.T) {
	db := testDB(t)
	cats := NewCategoryStore(db)
	posts := NewPostStore(db)
	ctx := context.Background()
	t.Cleanup(func() {
		cleanPosts(t, db, "test-count-pub", "test-count-draft")
		cleanCategories(t, db, "test-cat-count")
	})

	c, err := cats.Create(ctx, &models.Category{Name: "Counted", Slug: "test-cat-count"})
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	if _, err := posts.Create(ctx, &models.Post{Title: "Pub", Slug: "test-count-pub", Status: models.PostStatusPublished}, []int64{c.ID}, nil); err != nil {
		t.Fatalf("Create published: %v", err)
	}
	if _, err := posts.Create(ctx, &models.Post{Title: "Draft", Slug: "test-count-draft", Status: models.PostStatusDraft}, []int64{c.ID}, nil); err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	counts, err := cats.PublishedCounts(ctx)
	if err != nil {
		t.Fatalf("PublishedCounts: %v", err)
	}
	if counts[c.ID] != 1 {
		t.Errorf("count = %d, want 1", counts[c.ID])
	}
}
