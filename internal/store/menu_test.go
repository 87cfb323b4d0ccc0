// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"inkblog/internal/models"
)

func TestMenuStore_ListActiveSkipsInactive(t *testing.T) {
	db := testDB(t)
	s := NewMenuStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanMenus(t, db, "Test Active", "Test Hidden") })

	active, err := s.Create(ctx, &models.MenuItem{Name: "Test Active", URL: "/a", IsActive: true})
	if err != nil {
		t.Fatalf("Create active: %v", err)
	}
	hidden, err := s.Create(ctx, &models.MenuItem{Name: "Test Hidden", URL: "/h", ParentID: &active.ID})
	if err != nil {
		t.Fatalf("Create hidden: %v", err)
	}

	items, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	var sawActive bool
	for _, it := range items {
		if it.ID == hidden.ID {
			t.Error("inactive item returned by ListActive")
		}
		if it.ID == active.ID {
			sawActive = true
		}
	}
	if !sawActive {
		t.Error("active item missing from ListActive")
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	var sawHidden bool
	for _, it := range all {
		if it.ID == hidden.ID {
			sawHidden = true
		}
	}
	if !sawHidden {
		t.Error("inactive item missing from ListAll")
	}
}

func TestMenuStore_DeleteOrphansChildren(t *testing.T) {
	db := testDB(t)
	s := NewMenuStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanMenus(t, db, "Test Parent", "Test Child") })

	parent, err := s.Create(ctx, &models.MenuItem{Name: "Test Parent", URL: "/p", IsActive: true})
	if err != nil {
		t.Fatalf("Create parent: %v", err)
	}
	child, err := s.Create(ctx, &models.MenuItem{Name: "Test Child", URL: "/c", ParentID: &parent.ID, IsActive: true})
	if err != nil {
		t.Fatalf("Create child: %v", err)
	}

	if err := s.Delete(ctx, parent.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := s.FindByID(ctx, child.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil || got.ParentID != nil {
		t.Errorf("child after parent delete = %+v", got)
	}
}
