// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"strings"
	"testing"
)

func TestPostQueryNormalize(t *testing.T) {
	tests := []struct {
		name         string
		in           PostQuery
		wantPage     int
		wantPageSize int
		wantText     string
	}{
		{"zero values", PostQuery{}, 1, DefaultPageSize, ""},
		{"negative page", PostQuery{Page: -3, PageSize: 5}, 1, 5, ""},
		{"oversized page", PostQuery{Page: 2, PageSize: 1000}, 2, MaxPageSize, ""},
		{"trims text", PostQuery{Text: "  go  "}, 1, DefaultPageSize, "go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.normalize()
			if got.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", got.PageSize, tt.wantPageSize)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestPostQueryWhere(t *testing.T) {
	where, args := PostQuery{}.where()
	if where != "WHERE p.status = 'published'" || len(args) != 0 {
		t.Errorf("empty query: got %q %v", where, args)
	}

	where, args = PostQuery{IncludeDrafts: true}.where()
	if where != "" || len(args) != 0 {
		t.Errorf("drafts without filters: got %q %v", where, args)
	}

	where, args = PostQuery{Text: "go", CategoryID: ptr(int64(3)), TagID: ptr(int64(7))}.where()
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	for _, frag := range []string{"ILIKE $1", "category_id = $2", "tag_id = $3"} {
		if !strings.Contains(where, frag) {
			t.Errorf("where %q missing %q", where, frag)
		}
	}
	if args[0] != "%go%" {
		t.Errorf("text arg = %v, want %%go%%", args[0])
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Errorf("escapeLike = %q", got)
	}
}

func TestNextOrder(t *testing.T) {
	if got := nextOrder(sql.NullInt64{}); got != SortOrderStep {
		t.Errorf("no siblings: got %d, want %d", got, SortOrderStep)
	}
	if got := nextOrder(sql.NullInt64{Int64: 30, Valid: true}); got != 40 {
		t.Errorf("after 30: got %d, want 40", got)
	}
}
