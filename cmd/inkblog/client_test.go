// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkblog/internal/menu"
	"inkblog/internal/models"
	"inkblog/internal/searchclient"
)

func fakeBlog(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		resp := searchclient.Response{Query: r.URL.Query().Get("q")}
		if resp.Query == "go" {
			resp.Posts = []models.Post{{ID: 1, Title: "Go channels", Slug: "go-channels"}}
			resp.Pagination = models.Pagination{Page: 1, PageSize: 10, TotalPosts: 1, TotalPages: 1}
		} else {
			resp.Posts = []models.Post{}
			resp.Pagination = models.Pagination{Page: 1, PageSize: 10}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/api/menus", func(w http.ResponseWriter, r *http.Request) {
		parent := int64(1)
		items := []models.MenuItem{
			{ID: 1, Name: "Docs", URL: "/docs", IsActive: true},
			{ID: 2, Name: "Guide", URL: "/docs/guide", ParentID: &parent, IsActive: true},
			{ID: 3, Name: "GitHub", URL: "https://github.com", IsExternal: true, Order: 1, IsActive: true},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchOnce(t *testing.T) {
	srv := fakeBlog(t)
	client := searchclient.New(srv.URL, nil)

	tests := []struct {
		name string
		q    searchclient.Query
		want string
	}{
		{"results", searchclient.Query{Text: "go"}, "Go channels"},
		{"empty", searchclient.Query{Text: "rust"}, "No posts match"},
		{"prompt", searchclient.Query{}, "Enter a search term"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := searchOnce(context.Background(), client, &out, tt.q); err != nil {
				t.Fatalf("searchOnce: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q does not contain %q", out.String(), tt.want)
			}
		})
	}
}

func TestSearchOnce_ServerDown(t *testing.T) {
	srv := fakeBlog(t)
	client := searchclient.New(srv.URL, nil)
	srv.Close()

	var out bytes.Buffer
	if err := searchOnce(context.Background(), client, &out, searchclient.Query{Text: "go"}); err == nil {
		t.Fatal("expected error when the server is unreachable")
	}
	if !strings.Contains(out.String(), "Search failed") {
		t.Errorf("output %q does not show the error panel", out.String())
	}
}

func TestSearchInteractive_LastLineWins(t *testing.T) {
	srv := fakeBlog(t)
	client := searchclient.New(srv.URL, nil)

	var out bytes.Buffer
	in := strings.NewReader("rust\ngo\n")
	if err := searchInteractive(context.Background(), client, in, &out, searchclient.Query{}); err != nil {
		t.Fatalf("searchInteractive: %v", err)
	}
	if !strings.Contains(out.String(), "Go channels") {
		t.Errorf("output %q does not contain the final results", out.String())
	}
}

func TestPrintMenu(t *testing.T) {
	srv := fakeBlog(t)
	items, err := searchclient.New(srv.URL, nil).Menus(context.Background())
	if err != nil {
		t.Fatalf("Menus: %v", err)
	}

	var out bytes.Buffer
	printMenu(&out, menu.Build(items))

	want := "- Docs  /docs\n  - Guide  /docs/guide\n- GitHub  https://github.com [external]\n"
	if out.String() != want {
		t.Errorf("printMenu =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestPrintMenu_Empty(t *testing.T) {
	var out bytes.Buffer
	printMenu(&out, nil)
	if !strings.Contains(out.String(), "no menu items") {
		t.Errorf("printMenu(nil) = %q", out.String())
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		l := newLogger("json", tt.level)
		if !l.Enabled(context.Background(), tt.want) {
			t.Errorf("level %q: %v not enabled", tt.level, tt.want)
		}
		if tt.want > slog.LevelDebug && l.Enabled(context.Background(), tt.want-1) {
			t.Errorf("level %q: below %v enabled", tt.level, tt.want)
		}
	}
}
