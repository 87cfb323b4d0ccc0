// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package searchclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkblog/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("q") != "chi" || q.Get("tag") != "go" || q.Get("page") != "2" || q.Get("pageSize") != "5" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unexpected query " + r.URL.RawQuery})
			return
		}
		writeJSON(w, http.StatusOK, Response{
			Query:      "chi",
			Posts:      []models.Post{{ID: 1, Title: "Routing with chi"}},
			Pagination: models.NewPagination(2, 5, 6),
		})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/", srv.Client())
	c.PageSize = 5
	resp, err := c.Search(context.Background(), Query{Text: "chi", Tag: "go", Page: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Posts) != 1 || resp.Posts[0].Title != "Routing with chi" {
		t.Errorf("posts = %+v", resp.Posts)
	}
	if resp.Pagination.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", resp.Pagination.TotalPages)
	}
}

func TestClientSearch_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "database unavailable"})
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, srv.Client()).Search(context.Background(), Query{Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "database unavailable") {
		t.Errorf("err = %v, want server message", err)
	}
}

func TestClientMenus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.MenuItem{{ID: 1, Name: "Home", URL: "/", IsActive: true}})
	}))
	t.Cleanup(srv.Close)

	items, err := New(srv.URL, srv.Client()).Menus(context.Background())
	if err != nil {
		t.Fatalf("Menus: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Home" {
		t.Errorf("items = %+v", items)
	}
}

// TestListing_OverHTTP_CancelsStale drives the listing against a server
// where "a" hangs. Submitting "b" must cancel the "a" request and show "b".
func TestListing_OverHTTP_CancelsStale(t *testing.T) {
	aStarted := make(chan struct{})
	aCancelled := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "a" {
			close(aStarted)
			select {
			case <-r.Context().Done():
				close(aCancelled)
				return
			case <-time.After(5 * time.Second):
			}
		}
		writeJSON(w, http.StatusOK, Response{
			Query:      q,
			Posts:      []models.Post{{ID: 1, Title: "result " + q}},
			Pagination: models.NewPagination(1, 10, 1),
		})
	}))
	t.Cleanup(srv.Close)

	l := NewListing(New(srv.URL, srv.Client()), WithDebounce(0))
	defer l.Close()

	l.Submit(Query{Text: "a", Page: 1})
	<-aStarted
	l.Submit(Query{Text: "b", Page: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	v, err := l.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if v.Phase != PhaseResults || v.Response.Query != "b" {
		t.Fatalf("view = %v %+v, want results for b", v.Phase, v.Response)
	}

	select {
	case <-aCancelled:
	case <-ctx.Done():
		t.Fatal("request for a was never cancelled")
	}
}
