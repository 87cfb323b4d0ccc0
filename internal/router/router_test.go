// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint. Only routes that never reach the
// database are exercised here.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkblog/internal/handlers"
	"inkblog/internal/middleware"
	"inkblog/internal/models"
	"inkblog/internal/render"
	"inkblog/internal/site"
)

type emptySource struct{}

func (emptySource) ListActive(context.Context) ([]models.MenuItem, error) { return nil, nil }
func (emptySource) All(context.Context) (models.SiteSettings, error)      { return nil, nil }
func (emptySource) ListCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}
func (emptySource) ListTags(context.Context) ([]models.Tag, error)           { return nil, nil }
func (emptySource) SocialLinks(context.Context) ([]models.SocialLink, error) { return nil, nil }

func testRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	rn, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	var src emptySource
	loader := site.NewLoader(src, src, src, src, "Router Test")
	return New(Handlers{
		Public: handlers.NewPublic(rn, loader, nil, nil, nil, nil, nil, "Router Test", false),
		API:    handlers.NewAPI(nil, nil, nil, nil, nil, nil, nil, "Router Test"),
		Admin:  handlers.NewAdmin(nil, nil, nil, nil, nil, nil, nil, nil),
	}, opts)
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestRoutes(t *testing.T) {
	h := testRouter(t, Options{AdminToken: "s3cret"})

	tests := []struct {
		name     string
		method   string
		target   string
		auth     string
		want     int
		contains string
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK, `"ok"`},
		{"stylesheet", http.MethodGet, "/static/css/site.css", "", http.StatusOK, ".theme-dark"},
		{"admin without token", http.MethodGet, "/api/admin/stats", "", http.StatusUnauthorized, `"error"`},
		{"admin with wrong token", http.MethodPost, "/api/admin/posts", "Bearer nope", http.StatusUnauthorized, `"error"`},
		{"unknown api route", http.MethodGet, "/api/nope", "", http.StatusNotFound, `"not found"`},
		{"api wrong method", http.MethodDelete, "/api/menus", "", http.StatusMethodNotAllowed, `"method not allowed"`},
		{"unknown page", http.MethodGet, "/no/such/page", "", http.StatusNotFound, "Page not found"},
		{"drawer close without htmx", http.MethodGet, "/nav/mobile/close", "", http.StatusSeeOther, ""},
		{"drawer open", http.MethodGet, "/nav/mobile", "", http.StatusOK, `id="mobile-nav"`},
		{"theme toggle", http.MethodPost, "/theme/toggle", "", http.StatusSeeOther, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.want)
			}
			if tt.contains != "" && !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("missing security headers")
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	h := testRouter(t, Options{CORSOrigins: []string{"https://reader.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "https://reader.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://reader.example" {
		t.Errorf("Allow-Origin: got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "https://other.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestSearchRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	h := testRouter(t, Options{SearchLimiter: limiter})

	// An empty search renders the prompt without touching the database.
	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/search", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first: status %d", first.Code)
	}

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/search", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second: status %d, want 429", second.Code)
	}
}
