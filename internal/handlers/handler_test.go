// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"inkblog/internal/cache"
	"inkblog/internal/database"
	"inkblog/internal/models"
	"inkblog/internal/render"
	"inkblog/internal/site"
	"inkblog/internal/store"
	"inkblog/internal/taxonomy"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkblog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}
	if _, err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "page:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	PageCache  *cache.PageCache
	Posts      *store.PostStore
	Categories *store.CategoryStore
	Tags       *store.TagStore
	Menus      *store.MenuStore
	Settings   *store.SiteSettingStore
	CacheLog   *store.CacheLogStore
	API        *API
	Admin      *Admin
	Public     *Public
}

// newTestEnv creates a complete test environment. pageCache may be nil.
func newTestEnv(t *testing.T, pageCache *cache.PageCache) *testEnv {
	t.Helper()

	db := testDB(t)
	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	posts := store.NewPostStore(db)
	categories := store.NewCategoryStore(db)
	tags := store.NewTagStore(db)
	menus := store.NewMenuStore(db)
	settings := store.NewSiteSettingStore(db)
	profile := store.NewProfileStore(db)
	cacheLog := store.NewCacheLogStore(db)
	agg := taxonomy.NewAggregator(categories, tags)
	loader := site.NewLoader(menus, settings, agg, profile, "Ink Test")

	return &testEnv{
		DB:         db,
		PageCache:  pageCache,
		Posts:      posts,
		Categories: categories,
		Tags:       tags,
		Menus:      menus,
		Settings:   settings,
		CacheLog:   cacheLog,
		API:        NewAPI(settings, profile, posts, categories, tags, menus, agg, "Ink Test"),
		Admin:      NewAdmin(posts, categories, tags, menus, settings, store.NewStatsStore(db), pageCache, cacheLog),
		Public:     NewPublic(renderer, loader, posts, categories, tags, profile, pageCache, "Ink Test", false),
	}
}

// uniqueSlug returns a slug that will not collide with seed data or other runs.
func uniqueSlug(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with body encoded as JSON.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes a recorded JSON response into T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

// createPost inserts a post directly through the store.
func createPost(t *testing.T, env *testEnv, title string, status models.PostStatus, categoryIDs, tagIDs []int64) *models.Post {
	t.Helper()
	slug := uniqueSlug("test-post")
	t.Cleanup(func() { env.DB.Exec("DELETE FROM posts WHERE slug = $1", slug) })

	p, err := env.Posts.Create(context.Background(), &models.Post{
		Title:   title,
		Slug:    slug,
		Content: "Some **markdown** body for " + title,
		Status:  status,
	}, categoryIDs, tagIDs)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

// createCategory inserts a root category with a unique slug.
func createCategory(t *testing.T, env *testEnv, name string) *models.Category {
	t.Helper()
	slug := uniqueSlug("test-cat")
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE slug = $1", slug) })

	c, err := env.Categories.Create(context.Background(), &models.Category{Name: name, Slug: slug})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

// createTag inserts a tag with a unique slug.
func createTag(t *testing.T, env *testEnv, name string) *models.Tag {
	t.Helper()
	slug := uniqueSlug("test-tag")
	t.Cleanup(func() { env.DB.Exec("DELETE FROM tags WHERE slug = $1", slug) })

	tag, err := env.Tags.Create(context.Background(), &models.Tag{Name: name, Slug: slug})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return tag
}

// newCachedEnv is newTestEnv backed by a real Valkey page cache.
func newCachedEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnv(t, cache.NewPageCache(testValkeyClient(t), time.Minute))
}
