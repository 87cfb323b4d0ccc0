// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// blog. It organizes routes into the public site, the public JSON API and
// the token-guarded admin API.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"inkblog/internal/handlers"
	"inkblog/internal/middleware"
	"inkblog/internal/nav"
	"inkblog/web"
)

// Handlers are the handler groups mounted by the router.
type Handlers struct {
	Public *handlers.Public
	API    *handlers.API
	Admin  *handlers.Admin
}

// Options tune the middleware stacks.
type Options struct {
	// AdminToken guards /api/admin. Empty disables the check.
	AdminToken string
	// CORSOrigins may call /api from a browser. Empty allows any origin.
	CORSOrigins []string
	// SearchLimiter throttles the search endpoints when set.
	SearchLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	throttle := func(next http.Handler) http.Handler { return next }
	if opts.SearchLimiter != nil {
		throttle = opts.SearchLimiter.Middleware
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(corsOptions(opts.CORSOrigins)))
		r.NotFound(apiNotFound)
		r.MethodNotAllowed(apiMethodNotAllowed)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/general", h.API.SettingsGeneral)
			r.Get("/social", h.API.SettingsSocial)
			r.Get("/contact", h.API.SettingsContact)
			r.Get("/donation", h.API.SettingsDonation)
			r.Get("/hero", h.API.SettingsHero)
		})
		r.With(throttle).Get("/search", h.API.Search)
		r.Get("/menus", h.API.Menus)
		r.Get("/menus/tree", h.API.MenusTree)
		r.Get("/categories", h.API.Categories)
		r.Get("/tags", h.API.Tags)
		r.Get("/posts/{slug}", h.API.Post)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.BearerToken(opts.AdminToken))

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.Admin.PostsList)
				r.Post("/", h.Admin.PostCreate)
				r.Get("/{id}", h.Admin.PostGet)
				r.Put("/{id}", h.Admin.PostUpdate)
				r.Delete("/{id}", h.Admin.PostDelete)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.Admin.CategoriesList)
				r.Post("/", h.Admin.CategoryCreate)
				r.Put("/reorder", h.Admin.CategoriesReorder)
				r.Put("/{id}", h.Admin.CategoryUpdate)
				r.Delete("/{id}", h.Admin.CategoryDelete)
			})
			r.Route("/tags", func(r chi.Router) {
				r.Get("/", h.Admin.TagsList)
				r.Post("/", h.Admin.TagCreate)
				r.Put("/{id}", h.Admin.TagUpdate)
				r.Delete("/{id}", h.Admin.TagDelete)
			})
			r.Route("/menus", func(r chi.Router) {
				r.Get("/", h.Admin.MenusList)
				r.Post("/", h.Admin.MenuCreate)
				r.Put("/{id}", h.Admin.MenuUpdate)
				r.Delete("/{id}", h.Admin.MenuDelete)
			})
			r.Get("/settings", h.Admin.SettingsGet)
			r.Put("/settings", h.Admin.SettingsUpdate)
			r.Get("/stats", h.Admin.Stats)
			r.Get("/cache-log", h.Admin.CacheLog)
		})
	})

	// Public site.
	r.Get("/", h.Public.Home)
	r.Get("/posts", h.Public.Posts)
	r.Get("/posts/{slug}", h.Public.Post)
	r.Get("/categories/{slug}", h.Public.Category)
	r.Get("/tags/{slug}", h.Public.Tag)
	r.With(throttle).Get("/search", h.Public.Search)
	r.Get(nav.MobilePath, h.Public.MobileNav)
	r.Get(nav.MobileClosePath, h.Public.MobileNavClose)
	r.Post("/theme/toggle", h.Public.ThemeToggle)
	r.NotFound(h.Public.NotFound)

	return r
}

// corsOptions allows read and admin calls from the given origins.
func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"not found"}`))
}

func apiMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"method not allowed"}`))
}
