// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"inkblog/internal/cache"
	"inkblog/internal/config"
	"inkblog/internal/database"
	"inkblog/internal/handlers"
	"inkblog/internal/middleware"
	"inkblog/internal/render"
	"inkblog/internal/router"
	"inkblog/internal/site"
	"inkblog/internal/store"
	"inkblog/internal/taxonomy"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("configuration loaded",
		"env", cfg.App.Env,
		"addr", cfg.Addr(),
	)

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if _, err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	// The page cache is optional: without Valkey every page renders fresh.
	var pageCache *cache.PageCache
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.Valkey.Host, cfg.Valkey.Port, cfg.Valkey.Password, cfg.Valkey.DB)
	if err != nil {
		slog.Warn("valkey unavailable, page cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		pageCache = cache.NewPageCache(valkeyClient, cfg.Blog.CacheTTL)
	}

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		return fmt.Errorf("initialize templates: %w", err)
	}

	settingStore := store.NewSiteSettingStore(db)
	profileStore := store.NewProfileStore(db)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	menuStore := store.NewMenuStore(db)
	statsStore := store.NewStatsStore(db)
	cacheLogStore := store.NewCacheLogStore(db)

	agg := taxonomy.NewAggregator(categoryStore, tagStore)
	layout := site.NewLoader(menuStore, settingStore, agg, profileStore, cfg.Blog.Name)

	secureCookies := cfg.Blog.SecureCookies || !cfg.IsDev()

	h := router.Handlers{
		Public: handlers.NewPublic(renderer, layout, postStore, categoryStore, tagStore, profileStore, pageCache, cfg.Blog.Name, secureCookies),
		API:    handlers.NewAPI(settingStore, profileStore, postStore, categoryStore, tagStore, menuStore, agg, cfg.Blog.Name),
		Admin:  handlers.NewAdmin(postStore, categoryStore, tagStore, menuStore, settingStore, statsStore, pageCache, cacheLogStore),
	}

	opts := router.Options{
		AdminToken:  cfg.Blog.AdminToken,
		CORSOrigins: cfg.Blog.CORSOrigins,
	}
	if cfg.Blog.SearchRateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.Blog.SearchRateLimit, time.Minute)
		defer limiter.Stop()
		opts.SearchLimiter = limiter
	}
	if opts.AdminToken == "" {
		slog.Warn("BLOG_ADMIN_TOKEN is empty, admin API is unauthenticated")
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(h, opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
