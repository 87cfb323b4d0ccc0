// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command inkblog runs the blog server and its maintenance tasks.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inkblog/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "inkblog",
	Short: "Blog server with a public site, a JSON API and an admin API",
	Long: `Inkblog serves a markdown blog backed by PostgreSQL, with an optional
Valkey page cache. Besides the server it can migrate and seed the database,
and query a running instance from the terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "inkblog.yaml", "config file path (skipped when missing)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the default logger it
// describes.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(newLogger(cfg.App.LogFormat, cfg.App.LogLevel))
	return cfg, nil
}

// newLogger returns a JSON or text logger writing to stdout.
func newLogger(format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
