// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"inkblog/internal/database"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Connect(cmd.Context(), cfg.DSN())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if migrateStatus {
			pending, err := database.Pending(cmd.Context(), db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pending migrations\n", pending)
			return nil
		}

		version, err := database.Migrate(cmd.Context(), db)
		if err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		slog.Info("migrations applied", "version", version)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate, then load the sample blog content into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Connect(cmd.Context(), cfg.DSN())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if _, err := database.Migrate(cmd.Context(), db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		if err := database.Seed(cmd.Context(), db); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "only report pending migrations")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
