// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"inkblog/internal/models"
)

// SiteSettingStore manages site configuration in the database.
type SiteSettingStore struct {
	db *sql.DB
}

// NewSiteSettingStore returns a new SiteSettingStore backed by the given database.
func NewSiteSettingStore(db *sql.DB) *SiteSettingStore {
	return &SiteSettingStore{db: db}
}

// All returns every setting flattened into a map. NULL values are kept as nil.
func (s *SiteSettingStore) All(ctx context.Context) (models.SiteSettings, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make(models.SiteSettings)
	for rows.Next() {
		var k string
		var v sql.NullString
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		if v.Valid {
			val := v.String
			settings[k] = &val
		} else {
			settings[k] = nil
		}
	}
	return settings, rows.Err()
}

// Get returns a single setting by key, or the fallback if it is missing,
// NULL or empty.
func (s *SiteSettingStore) Get(ctx context.Context, key, fallback string) (string, error) {
	var val sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT value FROM site_settings WHERE key = $1`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("get setting %s: %w", key, err)
	}
	if !val.Valid || val.String == "" {
		return fallback, nil
	}
	return val.String, nil
}

// Set upserts a single setting. A nil value stores NULL.
func (s *SiteSettingStore) Set(ctx context.Context, key string, value *string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// SetMany updates multiple settings in a single transaction.
func (s *SiteSettingStore) SetMany(ctx context.Context, settings models.SiteSettings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare settings upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for k, v := range settings {
		if _, err := stmt.ExecContext(ctx, k, v, now); err != nil {
			return fmt.Errorf("set setting %s: %w", k, err)
		}
	}

	return tx.Commit()
}
