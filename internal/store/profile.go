// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"inkblog/internal/models"
)

// ProfileStore reads the author profile tables: social links, contact info,
// donation channels and the homepage hero banner.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore returns a new ProfileStore.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// SocialLinks returns active social links ordered by sort_order.
func (s *ProfileStore) SocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, platform, url, icon, sort_order, is_active
		FROM social_links WHERE is_active ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	defer rows.Close()

	var items []models.SocialLink
	for rows.Next() {
		var l models.SocialLink
		if err := rows.Scan(&l.ID, &l.Platform, &l.URL, &l.Icon, &l.Order, &l.IsActive); err != nil {
			return nil, fmt.Errorf("scan social link: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// ContactInfo returns active contact entries.
func (s *ProfileStore) ContactInfo(ctx context.Context) ([]models.ContactInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, value, icon, is_active
		FROM contact_info WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list contact info: %w", err)
	}
	defer rows.Close()

	var items []models.ContactInfo
	for rows.Next() {
		var c models.ContactInfo
		if err := rows.Scan(&c.ID, &c.Type, &c.Value, &c.Icon, &c.IsActive); err != nil {
			return nil, fmt.Errorf("scan contact info: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// DonationInfo returns active donation channels.
func (s *ProfileStore) DonationInfo(ctx context.Context) ([]models.DonationInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, qr_code_url, description, is_active
		FROM donation_info WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list donation info: %w", err)
	}
	defer rows.Close()

	var items []models.DonationInfo
	for rows.Next() {
		var d models.DonationInfo
		if err := rows.Scan(&d.ID, &d.Type, &d.QRCodeURL, &d.Description, &d.IsActive); err != nil {
			return nil, fmt.Errorf("scan donation info: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// Hero returns the first active hero banner, or nil when none is active.
func (s *ProfileStore) Hero(ctx context.Context) (*models.HeroSetting, error) {
	var h models.HeroSetting
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, subtitle, background_image, is_active
		FROM hero_settings WHERE is_active ORDER BY id LIMIT 1`,
	).Scan(&h.ID, &h.Title, &h.Subtitle, &h.BackgroundImage, &h.IsActive)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find hero: %w", err)
	}
	return &h, nil
}
