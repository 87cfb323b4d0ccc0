// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Well-known site_settings keys.
const (
	SettingSiteName        = "site_name"
	SettingSiteDescription = "site_description"
	SettingSiteKeywords    = "site_keywords"
	SettingFooterText      = "footer_text"
	SettingAuthorName      = "author_name"
	SettingAuthorAvatar    = "author_avatar"
	SettingAuthorBio       = "author_bio"
)

// SiteSetting represents a single configuration key-value pair. A NULL value
// is kept distinct from an empty string.
type SiteSetting struct {
	Key       string    `json:"key"`
	Value     *string   `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SiteSettings is the flattened key → nullable value view of site_settings.
type SiteSettings map[string]*string

// Get returns the value for a key, or the fallback if the key is missing,
// NULL or empty.
func (s SiteSettings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != nil && *v != "" {
		return *v
	}
	return fallback
}

// Has reports whether the key exists, even with a NULL value.
func (s SiteSettings) Has(key string) bool {
	_, ok := s[key]
	return ok
}
