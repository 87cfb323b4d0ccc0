// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SocialLink is an author profile link shown in the footer and sidebar.
type SocialLink struct {
	ID       int64  `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Order    int    `json:"order"`
	IsActive bool   `json:"isActive"`
}

// ContactInfo is a single way of reaching the author (email, wechat, ...).
type ContactInfo struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Value    string `json:"value"`
	Icon     string `json:"icon"`
	IsActive bool   `json:"isActive"`
}

// DonationInfo describes a donation channel, usually a QR code.
type DonationInfo struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	QRCodeURL   string `json:"qrCodeUrl"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// HeroSetting is the homepage banner.
type HeroSetting struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage"`
	IsActive        bool   `json:"isActive"`
}
