// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category represents a hierarchical post category. Posts can belong to
// several categories through the post_categories association table.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	ParentID    *int64    `json:"parentId"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`

	// PostCount is derived from published posts, never stored.
	PostCount int `json:"postCount"`
}

// Tag is a flat label attached to posts through post_tags.
type Tag struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`

	PostCount int `json:"postCount"`
}

// TermRef is the short form of a category or tag embedded in post payloads.
type TermRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
