// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a blog article. Content holds Markdown source.
type Post struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content,omitempty"`
	Excerpt     *string    `json:"excerpt"`
	CoverImage  *string    `json:"coverImage"`
	Status      PostStatus `json:"status"`
	Views       int        `json:"views"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Categories []TermRef `json:"categories,omitempty"`
	Tags       []TermRef `json:"tags,omitempty"`
}

// IsPublished returns true if the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// RecentPost is the dashboard summary row of a published post.
type RecentPost struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	PublishedAt *time.Time `json:"publishDate"`
	Views       int        `json:"views"`
}

// Stats aggregates dashboard counters.
type Stats struct {
	Posts       int          `json:"posts"`
	Categories  int          `json:"categories"`
	Tags        int          `json:"tags"`
	Views       int          `json:"views"`
	RecentPosts []RecentPost `json:"recentPosts"`
}
