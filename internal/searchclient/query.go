// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package searchclient

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is the search tuple shared by the listing page and the API.
// Category and Tag are slugs.
type Query struct {
	Text     string
	Category string
	Tag      string
	Page     int
}

// IsEmpty reports whether no search term or filter is set. The page number
// alone does not make a query.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == "" &&
		strings.TrimSpace(q.Category) == "" &&
		strings.TrimSpace(q.Tag) == ""
}

// Normalize trims the fields and clamps Page to at least 1.
func (q Query) Normalize() Query {
	q.Text = strings.TrimSpace(q.Text)
	q.Category = strings.TrimSpace(q.Category)
	q.Tag = strings.TrimSpace(q.Tag)
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// Values encodes the query as URL parameters.
func (q Query) Values() url.Values {
	q = q.Normalize()
	v := url.Values{}
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Tag != "" {
		v.Set("tag", q.Tag)
	}
	v.Set("page", strconv.Itoa(q.Page))
	return v
}

// FromValues reads a query from URL parameters. A malformed page becomes 1.
func FromValues(v url.Values) Query {
	return Query{
		Text:     v.Get("q"),
		Category: v.Get("category"),
		Tag:      v.Get("tag"),
		Page:     ParsePage(v.Get("page")),
	}.Normalize()
}

// ParsePage parses a page number. Anything unparseable or below 1 yields 1.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
