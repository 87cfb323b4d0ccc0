// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Pagination describes one page of a listing. Pages are 1-indexed.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPosts int `json:"totalPosts"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes TotalPages for the given totals.
func NewPagination(page, pageSize, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (total + pageSize - 1) / pageSize
	return Pagination{Page: page, PageSize: pageSize, TotalPosts: total, TotalPages: pages}
}

// Offset returns the SQL offset of the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Pages lists every page number, for rendering a pager.
func (p Pagination) Pages() []int {
	out := make([]int, 0, p.TotalPages)
	for i := 1; i <= p.TotalPages; i++ {
		out = append(out, i)
	}
	return out
}
