// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package searchclient

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"inkblog/internal/models"
)

// Render writes a plain-text rendition of the view: a panel for the prompt,
// loading, empty and error phases, or the post list followed by a pager.
func Render(w io.Writer, v View) error {
	bw := bufio.NewWriter(w)

	switch v.Phase {
	case PhasePrompt:
		fmt.Fprintln(bw, "Enter a search term or pick a category or tag.")
	case PhaseLoading:
		fmt.Fprintln(bw, "Searching...")
	case PhaseError:
		fmt.Fprintf(bw, "Search failed: %v\n", v.Err)
	case PhaseEmpty:
		fmt.Fprintf(bw, "No posts match %s.\n", describe(v.Query))
	case PhaseResults:
		renderResults(bw, v)
	}

	return bw.Flush()
}

func renderResults(w io.Writer, v View) {
	p := v.Response.Pagination
	fmt.Fprintf(w, "%d posts match %s (page %d of %d)\n\n", p.TotalPosts, describe(v.Query), p.Page, p.TotalPages)

	for _, post := range v.Response.Posts {
		date := "unpublished"
		if post.PublishedAt != nil {
			date = post.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "  %s  %s\n", date, post.Title)
		if terms := termLine(post); terms != "" {
			fmt.Fprintf(w, "              %s\n", terms)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, pager(p))
}

// describe summarises the query for panel headings.
func describe(q Query) string {
	var parts []string
	if q.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", q.Text))
	}
	if q.Category != "" {
		parts = append(parts, "category "+q.Category)
	}
	if q.Tag != "" {
		parts = append(parts, "tag "+q.Tag)
	}
	if len(parts) == 0 {
		return "everything"
	}
	return strings.Join(parts, ", ")
}

func termLine(post models.Post) string {
	var parts []string
	for _, c := range post.Categories {
		parts = append(parts, "["+c.Name+"]")
	}
	for _, t := range post.Tags {
		parts = append(parts, "#"+t.Slug)
	}
	return strings.Join(parts, " ")
}

// pager renders "< prev  1 [2] 3  next >" with the current page bracketed.
func pager(p models.Pagination) string {
	var b strings.Builder
	if p.HasPrev() {
		b.WriteString("< prev  ")
	}
	for i, n := range p.Pages() {
		if i > 0 {
			b.WriteByte(' ')
		}
		if n == p.Page {
			fmt.Fprintf(&b, "[%d]", n)
		} else {
			fmt.Fprintf(&b, "%d", n)
		}
	}
	if p.HasNext() {
		b.WriteString("  next >")
	}
	return b.String()
}
