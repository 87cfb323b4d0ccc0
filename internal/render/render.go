// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public blog.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"inkblog/internal/markdown"
	"inkblog/internal/models"
	"inkblog/internal/nav"
	"inkblog/internal/site"
	"inkblog/internal/theme"
)

//go:embed templates/public/*.html
var publicFS embed.FS

// shared templates are parsed into every page alongside base.html.
var shared = []string{"base.html", "partials.html"}

// PageData holds all data passed to public templates.
type PageData struct {
	Title   string         // Page title for <title> tag
	Section string         // Active section (e.g., "home", "posts")
	Layout  *site.Layout   // Shared chrome: menu, sidebar, footer
	Theme   theme.Mode     // Colour scheme baked into the markup
	Path    string         // Request URI, for returning after a theme toggle
	Data    map[string]any // Page-specific data
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all public templates from the embedded
// filesystem. Each page template is paired with the base layout. When
// devMode is true, templates load the unminified HTMX build.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			"isDev": func() bool {
				return devMode
			},
			"desktopNav": nav.Desktop,
			// mobileNav renders the drawer closed; it opens via /nav/mobile.
			"mobileNav": func(tree []*models.MenuNode) template.HTML {
				return nav.Mobile(tree, nav.NewDrawer())
			},
			"date": func(t *time.Time) string {
				if t == nil {
					return ""
				}
				return t.Format("January 2, 2006")
			},
			"isoDate": func(t *time.Time) string {
				if t == nil {
					return ""
				}
				return t.Format(time.RFC3339)
			},
			// excerpt prefers the stored excerpt and falls back to a summary
			// of the body.
			"excerpt": func(p models.Post) string {
				if p.Excerpt != nil && *p.Excerpt != "" {
					return *p.Excerpt
				}
				return markdown.Summary(p.Content, 200)
			},
		},
	}

	entries, err := fs.ReadDir(publicFS, "templates/public")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || isShared(name) {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		files := []string{"templates/public/" + name}
		for _, s := range shared {
			files = append(files, "templates/public/"+s)
		}
		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(publicFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

func isShared(name string) bool {
	for _, s := range shared {
		if s == name {
			return true
		}
	}
	return false
}

// Render executes a page template into a buffer. When partial is true only
// the "content" block is rendered.
func (rn *Renderer) Render(name string, data *PageData, partial bool) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	execName := "base.html"
	if partial {
		execName = "content"
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a full page or an HTMX partial, depending on the request
// headers, and writes it with the given status.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	out, err := rn.Render(name, data, IsHTMX(r))
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(out)
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// PagerLink is a single page number in a pager.
type PagerLink struct {
	Page    int
	URL     string
	Current bool
}

// Pager holds the links rendered under a paginated listing.
type Pager struct {
	Prev  string
	Next  string
	Links []PagerLink
}

// NewPager builds pager links for p on path, keeping the other query
// parameters. A listing with a single page gets an empty pager.
func NewPager(p models.Pagination, path string, params url.Values) Pager {
	if p.TotalPages <= 1 {
		return Pager{}
	}
	link := func(page int) string {
		v := url.Values{}
		for k, vs := range params {
			v[k] = vs
		}
		if page > 1 {
			v.Set("page", strconv.Itoa(page))
		} else {
			v.Del("page")
		}
		if len(v) == 0 {
			return path
		}
		return path + "?" + v.Encode()
	}

	var pg Pager
	if p.HasPrev() {
		pg.Prev = link(p.Page - 1)
	}
	if p.HasNext() {
		pg.Next = link(p.Page + 1)
	}
	for _, n := range p.Pages() {
		pg.Links = append(pg.Links, PagerLink{Page: n, URL: link(n), Current: n == p.Page})
	}
	return pg
}
