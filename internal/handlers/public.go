// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkblog/internal/cache"
	"inkblog/internal/markdown"
	"inkblog/internal/models"
	"inkblog/internal/nav"
	"inkblog/internal/render"
	"inkblog/internal/searchclient"
	"inkblog/internal/site"
	"inkblog/internal/store"
	"inkblog/internal/theme"
)

// homePostCount is the number of latest posts on the homepage.
const homePostCount = 5

// Public groups handlers for the public HTML site. Home, post and archive
// pages are checked against the Valkey page cache before rendering; search
// and listing pages depend on the query and are never cached.
type Public struct {
	renderer      *render.Renderer
	layout        *site.Loader
	posts         *store.PostStore
	terms         termLookup
	profile       *store.ProfileStore
	pageCache     *cache.PageCache
	siteName      string
	secureCookies bool
}

// NewPublic creates a new Public handler group. pageCache may be nil to
// disable caching.
func NewPublic(renderer *render.Renderer, layout *site.Loader, posts *store.PostStore, categories *store.CategoryStore, tags *store.TagStore, profile *store.ProfileStore, pageCache *cache.PageCache, siteName string, secureCookies bool) *Public {
	return &Public{
		renderer:      renderer,
		layout:        layout,
		posts:         posts,
		terms:         termLookup{categories: categories, tags: tags},
		profile:       profile,
		pageCache:     pageCache,
		siteName:      siteName,
		secureCookies: secureCookies,
	}
}

// mode resolves the colour scheme for the request and asks the browser to
// send its preference next time.
func (p *Public) mode(w http.ResponseWriter, r *http.Request) theme.Mode {
	theme.RequestHint(w)
	return theme.FromRequest(w, r, p.secureCookies).Get()
}

// serveCached writes a cached full page. HTMX requests always miss.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if render.IsHTMX(r) {
		return false
	}
	html, ok := p.pageCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
	return true
}

// page loads the layout, renders the named template and writes it. When
// cacheKey is set, full 200 renders are stored in the page cache.
func (p *Public) page(w http.ResponseWriter, r *http.Request, status int, name string, data *render.PageData, cacheKey string) {
	if data.Layout == nil {
		layout, err := p.layout.Load(r.Context())
		if err != nil {
			p.fail(w, r, data.Theme, err)
			return
		}
		data.Layout = layout
	}
	if data.Path == "" {
		data.Path = r.URL.RequestURI()
	}

	partial := render.IsHTMX(r)
	out, err := p.renderer.Render(name, data, partial)
	if err != nil {
		slog.Error("render page failed", "template", name, "error", err, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if cacheKey != "" && !partial && status == http.StatusOK {
		p.pageCache.Set(r.Context(), cacheKey, out)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(out)
}

// fail logs err and renders the error page without touching the database.
func (p *Public) fail(w http.ResponseWriter, r *http.Request, mode theme.Mode, err error) {
	slog.Error("public page failed", "error", err, "path", r.URL.Path)
	p.page(w, r, http.StatusInternalServerError, "error", &render.PageData{
		Title:  "Something went wrong",
		Layout: &site.Layout{SiteName: p.siteName},
		Theme:  mode,
		Data:   map[string]any{"Message": "The page could not be loaded. Please try again later."},
	}, "")
}

// NotFound renders the 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.notFound(w, r, p.mode(w, r), "The page you are looking for does not exist.")
}

func (p *Public) notFound(w http.ResponseWriter, r *http.Request, mode theme.Mode, msg string) {
	p.page(w, r, http.StatusNotFound, "error", &render.PageData{
		Title: "Page not found",
		Theme: mode,
		Data:  map[string]any{"Message": msg},
	}, "")
}

// Home renders the hero banner and the latest published posts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mode := p.mode(w, r)
	key := cache.Key(cache.KindHome, string(mode))
	if p.serveCached(w, r, key) {
		return
	}

	hero, err := p.profile.Hero(ctx)
	if err != nil {
		p.fail(w, r, mode, err)
		return
	}
	posts, pg, err := p.posts.Search(ctx, store.PostQuery{PageSize: homePostCount})
	if err != nil {
		p.fail(w, r, mode, err)
		return
	}

	p.page(w, r, http.StatusOK, "home", &render.PageData{
		Section: "home",
		Theme:   mode,
		Path:    "/",
		Data: map[string]any{
			"Hero":  hero,
			"Posts": posts,
			"More":  pg.HasNext(),
		},
	}, key)
}

// Posts renders the post listing. Without a query it lists every post.
func (p *Public) Posts(w http.ResponseWriter, r *http.Request) {
	p.listing(w, r, "/posts", "Posts", false)
}

// Search renders the search page. Without a query it shows the prompt.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	p.listing(w, r, "/search", "Search", true)
}

func (p *Public) listing(w http.ResponseWriter, r *http.Request, action, title string, promptWhenEmpty bool) {
	ctx := r.Context()
	mode := p.mode(w, r)
	q := searchclient.FromValues(r.URL.Query())

	data := map[string]any{
		"Action":     action,
		"Query":      q,
		"Posts":      []models.Post(nil),
		"Pagination": models.Pagination{},
		"Pager":      render.Pager{},
	}
	phase := searchclient.PhaseResults

	if promptWhenEmpty && q.IsEmpty() {
		phase = searchclient.PhasePrompt
	} else {
		pq, err := p.terms.postQuery(ctx, q, store.DefaultPageSize)
		if err != nil {
			p.fail(w, r, mode, err)
			return
		}
		posts, pg, err := p.posts.Search(ctx, pq)
		if err != nil {
			p.fail(w, r, mode, err)
			return
		}
		if pg.TotalPosts == 0 {
			phase = searchclient.PhaseEmpty
		}
		params := q.Values()
		params.Del("page")
		data["Posts"] = posts
		data["Pagination"] = pg
		data["Pager"] = render.NewPager(pg, action, params)
	}
	data["Phase"] = phase.String()

	p.page(w, r, http.StatusOK, "posts", &render.PageData{
		Title:   title,
		Section: strings.TrimPrefix(action, "/"),
		Theme:   mode,
		Data:    data,
	}, "")
}

// Post renders a single published post and counts the view.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mode := p.mode(w, r)
	slugParam := chi.URLParam(r, "slug")

	post, err := p.posts.FindPublishedBySlug(ctx, slugParam)
	if err != nil {
		p.fail(w, r, mode, err)
		return
	}
	if post == nil {
		p.notFound(w, r, mode, "This post does not exist or is not published.")
		return
	}
	if err := p.posts.IncrementViews(ctx, post.ID); err != nil {
		slog.Warn("increment views failed", "post_id", post.ID, "error", err)
	}

	key := cache.Key(cache.KindPost, string(mode), post.Slug)
	if p.serveCached(w, r, key) {
		return
	}

	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		p.fail(w, r, mode, err)
		return
	}
	p.page(w, r, http.StatusOK, "post", &render.PageData{
		Title:   post.Title,
		Section: "posts",
		Theme:   mode,
		Path:    "/posts/" + post.Slug,
		Data:    map[string]any{"Post": post, "Body": body},
	}, key)
}

// Category renders the archive of published posts in a category.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	mode := p.mode(w, r)
	c, err := p.terms.categories.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		p.fail(w, r, mode, err)
		return
	}
	if c == nil {
		p.notFound(w, r, mode, "This category does not exist.")
		return
	}
	p.archive(w, r, mode, archive{
		kind:        cache.KindCategory,
		path:        "/categories/" + c.Slug,
		title:       c.Name,
		description: c.Description,
		query:       store.PostQuery{CategoryID: &c.ID},
	})
}

// Tag renders the archive of published posts with a tag.
func (p *Public) Tag(w http.ResponseWriter, r *http.Request) {
	mode := p.mode(w, r)
	t, err := p.terms.tags.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		p.fail(w, r, mode, err)
		return
	}
	if t == nil {
		p.notFound(w, r, mode, "This tag does not exist.")
		return
	}
	p.archive(w, r, mode, archive{
		kind:        cache.KindTag,
		path:        "/tags/" + t.Slug,
		title:       "#" + t.Name,
		description: t.Description,
		query:       store.PostQuery{TagID: &t.ID},
	})
}

type archive struct {
	kind        string
	path        string
	title       string
	description *string
	query       store.PostQuery
}

func (p *Public) archive(w http.ResponseWriter, r *http.Request, mode theme.Mode, a archive) {
	page := searchclient.ParsePage(r.URL.Query().Get("page"))
	key := cache.Key(a.kind, string(mode), a.path, strconv.Itoa(page))
	if p.serveCached(w, r, key) {
		return
	}

	a.query.Page = page
	posts, pg, err := p.posts.Search(r.Context(), a.query)
	if err != nil {
		p.fail(w, r, mode, err)
		return
	}

	path := a.path
	if page > 1 {
		path += "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
	}
	var desc string
	if a.description != nil {
		desc = *a.description
	}
	p.page(w, r, http.StatusOK, "archive", &render.PageData{
		Title:   a.title,
		Section: a.kind,
		Theme:   mode,
		Path:    path,
		Data: map[string]any{
			"Description": desc,
			"Posts":       posts,
			"Pager":       render.NewPager(pg, a.path, nil),
		},
	}, key)
}

// MobileNav renders the open mobile drawer with the branches listed in the
// "open" parameter expanded. HTMX requests get the fragment alone; plain
// requests get a full page around it.
func (p *Public) MobileNav(w http.ResponseWriter, r *http.Request) {
	mode := p.mode(w, r)
	layout, err := p.layout.Load(r.Context())
	if err != nil {
		p.fail(w, r, mode, err)
		return
	}
	drawer := nav.OpenDrawer(nav.ParseState(r.URL.Query().Get("open")))
	fragment := nav.Mobile(layout.Menu, drawer)

	if render.IsHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(fragment))
		return
	}
	p.page(w, r, http.StatusOK, "menu", &render.PageData{
		Title:   "Menu",
		Section: "menu",
		Layout:  layout,
		Theme:   mode,
		Data:    map[string]any{"Nav": fragment},
	}, "")
}

// MobileNavClose renders the closed drawer. Closing forgets every expanded
// branch. Plain requests are sent back to the homepage.
func (p *Public) MobileNavClose(w http.ResponseWriter, r *http.Request) {
	if !render.IsHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	layout, err := p.layout.Load(r.Context())
	if err != nil {
		p.fail(w, r, p.mode(w, r), err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(nav.Mobile(layout.Menu, nav.NewDrawer())))
}

// ThemeToggle flips the colour scheme, stores it in the theme cookie and
// redirects back to the page named by the "return" form field.
func (p *Public) ThemeToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	tc := theme.FromRequest(w, r, p.secureCookies)
	if _, err := tc.Toggle(); err != nil {
		slog.Warn("persist theme failed", "error", err)
	}
	http.Redirect(w, r, safeReturn(r.PostForm.Get("return")), http.StatusSeeOther)
}

// safeReturn only allows local absolute paths as redirect targets.
func safeReturn(s string) string {
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, `/\`) {
		return "/"
	}
	return s
}
