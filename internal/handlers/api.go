// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inkblog/internal/markdown"
	"inkblog/internal/menu"
	"inkblog/internal/models"
	"inkblog/internal/searchclient"
	"inkblog/internal/store"
	"inkblog/internal/taxonomy"
)

// API groups the public read-only JSON endpoints under /api.
type API struct {
	settings *store.SiteSettingStore
	profile  *store.ProfileStore
	posts    *store.PostStore
	menus    *store.MenuStore
	taxonomy *taxonomy.Aggregator
	terms    termLookup
	siteName string
}

// NewAPI creates the public API handler group. siteName is reported when
// the site_name setting is unset.
func NewAPI(settings *store.SiteSettingStore, profile *store.ProfileStore, posts *store.PostStore, categories *store.CategoryStore, tags *store.TagStore, menus *store.MenuStore, agg *taxonomy.Aggregator, siteName string) *API {
	return &API{
		settings: settings,
		profile:  profile,
		posts:    posts,
		menus:    menus,
		taxonomy: agg,
		terms:    termLookup{categories: categories, tags: tags},
		siteName: siteName,
	}
}

// generalSettings is the body of GET /api/settings/general.
type generalSettings struct {
	SiteName        string `json:"siteName"`
	SiteDescription string `json:"siteDescription"`
	SiteKeywords    string `json:"siteKeywords"`
	FooterText      string `json:"footerText"`
	AuthorName      string `json:"authorName"`
	AuthorAvatar    string `json:"authorAvatar"`
	AuthorBio       string `json:"authorBio"`
}

// SettingsGeneral returns the site identity settings.
func (a *API) SettingsGeneral(w http.ResponseWriter, r *http.Request) {
	s, err := a.settings.All(r.Context())
	if err != nil {
		writeInternal(w, r, "load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, generalSettings{
		SiteName:        s.Get(models.SettingSiteName, a.siteName),
		SiteDescription: s.Get(models.SettingSiteDescription, ""),
		SiteKeywords:    s.Get(models.SettingSiteKeywords, ""),
		FooterText:      s.Get(models.SettingFooterText, ""),
		AuthorName:      s.Get(models.SettingAuthorName, ""),
		AuthorAvatar:    s.Get(models.SettingAuthorAvatar, ""),
		AuthorBio:       s.Get(models.SettingAuthorBio, ""),
	})
}

// SettingsSocial returns the active social links.
func (a *API) SettingsSocial(w http.ResponseWriter, r *http.Request) {
	links, err := a.profile.SocialLinks(r.Context())
	if err != nil {
		writeInternal(w, r, "list social links", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(links))
}

// SettingsContact returns the active contact entries.
func (a *API) SettingsContact(w http.ResponseWriter, r *http.Request) {
	items, err := a.profile.ContactInfo(r.Context())
	if err != nil {
		writeInternal(w, r, "list contact info", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// SettingsDonation returns the active donation channels.
func (a *API) SettingsDonation(w http.ResponseWriter, r *http.Request) {
	items, err := a.profile.DonationInfo(r.Context())
	if err != nil {
		writeInternal(w, r, "list donation info", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// SettingsHero returns the active hero banner, or null when there is none.
func (a *API) SettingsHero(w http.ResponseWriter, r *http.Request) {
	hero, err := a.profile.Hero(r.Context())
	if err != nil {
		writeInternal(w, r, "find hero", err)
		return
	}
	writeJSON(w, http.StatusOK, hero)
}

// Search answers GET /api/search?q&category&tag&page&pageSize with one page
// of published posts plus the filter lists.
func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := r.URL.Query()
	q := searchclient.FromValues(params)

	pageSize := store.DefaultPageSize
	if n, err := strconv.Atoi(params.Get("pageSize")); err == nil && n > 0 {
		pageSize = n
	}

	pq, err := a.terms.postQuery(ctx, q, pageSize)
	if err != nil {
		writeInternal(w, r, "resolve search filters", err)
		return
	}
	posts, page, err := a.posts.Search(ctx, pq)
	if err != nil {
		writeInternal(w, r, "search posts", err)
		return
	}
	cats, err := a.taxonomy.ListCategories(ctx)
	if err != nil {
		writeInternal(w, r, "list categories", err)
		return
	}
	tags, err := a.taxonomy.ListTags(ctx)
	if err != nil {
		writeInternal(w, r, "list tags", err)
		return
	}

	writeJSON(w, http.StatusOK, searchclient.Response{
		Query:      q.Text,
		Posts:      listed(posts),
		Filters:    searchclient.Filters{Categories: nonNil(cats), Tags: nonNil(tags)},
		Pagination: page,
	})
}

// Menus returns the flat list of active menu items.
func (a *API) Menus(w http.ResponseWriter, r *http.Request) {
	items, err := a.menus.ListActive(r.Context())
	if err != nil {
		writeInternal(w, r, "list menus", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// MenusTree returns the active menu items assembled into a tree.
func (a *API) MenusTree(w http.ResponseWriter, r *http.Request) {
	items, err := a.menus.ListActive(r.Context())
	if err != nil {
		writeInternal(w, r, "list menus", err)
		return
	}
	writeJSON(w, http.StatusOK, menu.Build(items))
}

// Categories returns categories with published posts and their counts.
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := a.taxonomy.ListCategories(r.Context())
	if err != nil {
		writeInternal(w, r, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(cats))
}

// Tags returns tags with published posts and their counts.
func (a *API) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.taxonomy.ListTags(r.Context())
	if err != nil {
		writeInternal(w, r, "list tags", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(tags))
}

// postBody is a published post with its rendered body.
type postBody struct {
	models.Post
	HTML template.HTML `json:"html"`
}

// Post returns a published post by slug.
func (a *API) Post(w http.ResponseWriter, r *http.Request) {
	p, err := a.posts.FindPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeInternal(w, r, "find post", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	body, err := markdown.ToHTML(p.Content)
	if err != nil {
		writeInternal(w, r, "render post", err)
		return
	}
	writeJSON(w, http.StatusOK, postBody{Post: *p, HTML: body})
}

// nonNil returns an empty slice for nil so JSON encodes [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
