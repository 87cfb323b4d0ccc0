// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"inkblog/internal/cache"
	"inkblog/internal/models"
	"inkblog/internal/searchclient"
	"inkblog/internal/store"
)

// cacheLogLimit is the number of entries returned by the cache log endpoint.
const cacheLogLimit = 50

// Admin groups the admin JSON endpoints under /api/admin. Every write
// clears the page cache, since menus and the sidebar appear on every page,
// and records the change in the cache invalidation log.
type Admin struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	tags       *store.TagStore
	menus      *store.MenuStore
	settings   *store.SiteSettingStore
	stats      *store.StatsStore
	pageCache  *cache.PageCache
	cacheLog   *store.CacheLogStore
}

// NewAdmin creates the admin handler group. pageCache may be nil.
func NewAdmin(posts *store.PostStore, categories *store.CategoryStore, tags *store.TagStore, menus *store.MenuStore, settings *store.SiteSettingStore, stats *store.StatsStore, pageCache *cache.PageCache, cacheLog *store.CacheLogStore) *Admin {
	return &Admin{
		posts:      posts,
		categories: categories,
		tags:       tags,
		menus:      menus,
		settings:   settings,
		stats:      stats,
		pageCache:  pageCache,
		cacheLog:   cacheLog,
	}
}

// invalidate clears cached pages after a write and logs the cause.
func (a *Admin) invalidate(ctx context.Context, entity string, id int64, action string) {
	a.pageCache.InvalidateAll(ctx)
	a.cacheLog.Log(ctx, entity, id, action)
}

// writeStoreError maps constraint violations to client errors and anything
// else to a 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, what string, err error) {
	switch {
	case store.IsUniqueViolation(err):
		writeError(w, http.StatusConflict, "slug already in use")
	case store.IsForeignKeyViolation(err):
		writeError(w, http.StatusBadRequest, "referenced record does not exist")
	default:
		writeInternal(w, r, what, err)
	}
}

// --- Posts ---

// postPage is the body of the admin post listing.
type postPage struct {
	Posts      []models.Post     `json:"posts"`
	Pagination models.Pagination `json:"pagination"`
}

// PostsList lists posts of any status, newest first. It accepts the same
// q, page and pageSize parameters as the public search.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := searchclient.FromValues(params)
	pageSize, _ := strconv.Atoi(params.Get("pageSize"))

	posts, pg, err := a.posts.Search(r.Context(), store.PostQuery{
		Text:          q.Text,
		Page:          q.Page,
		PageSize:      pageSize,
		IncludeDrafts: true,
	})
	if err != nil {
		writeInternal(w, r, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, postPage{Posts: listed(posts), Pagination: pg})
}

// PostGet returns a post of any status by id.
func (a *Admin) PostGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, err := a.posts.FindByID(r.Context(), id)
	if err != nil {
		writeInternal(w, r, "find post", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PostCreate creates a post with its category and tag links.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	p, err := a.posts.Create(r.Context(), in.post(), in.CategoryIDs, in.TagIDs)
	if err != nil {
		writeStoreError(w, r, "create post", err)
		return
	}
	a.invalidate(r.Context(), "post", p.ID, "create")
	writeJSON(w, http.StatusCreated, p)
}

// PostUpdate replaces a post and its links.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in postInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	ctx := r.Context()
	existing, err := a.posts.FindByID(ctx, id)
	if err != nil {
		writeInternal(w, r, "find post", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	p := in.post()
	p.ID = id
	if p.PublishedAt == nil {
		p.PublishedAt = existing.PublishedAt
	}
	if err := a.posts.Update(ctx, p, in.CategoryIDs, in.TagIDs); err != nil {
		writeStoreError(w, r, "update post", err)
		return
	}
	a.invalidate(ctx, "post", id, "update")

	updated, err := a.posts.FindByID(ctx, id)
	if err != nil {
		writeInternal(w, r, "find post", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// PostDelete removes a post.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := a.posts.Delete(r.Context(), id); err != nil {
		writeInternal(w, r, "delete post", err)
		return
	}
	a.invalidate(r.Context(), "post", id, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// --- Categories ---

// CategoriesList returns every category with its published post count,
// including categories without posts.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cats, err := a.categories.List(ctx)
	if err != nil {
		writeInternal(w, r, "list categories", err)
		return
	}
	counts, err := a.categories.PublishedCounts(ctx)
	if err != nil {
		writeInternal(w, r, "count categories", err)
		return
	}
	for i := range cats {
		cats[i].PostCount = counts[cats[i].ID]
	}
	writeJSON(w, http.StatusOK, nonNil(cats))
}

// CategoryCreate creates a category placed after its last sibling.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var in termInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	c, err := a.categories.Create(r.Context(), &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ParentID:    in.ParentID,
	})
	if err != nil {
		writeStoreError(w, r, "create category", err)
		return
	}
	a.invalidate(r.Context(), "category", c.ID, "create")
	writeJSON(w, http.StatusCreated, c)
}

// CategoryUpdate updates a category. The order is kept when omitted.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in termInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		writeValidation(w, err)
		return
	}
	if in.ParentID != nil && *in.ParentID == id {
		writeError(w, http.StatusBadRequest, "a category cannot be its own parent")
		return
	}

	ctx := r.Context()
	c, err := a.categories.FindByID(ctx, id)
	if err != nil {
		writeInternal(w, r, "find category", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	c.Name, c.Slug, c.Description, c.ParentID = in.Name, in.Slug, in.Description, in.ParentID
	if in.Order != nil {
		c.Order = *in.Order
	}
	if err := a.categories.Update(ctx, c); err != nil {
		writeStoreError(w, r, "update category", err)
		return
	}
	a.invalidate(ctx, "category", id, "update")
	writeJSON(w, http.StatusOK, c)
}

// CategoryDelete removes a category. Its children become roots.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := a.categories.Delete(r.Context(), id); err != nil {
		writeInternal(w, r, "delete category", err)
		return
	}
	a.invalidate(r.Context(), "category", id, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// CategoriesReorder moves categories to new parents and positions.
func (a *Admin) CategoriesReorder(w http.ResponseWriter, r *http.Request) {
	var items []store.ReorderItem
	if !decodeJSON(w, r, &items) {
		return
	}
	if err := validateReorder(items); err != nil {
		writeValidation(w, err)
		return
	}
	if err := a.categories.Reorder(r.Context(), items); err != nil {
		writeStoreError(w, r, "reorder categories", err)
		return
	}
	a.invalidate(r.Context(), "category", 0, "reorder")
	w.WriteHeader(http.StatusNoContent)
}

// --- Tags ---

// TagsList returns every tag with its published post count.
func (a *Admin) TagsList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tags, err := a.tags.List(ctx)
	if err != nil {
		writeInternal(w, r, "list tags", err)
		return
	}
	counts, err := a.tags.PublishedCounts(ctx)
	if err != nil {
		writeInternal(w, r, "count tags", err)
		return
	}
	for i := range tags {
		tags[i].PostCount = counts[tags[i].ID]
	}
	writeJSON(w, http.StatusOK, nonNil(tags))
}

// TagCreate creates a tag.
func (a *Admin) TagCreate(w http.ResponseWriter, r *http.Request) {
	var in termInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	t, err := a.tags.Create(r.Context(), &models.Tag{Name: in.Name, Slug: in.Slug, Description: in.Description})
	if err != nil {
		writeStoreError(w, r, "create tag", err)
		return
	}
	a.invalidate(r.Context(), "tag", t.ID, "create")
	writeJSON(w, http.StatusCreated, t)
}

// TagUpdate renames a tag.
func (a *Admin) TagUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in termInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	ctx := r.Context()
	t, err := a.tags.FindByID(ctx, id)
	if err != nil {
		writeInternal(w, r, "find tag", err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}
	t.Name, t.Slug, t.Description = in.Name, in.Slug, in.Description
	if err := a.tags.Update(ctx, t); err != nil {
		writeStoreError(w, r, "update tag", err)
		return
	}
	a.invalidate(ctx, "tag", id, "update")
	writeJSON(w, http.StatusOK, t)
}

// TagDelete removes a tag.
func (a *Admin) TagDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := a.tags.Delete(r.Context(), id); err != nil {
		writeInternal(w, r, "delete tag", err)
		return
	}
	a.invalidate(r.Context(), "tag", id, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// --- Menus ---

// MenusList returns every menu item, active or not.
func (a *Admin) MenusList(w http.ResponseWriter, r *http.Request) {
	items, err := a.menus.ListAll(r.Context())
	if err != nil {
		writeInternal(w, r, "list menus", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// MenuCreate creates a menu item. Items are active unless told otherwise.
func (a *Admin) MenuCreate(w http.ResponseWriter, r *http.Request) {
	var in menuInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		writeValidation(w, err)
		return
	}
	if !a.menuParentOK(w, r, 0, in.ParentID) {
		return
	}

	m, err := a.menus.Create(r.Context(), in.item())
	if err != nil {
		writeStoreError(w, r, "create menu", err)
		return
	}
	a.invalidate(r.Context(), "menu", m.ID, "create")
	writeJSON(w, http.StatusCreated, m)
}

// MenuUpdate replaces a menu item.
func (a *Admin) MenuUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in menuInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	ctx := r.Context()
	existing, err := a.menus.FindByID(ctx, id)
	if err != nil {
		writeInternal(w, r, "find menu", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	if !a.menuParentOK(w, r, id, in.ParentID) {
		return
	}
	m := in.item()
	m.ID = id
	if in.IsActive == nil {
		m.IsActive = existing.IsActive
	}
	if err := a.menus.Update(ctx, m); err != nil {
		writeStoreError(w, r, "update menu", err)
		return
	}
	a.invalidate(ctx, "menu", id, "update")
	writeJSON(w, http.StatusOK, m)
}

// menuParentOK checks the requested parent against the current menu tree
// and writes the error response when it is rejected.
func (a *Admin) menuParentOK(w http.ResponseWriter, r *http.Request, id int64, parentID *int64) bool {
	if parentID == nil {
		return true
	}
	items, err := a.menus.ListAll(r.Context())
	if err != nil {
		writeInternal(w, r, "list menus", err)
		return false
	}
	if err := checkMenuParent(items, id, parentID); err != nil {
		writeValidation(w, err)
		return false
	}
	return true
}

// MenuDelete removes a menu item. Its children become roots.
func (a *Admin) MenuDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := a.menus.Delete(r.Context(), id); err != nil {
		writeInternal(w, r, "delete menu", err)
		return
	}
	a.invalidate(r.Context(), "menu", id, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// --- Settings, stats and cache log ---

// SettingsGet returns every site setting as a key/value map.
func (a *Admin) SettingsGet(w http.ResponseWriter, r *http.Request) {
	s, err := a.settings.All(r.Context())
	if err != nil {
		writeInternal(w, r, "load settings", err)
		return
	}
	if s == nil {
		s = models.SiteSettings{}
	}
	writeJSON(w, http.StatusOK, s)
}

// SettingsUpdate upserts the given settings. A null value clears a key.
func (a *Admin) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.SiteSettings
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := validateSettings(in); err != nil {
		writeValidation(w, err)
		return
	}
	if err := a.settings.SetMany(r.Context(), in); err != nil {
		writeInternal(w, r, "save settings", err)
		return
	}
	a.invalidate(r.Context(), "settings", 0, "update")
	a.SettingsGet(w, r)
}

// Stats returns content totals and the most recent published posts.
func (a *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := a.stats.Stats(r.Context())
	if err != nil {
		writeInternal(w, r, "load stats", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// CacheLog returns the most recent page cache invalidations.
func (a *Admin) CacheLog(w http.ResponseWriter, r *http.Request) {
	entries, err := a.cacheLog.RecentEntries(r.Context(), cacheLogLimit)
	if err != nil {
		writeInternal(w, r, "list cache log", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}
