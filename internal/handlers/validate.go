// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkblog/internal/menu"
	"inkblog/internal/models"
	"inkblog/internal/slug"
	"inkblog/internal/store"
)

// Validation limits for admin payloads.
const (
	maxTitleLen       = 300
	maxSlugLen        = 300
	maxBodyLen        = 100_000
	maxExcerptLen     = 1_000
	maxNameLen        = 100
	maxDescriptionLen = 1_000
	maxURLLen         = 500
	maxSettingKeyLen  = 100
	maxSettingLen     = 5_000
)

var (
	externalURL = regexp.MustCompile(`^https?://\S+$`)
	internalURL = regexp.MustCompile(`^/\S*$`)
	settingKey  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// postInput is the body of the admin post create and update endpoints.
type postInput struct {
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Content     string            `json:"content"`
	Excerpt     *string           `json:"excerpt"`
	CoverImage  *string           `json:"coverImage"`
	Status      models.PostStatus `json:"status"`
	PublishedAt *time.Time        `json:"publishedAt"`
	CategoryIDs []int64           `json:"categoryIds"`
	TagIDs      []int64           `json:"tagIds"`
}

// normalize trims text fields and derives the slug from the title when
// none was given. Drafts default when no status is set.
func (in *postInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Title)
	}
	if in.Status == "" {
		in.Status = models.PostStatusDraft
	}
}

func (in postInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, maxTitleLen)),
		validation.Field(&in.Slug, validation.Required, validation.Length(1, maxSlugLen), validation.Match(slug.Pattern)),
		validation.Field(&in.Content, validation.RuneLength(0, maxBodyLen)),
		validation.Field(&in.Excerpt, validation.RuneLength(0, maxExcerptLen)),
		validation.Field(&in.CoverImage, validation.Length(0, maxURLLen)),
		validation.Field(&in.Status, validation.Required, validation.In(models.PostStatusDraft, models.PostStatusPublished)),
		validation.Field(&in.CategoryIDs, validation.Each(validation.Required, validation.Min(int64(1)))),
		validation.Field(&in.TagIDs, validation.Each(validation.Required, validation.Min(int64(1)))),
	)
}

func (in postInput) post() *models.Post {
	return &models.Post{
		Title:       in.Title,
		Slug:        in.Slug,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		CoverImage:  in.CoverImage,
		Status:      in.Status,
		PublishedAt: in.PublishedAt,
	}
}

// termInput is the body of the category and tag endpoints. ParentID and
// Order only apply to categories.
type termInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	ParentID    *int64  `json:"parentId"`
	Order       *int    `json:"order"`
}

func (in *termInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	}
}

func (in termInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, maxNameLen)),
		validation.Field(&in.Slug, validation.Required, validation.Length(1, maxSlugLen), validation.Match(slug.Pattern)),
		validation.Field(&in.Description, validation.RuneLength(0, maxDescriptionLen)),
		validation.Field(&in.ParentID, validation.Min(int64(1))),
		validation.Field(&in.Order, validation.Min(0)),
	)
}

// menuInput is the body of the menu create and update endpoints.
type menuInput struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	IsExternal bool   `json:"isExternal"`
	ParentID   *int64 `json:"parentId"`
	Order      int    `json:"order"`
	IsActive   *bool  `json:"isActive"`
}

func (in *menuInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
}

func (in menuInput) Validate() error {
	urlRule := validation.Match(internalURL).Error("must be a site path starting with /")
	if in.IsExternal {
		urlRule = validation.Match(externalURL).Error("must be an http or https URL")
	}
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, maxNameLen)),
		validation.Field(&in.URL, validation.Required, validation.Length(1, maxURLLen), urlRule),
		validation.Field(&in.ParentID, validation.Min(int64(1))),
		validation.Field(&in.Order, validation.Min(0)),
	)
}

func (in menuInput) item() *models.MenuItem {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return &models.MenuItem{
		Name:       in.Name,
		URL:        in.URL,
		IsExternal: in.IsExternal,
		ParentID:   in.ParentID,
		Order:      in.Order,
		IsActive:   active,
	}
}

// checkMenuParent rejects a parent that does not exist, that sits inside
// the item's own subtree, or that would push the item or its children past
// menu.MaxDepth. id is zero for a new item. Inactive items count, since
// they can be reactivated.
func checkMenuParent(items []models.MenuItem, id int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	fail := func(msg string) error {
		return validation.Errors{"parentId": validation.NewError("validation_menu_parent", msg)}
	}
	if *parentID == id {
		return fail("cannot be the item itself")
	}

	all := make([]models.MenuItem, len(items))
	for i, it := range items {
		it.IsActive = true
		all[i] = it
	}
	tree := menu.Build(all)

	parent := menu.Find(tree, *parentID)
	if parent == nil {
		return fail("does not exist")
	}

	height := 0
	if self := menu.Find(tree, id); id != 0 && self != nil {
		inside := false
		menu.Walk(self.Children, func(n *models.MenuNode) {
			if n.Item.ID == *parentID {
				inside = true
			}
		})
		if inside {
			return fail("cannot be nested under its own children")
		}
		height = subtreeHeight(self)
	}
	if parent.Depth+1+height >= menu.MaxDepth {
		return fail(fmt.Sprintf("menus nest at most %d levels", menu.MaxDepth))
	}
	return nil
}

func subtreeHeight(n *models.MenuNode) int {
	h := 0
	for _, c := range n.Children {
		h = max(h, subtreeHeight(c)+1)
	}
	return h
}

// validateSettings checks the keys and values of a settings upsert.
func validateSettings(settings models.SiteSettings) error {
	if len(settings) == 0 {
		return validation.Errors{"settings": validation.NewError("validation_required", "cannot be blank")}
	}
	errs := validation.Errors{}
	for k, v := range settings {
		err := validation.Validate(k, validation.Length(1, maxSettingKeyLen), validation.Match(settingKey))
		if err == nil {
			err = validation.Validate(v, validation.RuneLength(0, maxSettingLen))
		}
		if err != nil {
			errs[k] = err
		}
	}
	return errs.Filter()
}

// validateReorder checks a category reorder payload.
func validateReorder(items []store.ReorderItem) error {
	errs := validation.Errors{}
	if len(items) == 0 {
		errs["items"] = validation.NewError("validation_required", "cannot be blank")
	}
	for i, it := range items {
		err := validation.ValidateStruct(&it,
			validation.Field(&it.ID, validation.Required, validation.Min(int64(1))),
			validation.Field(&it.ParentID, validation.Min(int64(1))),
			validation.Field(&it.Order, validation.Min(0)),
		)
		if err != nil {
			errs["items."+strconv.Itoa(i)] = err
		}
		if it.ParentID != nil && *it.ParentID == it.ID {
			errs["items."+strconv.Itoa(i)] = validation.NewError("validation_self_parent", "cannot be its own parent")
		}
	}
	return errs.Filter()
}
