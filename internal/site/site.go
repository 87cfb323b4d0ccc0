// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site loads the data every public page shares: site settings, the
// navigation tree, the taxonomy sidebar and social links.
package site

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"inkblog/internal/menu"
	"inkblog/internal/models"
)

// MenuLister reads active menu items.
type MenuLister interface {
	ListActive(ctx context.Context) ([]models.MenuItem, error)
}

// SettingsReader reads all site settings.
type SettingsReader interface {
	All(ctx context.Context) (models.SiteSettings, error)
}

// TaxonomyLister lists categories and tags with published posts.
type TaxonomyLister interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
}

// SocialLister reads active social links.
type SocialLister interface {
	SocialLinks(ctx context.Context) ([]models.SocialLink, error)
}

// Layout is the shared chrome of a public page.
type Layout struct {
	SiteName    string
	Description string
	Keywords    string
	FooterText  string
	AuthorName  string
	Settings    models.SiteSettings
	Menu        []*models.MenuNode
	Categories  []models.Category
	Tags        []models.Tag
	Social      []models.SocialLink
	Year        int
}

// Loader assembles a Layout from its sources.
type Loader struct {
	menus       MenuLister
	settings    SettingsReader
	taxonomy    TaxonomyLister
	social      SocialLister
	defaultName string
}

// NewLoader returns a Loader. defaultName is the site name used when the
// site_name setting is unset.
func NewLoader(menus MenuLister, settings SettingsReader, taxonomy TaxonomyLister, social SocialLister, defaultName string) *Loader {
	return &Loader{
		menus:       menus,
		settings:    settings,
		taxonomy:    taxonomy,
		social:      social,
		defaultName: defaultName,
	}
}

// Load reads all layout data concurrently. The first failing read cancels
// the others and its error is returned.
func (l *Loader) Load(ctx context.Context) (*Layout, error) {
	var (
		items    []models.MenuItem
		settings models.SiteSettings
		cats     []models.Category
		tags     []models.Tag
		social   []models.SocialLink
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = l.menus.ListActive(ctx)
		return wrap("menus", err)
	})
	g.Go(func() (err error) {
		settings, err = l.settings.All(ctx)
		return wrap("settings", err)
	})
	g.Go(func() (err error) {
		cats, err = l.taxonomy.ListCategories(ctx)
		return wrap("categories", err)
	})
	g.Go(func() (err error) {
		tags, err = l.taxonomy.ListTags(ctx)
		return wrap("tags", err)
	})
	g.Go(func() (err error) {
		social, err = l.social.SocialLinks(ctx)
		return wrap("social links", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if settings == nil {
		settings = models.SiteSettings{}
	}
	return &Layout{
		SiteName:    settings.Get(models.SettingSiteName, l.defaultName),
		Description: settings.Get(models.SettingSiteDescription, ""),
		Keywords:    settings.Get(models.SettingSiteKeywords, ""),
		FooterText:  settings.Get(models.SettingFooterText, ""),
		AuthorName:  settings.Get(models.SettingAuthorName, ""),
		Settings:    settings,
		Menu:        menu.Build(items),
		Categories:  cats,
		Tags:        tags,
		Social:      social,
		Year:        time.Now().Year(),
	}, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", what, err)
	}
	return nil
}
