// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedData is the shape of seed.yaml. References between records use slugs
// (categories, tags) or keys (menus) so the file stays independent of ids.
type SeedData struct {
	Settings   map[string]string `yaml:"settings"`
	Categories []struct {
		Name        string `yaml:"name"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
		Parent      string `yaml:"parent"`
		Order       int    `yaml:"order"`
	} `yaml:"categories"`
	Tags []struct {
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	} `yaml:"tags"`
	Posts []struct {
		Title      string   `yaml:"title"`
		Slug       string   `yaml:"slug"`
		Excerpt    string   `yaml:"excerpt"`
		Content    string   `yaml:"content"`
		Status     string   `yaml:"status"`
		Categories []string `yaml:"categories"`
		Tags       []string `yaml:"tags"`
	} `yaml:"posts"`
	Menus []struct {
		Key      string `yaml:"key"`
		Name     string `yaml:"name"`
		URL      string `yaml:"url"`
		External bool   `yaml:"external"`
		Parent   string `yaml:"parent"`
		Order    int    `yaml:"order"`
	} `yaml:"menus"`
	Social []struct {
		Platform string `yaml:"platform"`
		URL      string `yaml:"url"`
		Icon     string `yaml:"icon"`
		Order    int    `yaml:"order"`
	} `yaml:"social"`
	Contact []struct {
		Type  string `yaml:"type"`
		Value string `yaml:"value"`
		Icon  string `yaml:"icon"`
	} `yaml:"contact"`
	Donation []struct {
		Type        string `yaml:"type"`
		QRCodeURL   string `yaml:"qr_code_url"`
		Description string `yaml:"description"`
	} `yaml:"donation"`
	Hero struct {
		Title           string `yaml:"title"`
		Subtitle        string `yaml:"subtitle"`
		BackgroundImage string `yaml:"background_image"`
	} `yaml:"hero"`
}

// LoadSeed parses seed data from YAML.
func LoadSeed(data []byte) (*SeedData, error) {
	var s SeedData
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &s, nil
}

// Seed populates the database with the embedded development data. It is a
// no-op when any post already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	data, err := LoadSeed(seedYAML)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	if err := seedInto(tx, data); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded",
		"posts", len(data.Posts),
		"categories", len(data.Categories),
		"tags", len(data.Tags),
		"menus", len(data.Menus),
	)
	return nil
}

func seedInto(tx *sql.Tx, data *SeedData) error {
	for k, v := range data.Settings {
		if _, err := tx.Exec(`INSERT INTO site_settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING`, k, v); err != nil {
			return fmt.Errorf("seed setting %s: %w", k, err)
		}
	}

	// Parents are listed before their children in seed.yaml.
	categoryIDs := make(map[string]int64)
	for _, c := range data.Categories {
		var parent *int64
		if c.Parent != "" {
			id, ok := categoryIDs[c.Parent]
			if !ok {
				return fmt.Errorf("seed category %s: unknown parent %s", c.Slug, c.Parent)
			}
			parent = &id
		}
		var id int64
		if err := tx.QueryRow(`INSERT INTO categories (name, slug, description, parent_id, sort_order)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			c.Name, c.Slug, c.Description, parent, c.Order).Scan(&id); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
		categoryIDs[c.Slug] = id
	}

	tagIDs := make(map[string]int64)
	for _, t := range data.Tags {
		var id int64
		if err := tx.QueryRow(`INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id`,
			t.Name, t.Slug).Scan(&id); err != nil {
			return fmt.Errorf("seed tag %s: %w", t.Slug, err)
		}
		tagIDs[t.Slug] = id
	}

	for _, p := range data.Posts {
		var id int64
		err := tx.QueryRow(`INSERT INTO posts (title, slug, content, excerpt, status, published_at)
			VALUES ($1, $2, $3, $4, $5, CASE WHEN $5 = 'published' THEN NOW() END)
			RETURNING id`,
			p.Title, p.Slug, p.Content, p.Excerpt, p.Status).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed post %s: %w", p.Slug, err)
		}
		for _, slug := range p.Categories {
			if _, err := tx.Exec(`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`,
				id, categoryIDs[slug]); err != nil {
				return fmt.Errorf("seed post %s category %s: %w", p.Slug, slug, err)
			}
		}
		for _, slug := range p.Tags {
			if _, err := tx.Exec(`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`,
				id, tagIDs[slug]); err != nil {
				return fmt.Errorf("seed post %s tag %s: %w", p.Slug, slug, err)
			}
		}
	}

	menuIDs := make(map[string]int64)
	for _, m := range data.Menus {
		var parent *int64
		if m.Parent != "" {
			id := menuIDs[m.Parent]
			parent = &id
		}
		var id int64
		if err := tx.QueryRow(`INSERT INTO menus (name, url, is_external, parent_id, sort_order)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			m.Name, m.URL, m.External, parent, m.Order).Scan(&id); err != nil {
			return fmt.Errorf("seed menu %s: %w", m.Key, err)
		}
		menuIDs[m.Key] = id
	}

	for _, s := range data.Social {
		if _, err := tx.Exec(`INSERT INTO social_links (platform, url, icon, sort_order) VALUES ($1, $2, $3, $4)`,
			s.Platform, s.URL, s.Icon, s.Order); err != nil {
			return fmt.Errorf("seed social %s: %w", s.Platform, err)
		}
	}
	for _, c := range data.Contact {
		if _, err := tx.Exec(`INSERT INTO contact_info (type, value, icon) VALUES ($1, $2, $3)`,
			c.Type, c.Value, c.Icon); err != nil {
			return fmt.Errorf("seed contact %s: %w", c.Type, err)
		}
	}
	for _, d := range data.Donation {
		if _, err := tx.Exec(`INSERT INTO donation_info (type, qr_code_url, description) VALUES ($1, $2, $3)`,
			d.Type, d.QRCodeURL, d.Description); err != nil {
			return fmt.Errorf("seed donation %s: %w", d.Type, err)
		}
	}
	if data.Hero.Title != "" {
		if _, err := tx.Exec(`INSERT INTO hero_settings (title, subtitle, background_image) VALUES ($1, $2, $3)`,
			data.Hero.Title, data.Hero.Subtitle, data.Hero.BackgroundImage); err != nil {
			return fmt.Errorf("seed hero: %w", err)
		}
	}
	return nil
}
