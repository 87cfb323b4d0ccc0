// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package nav renders the site navigation: a stateless desktop bar with
// hover dropdowns and a mobile drawer whose expanded nodes travel in the URL.
package nav

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/url"

	"inkblog/internal/models"
)

// Drawer fragment endpoints.
const (
	MobilePath      = "/nav/mobile"
	MobileClosePath = "/nav/mobile/close"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Desktop renders the desktop navigation bar. It has no per-user state:
// submenus open on hover through CSS alone.
func Desktop(tree []*models.MenuNode) template.HTML {
	return execute("desktop", tree)
}

// mobileItem is a node prepared for the drawer template.
type mobileItem struct {
	Node       *models.MenuNode
	ID         string
	Expandable bool
	Expanded   bool
	ToggleHref string
	Children   []mobileItem
}

type mobileView struct {
	Open      bool
	OpenHref  string
	CloseHref string
	Items     []mobileItem
}

// Mobile renders the drawer fragment for the given drawer state. Each toggle
// link carries the state that results from clicking it.
func Mobile(tree []*models.MenuNode, d *Drawer) template.HTML {
	view := mobileView{
		Open:      d.IsOpen(),
		OpenHref:  MobilePath,
		CloseHref: MobileClosePath,
	}
	if d.IsOpen() {
		view.Items = mobileItems(tree, d.State())
	}
	return execute("mobile", view)
}

func mobileItems(nodes []*models.MenuNode, s State) []mobileItem {
	items := make([]mobileItem, 0, len(nodes))
	for _, n := range nodes {
		it := mobileItem{Node: n, ID: NodeID(n)}
		if it.ID != "" && n.HasChildren() {
			it.Expandable = true
			it.Expanded = s.Expanded(it.ID)
			it.ToggleHref = Href(s.Toggled(it.ID))
			if it.Expanded {
				it.Children = mobileItems(n.Children, s)
			}
		}
		items = append(items, it)
	}
	return items
}

// Href returns the drawer URL that restores the given state.
func Href(s State) string {
	enc := s.Encode()
	if enc == "" {
		return MobilePath
	}
	return MobilePath + "?" + url.Values{"open": {enc}}.Encode()
}

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("render navigation", "template", name, "error", err)
		return ""
	}
	return template.HTML(buf.String())
}
