// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web provides the embedded static assets of the public site,
// served at /static/. HTMX itself is loaded from unpkg.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree: the site stylesheet with
// the light and dark palettes and the navigation drawer rules.
//
//go:embed all:static
var StaticFS embed.FS
