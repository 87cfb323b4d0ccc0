// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for posts, categories
// and tags.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// separators matches runs of anything that isn't an ASCII letter or digit.
	separators = regexp.MustCompile(`[^a-z0-9]+`)
	// Pattern matches a well-formed slug.
	Pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Generate creates a URL-friendly slug from the given string. Accents are
// folded to their base letter and every other run of punctuation or space
// becomes a single hyphen.
// Example: "Café, Résumé! 2026" → "cafe-resume-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(fold(s)))
	result = strings.ReplaceAll(result, "'", "")
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return Pattern.MatchString(s)
}

// fold strips combining marks after canonical decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
