// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// MenuItem is a single row of the navigation menu table. Items form a tree
// through ParentID; a nil ParentID marks a root.
type MenuItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	IsExternal bool   `json:"isExternal"`
	ParentID   *int64 `json:"parentId"`
	Order      int    `json:"order"`
	IsActive   bool   `json:"isActive"`
}

// MenuNode is a MenuItem placed in the navigation tree.
type MenuNode struct {
	Item     MenuItem    `json:"item"`
	Depth    int         `json:"depth"`
	Children []*MenuNode `json:"children,omitempty"`
}

// HasChildren reports whether the node renders as an expandable entry.
func (n *MenuNode) HasChildren() bool {
	return len(n.Children) > 0
}

// Target returns the anchor target for the node's link.
func (n *MenuNode) Target() string {
	if n.Item.IsExternal {
		return "_blank"
	}
	return ""
}

// Rel returns the anchor rel attribute for the node's link.
func (n *MenuNode) Rel() string {
	if n.Item.IsExternal {
		return "noopener noreferrer"
	}
	return ""
}

// Prefetch reports whether the link may be prefetched. External links never are.
func (n *MenuNode) Prefetch() bool {
	return !n.Item.IsExternal
}
