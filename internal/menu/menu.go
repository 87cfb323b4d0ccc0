// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package menu turns the flat menu table into the navigation tree rendered
// by the desktop bar and the mobile drawer.
package menu

import (
	"cmp"
	"slices"

	"inkblog/internal/models"
)

// MaxDepth is the number of levels the navigation renders. Items that would
// sit deeper are promoted to the top level.
const MaxDepth = 3

// Build arranges active menu items into a tree ordered by Order at every
// level. Every active item appears exactly once: items whose parent is
// missing, inactive or themselves become roots, and so do items that cannot
// be reached within MaxDepth levels (too deep, or caught in a parent cycle).
func Build(items []models.MenuItem) []*models.MenuNode {
	active := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if it.IsActive {
			active = append(active, it)
		}
	}

	known := make(map[int64]bool, len(active))
	for _, it := range active {
		known[it.ID] = true
	}

	children := make(map[int64][]int, len(active))
	var rootIdx []int
	for i, it := range active {
		if isRoot(it, known) {
			rootIdx = append(rootIdx, i)
			continue
		}
		children[*it.ParentID] = append(children[*it.ParentID], i)
	}
	for _, idx := range children {
		sortByOrder(active, idx)
	}

	b := builder{items: active, children: children, placed: make([]bool, len(active))}

	var roots []*models.MenuNode
	for _, i := range rootIdx {
		roots = append(roots, b.attach(i, 0))
	}
	// Whatever is still unplaced sits too deep or in a cycle.
	for i := range active {
		if !b.placed[i] {
			roots = append(roots, b.attach(i, 0))
		}
	}

	slices.SortStableFunc(roots, func(a, c *models.MenuNode) int {
		return cmp.Compare(a.Item.Order, c.Item.Order)
	})
	return roots
}

func isRoot(it models.MenuItem, known map[int64]bool) bool {
	if it.ParentID == nil {
		return true
	}
	p := *it.ParentID
	return p == it.ID || !known[p]
}

func sortByOrder(items []models.MenuItem, idx []int) {
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(items[a].Order, items[b].Order)
	})
}

type builder struct {
	items    []models.MenuItem
	children map[int64][]int
	placed   []bool
}

func (b *builder) attach(i, depth int) *models.MenuNode {
	b.placed[i] = true
	node := &models.MenuNode{Item: b.items[i], Depth: depth}
	if depth+1 >= MaxDepth {
		return node
	}
	for _, c := range b.children[b.items[i].ID] {
		if b.placed[c] {
			continue
		}
		node.Children = append(node.Children, b.attach(c, depth+1))
	}
	return node
}

// Walk visits every node depth-first, parents before children.
func Walk(tree []*models.MenuNode, fn func(*models.MenuNode)) {
	for _, n := range tree {
		fn(n)
		Walk(n.Children, fn)
	}
}

// Count returns the number of nodes in the tree.
func Count(tree []*models.MenuNode) int {
	n := 0
	Walk(tree, func(*models.MenuNode) { n++ })
	return n
}

// Find returns the node for the given item id, or nil.
func Find(tree []*models.MenuNode, id int64) *models.MenuNode {
	for _, n := range tree {
		if n.Item.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}
