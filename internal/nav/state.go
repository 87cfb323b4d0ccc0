// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package nav

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"inkblog/internal/models"
)

// validID matches the ids produced by NodeID.
var validID = regexp.MustCompile(`^(menu|submenu)-[0-9]+$`)

// NodeID returns the expansion id of a node: "menu-<id>" at the top level,
// "submenu-<id>" one level down. Deeper nodes are leaves and get "".
func NodeID(n *models.MenuNode) string {
	switch n.Depth {
	case 0:
		return fmt.Sprintf("menu-%d", n.Item.ID)
	case 1:
		return fmt.Sprintf("submenu-%d", n.Item.ID)
	default:
		return ""
	}
}

// State records which drawer nodes are expanded. Absent ids are collapsed.
type State map[string]bool

// ParseState reads a comma-separated list of expanded node ids, as carried
// in the ?open= query parameter. Unknown or malformed ids are ignored.
func ParseState(raw string) State {
	s := make(State)
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if validID.MatchString(id) {
			s[id] = true
		}
	}
	return s
}

// Encode returns the expanded ids sorted and comma-separated.
func (s State) Encode() string {
	ids := slices.Sorted(maps.Keys(s))
	out := ids[:0]
	for _, id := range ids {
		if s[id] {
			out = append(out, id)
		}
	}
	return strings.Join(out, ",")
}

// Expanded reports whether the node is expanded.
func (s State) Expanded(id string) bool {
	return s[id]
}

// Toggled returns a copy of the state with only id flipped.
func (s State) Toggled(id string) State {
	next := maps.Clone(s)
	if next == nil {
		next = make(State)
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	return next
}

// Drawer is the mobile navigation overlay. It owns the expansion state of
// its nodes; closing the drawer collapses everything. The zero value is a
// closed drawer with nothing expanded.
type Drawer struct {
	open  bool
	state State
}

// NewDrawer returns a closed drawer with nothing expanded.
func NewDrawer() *Drawer {
	return &Drawer{state: make(State)}
}

// OpenDrawer returns an open drawer restored from a previously encoded state.
func OpenDrawer(s State) *Drawer {
	d := &Drawer{open: true, state: maps.Clone(s)}
	if d.state == nil {
		d.state = make(State)
	}
	return d
}

// Open shows the overlay.
func (d *Drawer) Open() {
	d.open = true
}

// Close hides the overlay and collapses every node.
func (d *Drawer) Close() {
	d.open = false
	clear(d.state)
}

// IsOpen reports whether the overlay is shown.
func (d *Drawer) IsOpen() bool {
	return d.open
}

// Toggle flips the expansion of a single node and returns its new value.
// No other node is affected.
func (d *Drawer) Toggle(id string) bool {
	if d.state[id] {
		delete(d.state, id)
		return false
	}
	if d.state == nil {
		d.state = make(State)
	}
	d.state[id] = true
	return true
}

// Expanded reports whether the node is expanded.
func (d *Drawer) Expanded(id string) bool {
	return d.state[id]
}

// State returns a copy of the current expansion state.
func (d *Drawer) State() State {
	return maps.Clone(d.state)
}
