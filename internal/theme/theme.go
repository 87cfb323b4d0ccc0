// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme holds the light/dark colour scheme preference. A Context is
// created per request and passed to whatever renders the page.
package theme

import (
	"net/http"
	"sync"
	"time"
)

// Mode is a colour scheme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// CookieName is the cookie holding the persisted preference.
const CookieName = "theme"

// HintHeader is the client hint carrying the browser's preferred scheme.
const HintHeader = "Sec-CH-Prefers-Color-Scheme"

// ParseMode returns the mode named by s, or false if s names none.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), true
	}
	return "", false
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Resolve picks the persisted preference when valid, then the ambient
// browser preference, then Light.
func Resolve(persisted, ambient string) Mode {
	if m, ok := ParseMode(persisted); ok {
		return m
	}
	if m, ok := ParseMode(ambient); ok {
		return m
	}
	return Light
}

// Persister stores the chosen mode.
type Persister interface {
	Save(Mode) error
}

// Context is the current theme with change notification.
type Context struct {
	mu        sync.Mutex
	mode      Mode
	persister Persister
	nextID    int
	subs      map[int]func(Mode)
}

// NewContext returns a Context starting at mode. A nil persister keeps
// changes in memory only.
func NewContext(mode Mode, p Persister) *Context {
	return &Context{mode: mode, persister: p, subs: make(map[int]func(Mode))}
}

// Get returns the current mode.
func (c *Context) Get() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Set changes the mode, persists it and notifies subscribers.
func (c *Context) Set(m Mode) error {
	if _, ok := ParseMode(string(m)); !ok {
		m = Light
	}

	c.mu.Lock()
	c.mode = m
	return c.commitLocked(m)
}

// commitLocked persists m and notifies subscribers. It must be called with
// c.mu held and releases it before the callbacks run, so saves happen in
// the same order as the mode changes.
func (c *Context) commitLocked(m Mode) error {
	var err error
	if c.persister != nil {
		err = c.persister.Save(m)
	}
	subs := make([]func(Mode), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(m)
	}
	return err
}

// Toggle flips between light and dark and returns the new mode.
func (c *Context) Toggle() (Mode, error) {
	c.mu.Lock()
	next := c.mode.Opposite()
	c.mode = next
	return next, c.commitLocked(next)
}

// Subscribe registers fn to run after every change. The returned function
// removes the subscription.
func (c *Context) Subscribe(fn func(Mode)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// CookiePersister saves the mode in a long-lived cookie.
type CookiePersister struct {
	W      http.ResponseWriter
	Secure bool
}

// Save writes the theme cookie.
func (p CookiePersister) Save(m Mode) error {
	http.SetCookie(p.W, &http.Cookie{
		Name:     CookieName,
		Value:    string(m),
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// FromRequest builds the Context for a request from the theme cookie and
// the colour scheme client hint. Changes are saved back as a cookie.
func FromRequest(w http.ResponseWriter, r *http.Request, secure bool) *Context {
	var persisted string
	if c, err := r.Cookie(CookieName); err == nil {
		persisted = c.Value
	}
	mode := Resolve(persisted, r.Header.Get(HintHeader))
	return NewContext(mode, CookiePersister{W: w, Secure: secure})
}

// RequestHint asks the browser to send its colour scheme preference on
// subsequent requests.
func RequestHint(w http.ResponseWriter) {
	w.Header().Set("Accept-CH", HintHeader)
	w.Header().Add("Vary", HintHeader)
}
