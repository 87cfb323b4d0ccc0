// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package searchclient drives the post listing from the outside: it sends
// the search tuple to the blog's JSON API and keeps a single view whose
// newest query always wins over slower, older ones.
package searchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"inkblog/internal/models"
)

// Filters lists the categories and tags a search can be narrowed by.
type Filters struct {
	Categories []models.Category `json:"categories"`
	Tags       []models.Tag      `json:"tags"`
}

// Response is the body of GET /api/search.
type Response struct {
	Query      string            `json:"query"`
	Posts      []models.Post     `json:"posts"`
	Filters    Filters           `json:"filters"`
	Pagination models.Pagination `json:"pagination"`
}

// Client calls the blog's public JSON API.
type Client struct {
	baseURL  string
	http     *http.Client
	PageSize int
}

// New returns a Client for the server at baseURL. A nil http.Client gets a
// default one with a 10 second timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Search runs a query against /api/search.
func (c *Client) Search(ctx context.Context, q Query) (*Response, error) {
	v := q.Values()
	if c.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(c.PageSize))
	}
	var out Response
	if err := c.get(ctx, "/api/search?"+v.Encode(), &out); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &out, nil
}

// Menus fetches the flat list of active menu items.
func (c *Client) Menus(ctx context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	if err := c.get(ctx, "/api/menus", &out); err != nil {
		return nil, fmt.Errorf("menus: %w", err)
	}
	return out, nil
}

// get performs a GET request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, body.Error)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
