// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inkblog/internal/menu"
	"inkblog/internal/models"
	"inkblog/internal/searchclient"
)

var (
	serverURL   string
	searchQuery searchclient.Query
	pageSize    int
	interactive bool
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search the posts of a running blog",
	Long: `Search queries /api/search on a running blog and prints the listing.
With --interactive every line read from stdin replaces the query, and only
the results of the latest line are shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := searchclient.New(serverURL, nil)
		client.PageSize = pageSize

		q := searchQuery
		q.Text = strings.Join(args, " ")

		if interactive {
			return searchInteractive(cmd.Context(), client, cmd.InOrStdin(), cmd.OutOrStdout(), q)
		}
		return searchOnce(cmd.Context(), client, cmd.OutOrStdout(), q)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the navigation tree of a running blog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		items, err := searchclient.New(serverURL, nil).Menus(ctx)
		if err != nil {
			return err
		}
		printMenu(cmd.OutOrStdout(), menu.Build(items))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, menuCmd} {
		c.Flags().StringVar(&serverURL, "url", "http://localhost:8080", "base URL of the blog")
	}
	searchCmd.Flags().StringVar(&searchQuery.Category, "category", "", "category slug")
	searchCmd.Flags().StringVar(&searchQuery.Tag, "tag", "", "tag slug")
	searchCmd.Flags().IntVar(&searchQuery.Page, "page", 1, "page number")
	searchCmd.Flags().IntVar(&pageSize, "page-size", 0, "posts per page (server default when 0)")
	searchCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read queries from stdin")

	rootCmd.AddCommand(searchCmd, menuCmd)
}

func searchOnce(ctx context.Context, s searchclient.Searcher, out io.Writer, q searchclient.Query) error {
	l := searchclient.NewListing(s, searchclient.WithDebounce(0))
	defer l.Close()

	l.Submit(q)
	v, err := l.Wait(ctx)
	if err != nil {
		return err
	}
	if err := searchclient.Render(out, v); err != nil {
		return err
	}
	if v.Phase == searchclient.PhaseError {
		return v.Err
	}
	return nil
}

// searchInteractive submits each input line as the new search text, keeping
// the filters from the flags. Settled views are printed as they arrive.
func searchInteractive(ctx context.Context, s searchclient.Searcher, in io.Reader, out io.Writer, base searchclient.Query) error {
	l := searchclient.NewListing(s)
	defer l.Close()

	unsubscribe := l.Subscribe(func(v searchclient.View) {
		if v.Phase == searchclient.PhaseLoading {
			return
		}
		fmt.Fprintln(out, "---")
		_ = searchclient.Render(out, v)
	})
	defer unsubscribe()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		q := base
		q.Text = sc.Text()
		q.Page = 1
		l.Submit(q)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	_, err := l.Wait(ctx)
	return err
}

func printMenu(w io.Writer, tree []*models.MenuNode) {
	if len(tree) == 0 {
		fmt.Fprintln(w, "(no menu items)")
		return
	}
	menu.Walk(tree, func(n *models.MenuNode) {
		marker := ""
		if n.Item.IsExternal {
			marker = " [external]"
		}
		fmt.Fprintf(w, "%s- %s  %s%s\n", strings.Repeat("  ", n.Depth), n.Item.Name, n.Item.URL, marker)
	})
}
