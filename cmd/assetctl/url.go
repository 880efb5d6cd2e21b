package main

import (
	"fmt"
	"net/url"
	"strings"

	"assetdesk/internal/domain/asset"
	"assetdesk/internal/listing"

	"github.com/spf13/cobra"
)

func (a *app) urlCmd() *cobra.Command {
	var (
		s        listing.ListState
		category string
		status   string
		base     string
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the admin list URL for a page, search and filters",
		Args:  cobra.NoArgs,
		// no API call
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(strings.TrimRight(base, "/") + "/admin/assets")
			if err != nil {
				return fmt.Errorf("invalid base URL: %w", err)
			}
			s.Category = asset.Category(strings.TrimSpace(category))
			s.Status = asset.Status(strings.TrimSpace(status))

			canonical, _ := listing.WriteListState(u, s.Normalize())
			fmt.Fprintln(cmd.OutOrStdout(), canonical.String())
			return nil
		},
	}

	defBase := a.cfg.App.BaseURL
	if defBase == "" {
		defBase = a.cfg.Client.APIURL
	}
	f := cmd.Flags()
	f.StringVar(&base, "base", defBase, "admin UI base URL")
	f.IntVar(&s.PageIndex, "page", listing.DefaultPageIndex, "zero-based page index")
	f.IntVar(&s.PageSize, "size", listing.DefaultPageSize, "page size (10, 20 or 50)")
	f.StringVar(&s.Query, "q", "", "search text")
	f.StringVar(&category, "category", "", "category filter")
	f.StringVar(&status, "status", "", "status filter")
	return cmd
}
