package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"assetdesk/internal/api"
	"assetdesk/internal/client"
	"assetdesk/internal/domain/asset"
	"assetdesk/internal/listing"

	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	var (
		p        client.ListParams
		category string
		status   string
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Category = asset.Category(strings.TrimSpace(category))
			p.Status = asset.Status(strings.TrimSpace(status))

			page, err := a.client.List(cmd.Context(), p)
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) {
					printErrorState(cmd.ErrOrStderr(), client.ResolveError(apiErr))
				}
				return err
			}
			printPage(cmd.OutOrStdout(), page, maxPages)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&p.Page, "page", 0, "zero-based page index")
	f.IntVar(&p.Size, "size", listing.DefaultPageSize, "page size")
	f.StringVar(&p.Query, "q", "", "search name or serial number")
	f.StringVar(&category, "category", "", "category filter")
	f.StringVar(&status, "status", "", "status filter")
	f.StringSliceVar(&p.Sort, "sort", nil, "sort order as field[,asc|desc]; repeatable")
	f.IntVar(&maxPages, "max-pages", a.cfg.UI.MaxVisiblePages, "numbered pages shown in the page window")
	return cmd
}

func printPage(w io.Writer, page *api.PageResponse, maxPages int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSERIAL\tCATEGORY\tSTATUS\tACQUIRED")
	for _, it := range page.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Name, it.SerialNumber, it.Category.Label(), it.Status.Label(), it.AcquisitionDate)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d asset(s)", page.TotalElements)
	if window := pageWindow(page.Page, page.TotalPages, maxPages); window != "" {
		fmt.Fprintf(w, "  pages: %s", window)
	}
	fmt.Fprintln(w)
}

// pageWindow renders the page buttons as text, the current page in brackets.
func pageWindow(current, total, maxPages int) string {
	items := listing.BuildPageWindow(current, total, maxPages)
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if !it.IsGap() && it.Page() == current {
			parts = append(parts, "["+it.Label()+"]")
			continue
		}
		parts = append(parts, it.Label())
	}
	return strings.Join(parts, " ")
}

func printErrorState(w io.Writer, st client.ErrorState) {
	fmt.Fprintf(w, "%s: %s\n", st.Title, st.Description)
	for _, fe := range st.FieldErrors {
		fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
	}
}
