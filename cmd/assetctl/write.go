package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"assetdesk/internal/api"
	"assetdesk/internal/client"
	"assetdesk/internal/domain/asset"

	"github.com/spf13/cobra"
)

type upsertFlags struct {
	name     string
	serial   string
	category string
	status   string
	date     string
}

func (u *upsertFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&u.name, "name", "", "asset name")
	f.StringVar(&u.serial, "serial", "", "serial number")
	f.StringVar(&u.category, "category", "", "category (COMPUTER, PERIPHERAL, ...)")
	f.StringVar(&u.status, "status", "", "status (IN_USE, IN_STOCK, ...)")
	f.StringVar(&u.date, "date", "", "acquisition date, YYYY-MM-DD")
}

func (u *upsertFlags) request() api.UpsertRequest {
	return api.UpsertRequest{
		Name:            u.name,
		SerialNumber:    u.serial,
		Category:        asset.Category(strings.TrimSpace(u.category)),
		Status:          asset.Status(strings.TrimSpace(u.status)),
		AcquisitionDate: u.date,
	}
}

func (a *app) createCmd() *cobra.Command {
	var u upsertFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.client.Create(cmd.Context(), u.request())
			if err != nil {
				return explain(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created asset %d\n", created.ID)
			return nil
		},
	}
	u.bind(cmd)
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var u upsertFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.client.Update(cmd.Context(), id, u.request()); err != nil {
				return explain(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated asset %d\n", id)
			return nil
		},
	}
	u.bind(cmd)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.Delete(cmd.Context(), id); err != nil {
				return explain(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted asset %d\n", id)
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid asset id %q", raw)
	}
	return id, nil
}

// explain prints the field errors of a rejected write before returning err.
func explain(cmd *cobra.Command, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		for _, fe := range apiErr.FieldErrors() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
		}
	}
	return err
}
