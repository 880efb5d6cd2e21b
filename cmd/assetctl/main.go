package main

import (
	"fmt"
	"os"

	"assetdesk/internal/client"
	"assetdesk/internal/config"
	"assetdesk/internal/logging"

	"github.com/spf13/cobra"
)

type app struct {
	cfg    config.Cfg
	apiURL string
	client *client.Client
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.App)

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Cfg) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:           "assetctl",
		Short:         "Manage the asset inventory from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(a.apiURL, cfg.Client.Timeout, cfg.Client.MaxRetries)
			if err != nil {
				return err
			}
			a.client = c
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", cfg.Client.APIURL, "asset API base URL")

	root.AddCommand(
		a.listCmd(),
		a.createCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.urlCmd(),
	)
	return root
}
