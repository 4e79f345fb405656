package main

import (
	"fmt"

	"routeview/internal/infra/backend"

	"github.com/spf13/cobra"
)

func locationsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the locations known to the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config()
			client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, opts.logger(cmd.ErrOrStderr()))

			graph, err := client.FetchGraph(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", brand.Sprint("Locations"), subtle.Sprintf("(%d locations, %d edges)", len(graph.Locations), len(graph.Edges)))
			for _, location := range graph.Locations {
				fmt.Fprintf(out, "  %-24s %s\n", location.Name, subtle.Sprintf("%.4f, %.4f", location.Lat, location.Lng))
			}

			return nil
		},
	}
}
