package main

import (
	"encoding/json"
	"fmt"

	"routeview/internal/domain/entity"
	"routeview/internal/infra/backend"
	"routeview/internal/infra/panel"
	"routeview/internal/infra/surface"
	"routeview/internal/usecase"
	"routeview/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func findCmd(opts *rootOptions) *cobra.Command {
	var (
		algorithm string
		geoJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "find <start> <goal>",
		Short: "Find the optimal paths between two locations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config()
			out := cmd.OutOrStdout()
			logger := opts.logger(cmd.ErrOrStderr())

			// Panels go to stderr when stdout carries the GeoJSON document.
			panelOut := out
			if geoJSON {
				panelOut = cmd.ErrOrStderr()
			}

			mapSurface := surface.NewFromConfig(cfg)
			session := impl.NewMapSession(impl.MapSessionParams{
				Backend:  backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger),
				Surface:  mapSurface,
				Warnings: panel.NewTerminal(panelOut, "Warnings", warn),
				Results:  panel.NewTerminal(panelOut, "Results", good),
				Config:   cfg,
				Logger:   logger,
			})

			if err := session.Load(cmd.Context()); err != nil {
				return err
			}

			outcome, err := session.Submit(cmd.Context(), entity.PathQuery{
				Start:     args[0],
				Goal:      args[1],
				Algorithm: entity.Algorithm(algorithm),
			})
			if err != nil {
				if outcome != nil && outcome.Notification != "" {
					return errors.New(outcome.Notification)
				}

				return err
			}
			if outcome.Status != usecase.QueryApplied {
				return errors.Errorf("query was not applied (%s)", outcome.Status)
			}

			if geoJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")

				return errors.WithStack(encoder.Encode(mapSurface.FeatureCollection()))
			}

			counts := session.OverlayCounts()
			viewport := mapSurface.Viewport()
			fmt.Fprintln(out, subtle.Sprintf("%d markers, %d edges, %d highlighted paths; camera %.4f, %.4f zoom %d",
				counts[entity.CategoryBaseMarker],
				counts[entity.CategoryBaseEdge],
				counts[entity.CategoryResultPath],
				viewport.CenterLat, viewport.CenterLng, viewport.Zoom,
			))

			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(entity.DefaultAlgorithm), "Search algorithm: ucs, dfs or astar")
	cmd.Flags().BoolVar(&geoJSON, "geojson", false, "Print the resulting map as a GeoJSON feature collection")

	return cmd
}
