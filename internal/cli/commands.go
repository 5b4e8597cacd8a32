package cli

import (
	"github.com/spf13/cobra"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/graph"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/server"
)

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute the full pipeline: feed, clean, sites, validate, detect, export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pipeline.Run(cmd.Context())
		},
	}
}

func (a *app) feedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Generate the synthetic source feed artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pipeline.Feed()
		},
	}
}

func (a *app) cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Normalize, assign identifiers and deduplicate the raw feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pipeline.Clean()
		},
	}
}

func (a *app) sitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "Expand retained organizations into sites and links",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pipeline.Sites()
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check referential integrity and publish the relational sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pipeline.Validate()
		},
	}
}

func (a *app) detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Detect semantic duplicates over a seeded sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pipeline.Detect(cmd.Context())
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the final datasets and summary statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pipeline.Export()
		},
	}
}

func (a *app) graphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Export the validated relational set to Memgraph/Neo4j",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			orgs, sites, links, err := a.pipeline.RelationalSets()
			if err != nil {
				return err
			}

			exporter, err := graph.NewExporter(ctx, a.cfg.Graph.URI, a.cfg.Graph.User, a.cfg.Graph.Password, a.logger)
			if err != nil {
				return err
			}
			defer exporter.Close(ctx)

			exporter.BuildIndices(ctx)
			return exporter.Export(ctx, orgs, sites, links)
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest artifacts over the dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(a.cfg, a.logger)
			a.logger.Info().Str("port", a.cfg.Server.Port).Msg("starting dashboard API")
			return srv.SetupRouter().Run(":" + a.cfg.Server.Port)
		},
	}
}
